package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesCategory(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrPlatformNotOwned)

	assert.True(t, errors.Is(err, ErrAuthorization))
	assert.True(t, errors.Is(err, ErrPlatformNotOwned))
	assert.False(t, errors.Is(err, ErrEmbeddingDisabled))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "invitation denied", ErrInvitationDenied.Error())
	assert.Equal(t, CodeValidation, ErrValidation.Error())
}

func TestError_IsIgnoresForeignErrors(t *testing.T) {
	assert.False(t, errors.Is(errors.New("invitation denied"), ErrInvitationDenied))
	assert.False(t, ErrInvitationDenied.Is(errors.New("x")))
}
