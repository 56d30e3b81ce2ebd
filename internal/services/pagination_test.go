package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 123000, time.UTC)
	id := uuid.New()

	c, err := decodeCursor(encodeCursor(createdAt, id))

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(c.CreatedAt))
	assert.Equal(t, id, c.ID)
}

func TestDecodeCursor_Empty(t *testing.T) {
	c, err := decodeCursor("")

	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	for _, s := range []string{"!!!", "bm90LWpzb24", "e30"} {
		_, err := decodeCursor(s)
		assert.ErrorIs(t, err, ErrInvalidCursor, s)
	}
}

func TestNormalizeLimit(t *testing.T) {
	testCases := []struct {
		in      int
		want    int
		wantErr bool
	}{
		{0, DefaultPageLimit, false},
		{1, 1, false},
		{100, 100, false},
		{101, 0, true},
		{-1, 0, true},
	}

	for _, tc := range testCases {
		got, err := NormalizeLimit(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidLimit)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
