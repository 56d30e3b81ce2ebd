package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	invitationTokenPrefix    = "inv_"
	invitationTokenRandomLen = 32
)

// GenerateInvitationToken returns a new single-use token and the hash stored for it.
// Format: inv_<64 lowercase hex chars>
func GenerateInvitationToken() (plainToken, tokenHash string, err error) {
	randomBytes := make([]byte, invitationTokenRandomLen)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate invitation token: %w", err)
	}

	plainToken = invitationTokenPrefix + hex.EncodeToString(randomBytes)
	return plainToken, HashToken(plainToken), nil
}

// IsInvitationTokenFormat reports whether token could have been issued by
// GenerateInvitationToken. Malformed tokens never reach the database.
func IsInvitationTokenFormat(token string) bool {
	if !strings.HasPrefix(token, invitationTokenPrefix) {
		return false
	}
	body := token[len(invitationTokenPrefix):]
	if len(body) != invitationTokenRandomLen*2 {
		return false
	}
	for _, r := range body {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
