// Package credentials generates invite codes for family members.
package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Ambiguous characters (0/O, 1/I/L) are excluded so codes survive being read
// aloud or written on paper.
const inviteCodeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const inviteCodeGroupLen = 4

// GenerateInviteCode returns a code in XXXX-XXXX form using crypto/rand.
func GenerateInviteCode() (string, error) {
	groups := make([]string, 2)
	for i := range groups {
		group, err := randomGroup(inviteCodeGroupLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		groups[i] = group
	}
	return strings.Join(groups, "-"), nil
}

func randomGroup(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(inviteCodeCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteCodeCharset[n.Int64()])
	}
	return sb.String(), nil
}
