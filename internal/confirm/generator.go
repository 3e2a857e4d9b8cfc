// Package confirm derives and checks the short-lived confirmation codes
// emailed at signup. Codes are a keyed hash of the user's current state, so
// nothing is stored: bumping the user's confirmation sequence is what
// invalidates previously issued codes.
package confirm

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/avelichko/reviewhub/internal/domain"
)

// codeBytes of HMAC output end up in the code: 10 bytes -> 16 base32 chars,
// short enough to retype from an email.
const codeBytes = 10

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type Generator struct {
	secret []byte
}

func New(secret []byte) *Generator {
	return &Generator{secret: secret}
}

// Issue derives the confirmation code for the user's current state. The same
// state always yields the same code; any change to id, username, email or
// the confirmation sequence yields a different one.
func (g *Generator) Issue(user *domain.User) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s\x00%s\x00%s\x00%d",
		user.ID, user.Username, user.Email, user.ConfirmationSeq)
	sum := mac.Sum(nil)
	return strings.ToLower(codeEncoding.EncodeToString(sum[:codeBytes]))
}

// Verify recomputes the expected code and compares in constant time. Callers
// get a single yes/no; an expired code and a wrong code are indistinguishable.
func (g *Generator) Verify(user *domain.User, code string) bool {
	expected := g.Issue(user)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(code)))
}
