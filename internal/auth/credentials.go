package auth

import (
	"crypto/subtle"

	"github.com/hantagam/qrmenu/internal/hash"
)

// CredentialVerifier checks a submitted pair against the single
// configured administrator identity.
type CredentialVerifier struct {
	AdminUsername     string
	AdminPasswordHash string
}

// Verify runs the bcrypt comparison even when the username does not
// match, so a wrong username costs the same time as a wrong password.
func (v *CredentialVerifier) Verify(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.AdminUsername)) == 1
	passwordOK := hash.CheckPassword(v.AdminPasswordHash, password)
	return usernameOK && passwordOK
}
