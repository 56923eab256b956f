// Package digest implements the credential digest shared by the server and
// the client SDK.
//
// Passwords are stored and compared as unsalted MD5 hex digests, and the
// client submits the digest (not the plaintext) of the login password and of
// the old password on password change. The digest choice is part of the wire
// contract and of every stored hash, so it cannot change without invalidating
// all existing accounts and clients.
package digest

import (
	"crypto/md5"
	"encoding/hex"
)

// Hash returns the lowercase hex MD5 digest of s.
func Hash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
