// Package codec encodes credentials for the local (offline) backend.
//
// The local backend is a development convenience, not a security boundary:
// credentials are stored reversibly obfuscated, matching the behavior of the
// in-browser mock this backend emulates. Anything needing real protection
// belongs on the server, which hashes with bcrypt.
package codec

import (
	"crypto/subtle"
	"encoding/base64"
)

// Codec encodes a plaintext credential and checks a candidate against a
// previously produced encoding. Implementations must be deterministic:
// Matches(Encode(p), p) is always true.
type Codec interface {
	Encode(password string) string
	Matches(encoded, password string) bool
}

// ObfuscatingCodec reverses the credential and base64-encodes it.
// The "v1:" prefix leaves room for switching schemes later without
// invalidating stored data.
type ObfuscatingCodec struct{}

func NewObfuscatingCodec() *ObfuscatingCodec {
	return &ObfuscatingCodec{}
}

func (c *ObfuscatingCodec) Encode(password string) string {
	b := []byte(password)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return "v1:" + base64.StdEncoding.EncodeToString(b)
}

func (c *ObfuscatingCodec) Matches(encoded, password string) bool {
	candidate := c.Encode(password)
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(candidate)) == 1
}
