// Package credential encodes and verifies mailbox passwords in the
// {SSHA512} salted-hash format used by the vmail database.
//
// A stored credential is the literal tag "{SSHA512}" followed by the standard
// padded base64 encoding of SHA-512(password || salt) concatenated with the
// salt itself. New credentials always carry an 8-byte salt; verification
// accepts any salt length so records written by other tools keep working.
package credential

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// Scheme is the tag that prefixes every encoded credential.
	Scheme = "{SSHA512}"
	// SaltSize is the salt length used when encoding new credentials.
	SaltSize = 8
	// DigestSize is the length of a SHA-512 digest.
	DigestSize = sha512.Size
)

var (
	// ErrEncoding is returned when a credential cannot be produced,
	// typically because the random source failed.
	ErrEncoding = errors.New("credential encoding error")
	// ErrMalformedCredential is returned when a stored credential is not
	// valid base64 or is too short to hold a digest.
	ErrMalformedCredential = errors.New("malformed credential")
)

// randReader is a test seam for crypto/rand.Reader.
var randReader io.Reader = rand.Reader

// Encode hashes plaintext with a fresh random salt and returns the storable
// {SSHA512} representation.
func Encode(plaintext string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	digest := hash(plaintext, salt)

	payload := make([]byte, 0, len(digest)+len(salt))
	payload = append(payload, digest...)
	payload = append(payload, salt...)

	return Scheme + base64.StdEncoding.EncodeToString(payload), nil
}

// Verify reports whether plaintext matches the stored credential.
//
// The {SSHA512} tag is optional. A wrong password yields (false, nil);
// only an undecodable or truncated record yields ErrMalformedCredential.
func Verify(stored, plaintext string) (bool, error) {
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, Scheme))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	if len(payload) < DigestSize {
		return false, fmt.Errorf("%w: payload is %d bytes, want at least %d", ErrMalformedCredential, len(payload), DigestSize)
	}

	digest, salt := payload[:DigestSize], payload[DigestSize:]

	return subtle.ConstantTimeCompare(hash(plaintext, salt), digest) == 1, nil
}

func hash(plaintext string, salt []byte) []byte {
	h := sha512.New()
	h.Write([]byte(plaintext))
	h.Write(salt)
	return h.Sum(nil)
}
