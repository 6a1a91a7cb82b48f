package kernel

import (
	"crypto/rand"
	"fmt"
	"strings"

	"tableside/internal/pkg/errs"
)

// ErrTokenIsNotConstructed indicates that a Token was not created through one
// of the constructor functions. It is returned when validating a zero-value Token.
var ErrTokenIsNotConstructed = errs.NewValueIsRequiredError(
	"Token must be created via NewToken or TokenFromString",
)

const (
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 10
)

// Token is a value object representing the opaque credential printed into a
// table's QR code. Scanning a token resolves to exactly one table; the value
// carries no meaning beyond that lookup and must not be guessable.
//
// Tokens are 10 characters drawn from [a-zA-Z0-9], giving roughly 59 bits of
// entropy. The zero value is invalid; use NewToken to mint one or
// TokenFromString to accept one from the outside.
type Token struct {
	value string
}

// NewToken mints a new random table token.
func NewToken() (Token, error) {
	buf := make([]byte, tokenLength)
	chars := make([]byte, 0, tokenLength)
	for len(chars) < tokenLength {
		if _, err := rand.Read(buf); err != nil {
			return Token{}, fmt.Errorf("failed to generate token: %w", err)
		}
		chars = appendTokenChars(chars, buf)
	}
	return Token{value: string(chars[:tokenLength])}, nil
}

// appendTokenChars maps random bytes onto the token alphabet by rejection
// sampling: 256 is not a multiple of the alphabet size, so bytes at or above
// the largest whole multiple are discarded instead of folded back onto the
// first characters.
func appendTokenChars(dst, src []byte) []byte {
	const limit = byte((256 / len(tokenAlphabet)) * len(tokenAlphabet))
	for _, b := range src {
		if b >= limit {
			continue
		}
		dst = append(dst, tokenAlphabet[int(b)%len(tokenAlphabet)])
	}
	return dst
}

// TokenFromString parses a token received from the outside, typically from a
// scanned QR code. Returns an error if the string has the wrong length or
// contains characters outside the token alphabet.
func TokenFromString(s string) (Token, error) {
	if s == "" {
		return Token{}, errs.NewValueIsRequiredError("token")
	}
	if len(s) != tokenLength {
		return Token{}, errs.NewValueIsInvalidErrorWithCause("token",
			fmt.Errorf("token must be %d characters, got %d", tokenLength, len(s)))
	}
	for _, r := range s {
		if !strings.ContainsRune(tokenAlphabet, r) {
			return Token{}, errs.NewValueIsInvalidErrorWithCause("token",
				fmt.Errorf("token contains invalid character %q", r))
		}
	}
	return Token{value: s}, nil
}

// String returns the token's text representation.
func (t Token) String() string {
	return t.value
}

// IsEqual compares two tokens for equality.
func (t Token) IsEqual(other Token) bool {
	return t.value == other.value
}

// Validate checks that the token was properly constructed.
func (t Token) Validate() error {
	if t.value == "" {
		return ErrTokenIsNotConstructed
	}
	return nil
}
