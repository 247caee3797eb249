package docid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DigestHexLen is the length of a full SHA-256 digest rendered as hex.
const DigestHexLen = sha256.Size * 2

// Hash returns the first length characters of the lowercase hex SHA-256
// digest of text.
//
// A length of zero or less yields the empty string and a length above
// DigestHexLen yields the full digest. Use ValidateLength to reject those
// values up front.
func Hash(text string, length int) string {
	sum := sha256.Sum256([]byte(text))
	full := hex.EncodeToString(sum[:])

	switch {
	case length <= 0:
		return ""
	case length >= len(full):
		return full
	default:
		return full[:length]
	}
}

// ValidateLength checks that length is a usable identifier length.
func ValidateLength(length int) error {
	if err := validation.Validate(length,
		validation.Required,
		validation.Min(1),
		validation.Max(DigestHexLen),
	); err != nil {
		return fmt.Errorf("%w: id length %d: %v", ErrInvalidInput, length, err)
	}
	return nil
}
