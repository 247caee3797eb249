package docid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PDFExtension is appended to filenames that do not already carry it.
const PDFExtension = ".pdf"

// KeySeparator separates the filename from the page number in a page key.
const KeySeparator = "-"

var (
	// ErrInvalidInput is returned when a filename, page number or id length
	// fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedKey is returned when a string cannot be decoded into a
	// page key.
	ErrMalformedKey = errors.New("malformed page key")
)

// PageKey identifies a single page of a source document.
//
// The canonical string form is "{filename}-{page}", e.g. "report.pdf-3".
// PageKeys built with NewPageKey always carry a ".pdf" filename; keys parsed
// with ParsePageKey keep the filename exactly as written.
type PageKey struct {
	filename string
	page     int
}

// NewPageKey validates filename and page and returns the normalized key.
// The ".pdf" extension is appended unless filename already ends with it,
// compared case-insensitively.
func NewPageKey(filename string, page int) (PageKey, error) {
	if err := validation.Validate(filename, validation.Required); err != nil {
		return PageKey{}, fmt.Errorf("%w: filename %v", ErrInvalidInput, err)
	}
	if err := validation.Validate(page, validation.Min(0)); err != nil {
		return PageKey{}, fmt.Errorf("%w: page number %d %v", ErrInvalidInput, page, err)
	}

	if !strings.HasSuffix(strings.ToLower(filename), PDFExtension) {
		filename += PDFExtension
	}
	return PageKey{filename: filename, page: page}, nil
}

// MustPageKey is like NewPageKey but panics on invalid input.
// Intended for fixtures and constants.
func MustPageKey(filename string, page int) PageKey {
	k, err := NewPageKey(filename, page)
	if err != nil {
		panic(fmt.Sprintf("invalid page key %q/%d: %v", filename, page, err))
	}
	return k
}

// ParsePageKey decodes "{filename}-{page}". The string is split on the last
// hyphen, the suffix must consist of ASCII digits and the prefix must be
// non-empty.
func ParsePageKey(s string) (PageKey, error) {
	if s == "" {
		return PageKey{}, fmt.Errorf("%w: key cannot be empty", ErrMalformedKey)
	}

	idx := strings.LastIndex(s, KeySeparator)
	if idx < 0 {
		return PageKey{}, fmt.Errorf("%w: %q has no %q separator", ErrMalformedKey, s, KeySeparator)
	}

	filename, suffix := s[:idx], s[idx+len(KeySeparator):]
	if filename == "" || !isDigits(suffix) {
		return PageKey{}, fmt.Errorf(
			"%w: %q is not in the format 'filename-page_number'", ErrMalformedKey, s)
	}

	page, err := strconv.Atoi(suffix)
	if err != nil {
		return PageKey{}, fmt.Errorf("%w: page number in %q: %v", ErrMalformedKey, s, err)
	}

	return PageKey{filename: filename, page: page}, nil
}

// EncodeKey returns the canonical string form of (filename, page).
func EncodeKey(filename string, page int) (string, error) {
	k, err := NewPageKey(filename, page)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// DecodeKey splits a canonical key back into its filename and page number.
func DecodeKey(s string) (string, int, error) {
	k, err := ParsePageKey(s)
	if err != nil {
		return "", 0, err
	}
	return k.filename, k.page, nil
}

// Filename returns the filename component.
func (k PageKey) Filename() string {
	return k.filename
}

// Page returns the page number.
func (k PageKey) Page() int {
	return k.page
}

// IsZero returns true if this is a zero PageKey.
func (k PageKey) IsZero() bool {
	return k.filename == "" && k.page == 0
}

// Equal returns true if two PageKeys are equal.
func (k PageKey) Equal(other PageKey) bool {
	return k.filename == other.filename && k.page == other.page
}

// String returns "{filename}-{page}", or "" for the zero key.
func (k PageKey) String() string {
	if k.IsZero() {
		return ""
	}
	return k.filename + KeySeparator + strconv.Itoa(k.page)
}

// DocumentID returns the truncated digest of the key.
func (k PageKey) DocumentID(length int) string {
	return Hash(k.String(), length)
}

// MarshalText implements encoding.TextMarshaler.
func (k PageKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PageKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = PageKey{}
		return nil
	}
	parsed, err := ParsePageKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
// PageKeys are serialized as strings: "report.pdf-3"
func (k PageKey) MarshalJSON() ([]byte, error) {
	if k.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *PageKey) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = PageKey{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("page key must be a string: %w", err)
	}
	return k.UnmarshalText([]byte(s))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
