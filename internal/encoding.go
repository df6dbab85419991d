package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// CharsetAuto selects BOM and <meta charset> sniffing instead of a fixed charset.
const CharsetAuto = "auto"

var (
	ErrInvalidUTF8    = errors.New("input is not valid UTF-8")
	ErrUnknownCharset = errors.New("unknown charset")
	utf8BOM           = []byte{0xEF, 0xBB, 0xBF}
)

// NormalizeCharset lower-cases and trims a charset label.
func NormalizeCharset(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf8", "utf_8":
		return "utf-8"
	}
	return label
}

// IsKnownCharset reports whether label is "auto" or a WHATWG encoding label.
func IsKnownCharset(label string) bool {
	label = NormalizeCharset(label)
	if label == CharsetAuto || label == "utf-8" {
		return true
	}
	e, _ := charset.Lookup(label)
	return e != nil
}

// DecodeToUTF8 converts data to a UTF-8 string using the given charset label.
// "utf-8" is strict: invalid sequences fail instead of being replaced.
// It returns the canonical name of the encoding that was applied.
func DecodeToUTF8(data []byte, label string) (string, string, error) {
	label = NormalizeCharset(label)

	switch label {
	case "utf-8":
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", "", ErrInvalidUTF8
		}
		return string(data), "utf-8", nil
	case CharsetAuto:
		e, name, _ := charset.DetermineEncoding(data, "")
		if name == "utf-8" {
			// The UTF-8 decoder keeps a leading BOM.
			return decodeWith(bytes.TrimPrefix(data, utf8BOM), e, name)
		}
		return decodeWith(data, e, name)
	}

	e, name := charset.Lookup(label)
	if e == nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return decodeWith(data, e, name)
}

func decodeWith(data []byte, e encoding.Encoding, name string) (string, string, error) {
	reader := transform.NewReader(bytes.NewReader(data), e.NewDecoder())
	converted, err := io.ReadAll(reader)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(converted), name, nil
}
