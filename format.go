package dlmeta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Format selects how a record is written.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	outputIndent = 4
	asciiDEL     = 0x7f
)

// ParseFormat validates a format name. Empty means FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json|yaml)", ErrInvalidFormat, s)
	}
}

// NotFoundMessage is printed when no row matches platform.
func NotFoundMessage(platform string) string {
	return platform + " download data not found."
}

// WriteRecord writes rec in the given format, or the not-found line for
// platform when rec is nil.
func WriteRecord(w io.Writer, rec *Record, format Format, platform string) error {
	if rec == nil {
		_, err := fmt.Fprintln(w, NotFoundMessage(platform))
		return err
	}

	switch format {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", outputIndent))
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err := w.Write(escapeNonASCII(buf.Bytes()))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(outputIndent)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// escapeNonASCII rewrites DEL and every non-ASCII rune in encoded JSON as a \uXXXX
// escape, using a surrogate pair outside the BMP. Non-ASCII only occurs inside
// string literals, where the escape is equivalent.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < asciiDEL {
			out = append(out, byte(r))
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
