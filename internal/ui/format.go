package ui

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// FormatBytes formats c as a human readable size.
func FormatBytes(c uint64) string {
	b := float64(c)
	switch {
	case c >= 1<<40:
		return fmt.Sprintf("%.3f TiB", b/(1<<40))
	case c >= 1<<30:
		return fmt.Sprintf("%.3f GiB", b/(1<<30))
	case c >= 1<<20:
		return fmt.Sprintf("%.3f MiB", b/(1<<20))
	case c >= 1<<10:
		return fmt.Sprintf("%.3f KiB", b/(1<<10))
	default:
		return fmt.Sprintf("%d B", c)
	}
}

// ToJSONString encodes status as a single line of JSON.
func ToJSONString(status interface{}) string {
	buf := new(bytes.Buffer)
	err := json.NewEncoder(buf).Encode(status)
	if err != nil {
		panic(err)
	}
	return buf.String()
}

// DisplayWidth returns the number of terminal cells needed to display s
func DisplayWidth(s string) int {
	width := 0
	for _, r := range s {
		width += displayRuneWidth(r)
	}

	return width
}

func displayRuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	case width.EastAsianNarrow, width.EastAsianHalfwidth, width.EastAsianAmbiguous, width.Neutral:
		return 1
	default:
		return 0
	}
}

// Quote lines with funny characters in them, meaning control chars, newlines,
// tabs, anything else non-printable and invalid UTF-8.
//
// This is intended to produce a string that does not mess up the terminal
// rather than produce an unambiguous quoted string.
func Quote(line string) string {
	for _, r := range line {
		// The replacement character usually means the input is not UTF-8.
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return strconv.Quote(line)
		}
	}
	return line
}

// IsText reports whether value is valid UTF-8 without control characters
// other than tab and newline.
func IsText(value []byte) bool {
	if !utf8.Valid(value) {
		return false
	}
	for _, r := range string(value) {
		if r != '\t' && r != '\n' && !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// Encoding selects how attribute values are rendered as text.
type Encoding string

const (
	EncodingText Encoding = "text"
	EncodingHex  Encoding = "hex"
	// EncodingAuto renders text values as is and everything else as hex.
	EncodingAuto Encoding = "auto"
)

// FormatValue renders an attribute value for display.
func FormatValue(value []byte, enc Encoding) string {
	switch enc {
	case EncodingHex:
		return "0x" + hex.EncodeToString(value)
	case EncodingText:
		return Quote(string(value))
	default:
		if IsText(value) {
			return Quote(string(value))
		}
		return "0x" + hex.EncodeToString(value)
	}
}

// ParseValue is the inverse of FormatValue for the hex and text
// encodings. With EncodingAuto a "0x" prefix selects hex.
func ParseValue(s string, enc Encoding) ([]byte, error) {
	if enc == EncodingHex || (enc == EncodingAuto && len(s) >= 2 && s[:2] == "0x") {
		if len(s) >= 2 && s[:2] == "0x" {
			s = s[2:]
		}
		return hex.DecodeString(s)
	}
	return []byte(s), nil
}

// Truncate s to fit in width (number of terminal cells) w.
// If w is negative, returns the empty string.
func Truncate(s string, w int) string {
	if len(s) < w {
		// no rune is wider than its UTF-8 encoding
		return s
	}
	for i, r := range s {
		w -= displayRuneWidth(r)
		if w < 0 {
			return s[:i]
		}
	}
	return s
}

// FormatCount returns "n noun", appending an "s" to noun unless n is one.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
