package ui

import (
	"testing"

	rtest "github.com/exattr/exattr/internal/test"
)

func TestFormatBytes(t *testing.T) {
	for _, c := range []struct {
		size uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.000 KiB"},
		{5<<20 + 1<<19, "5.500 MiB"},
		{1 << 30, "1.000 GiB"},
		{1 << 40, "1.000 TiB"},
	} {
		if got := FormatBytes(c.size); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	for _, c := range []struct {
		input string
		want  int
	}{
		{"user.foo", 8},
		{"user.ä", 6},
		{"user.数据", 9},
		{"", 0},
	} {
		if got := DisplayWidth(c.input); got != c.want {
			t.Errorf("wrong display width for '%s', want %d, got %d", c.input, c.want, got)
		}
	}
}

func TestQuote(t *testing.T) {
	for _, c := range []struct {
		in        string
		needQuote bool
	}{
		{"user.foo", false},
		{"", false},
		{"\u0000", true},
		{"line\nbreak", true},
		{"\xff\xfe", true},
	} {
		if c.needQuote {
			rtest.Equals(t, true, c.in != Quote(c.in), c.in)
		} else {
			rtest.Equals(t, c.in, Quote(c.in))
		}
	}
}

func TestFormatValue(t *testing.T) {
	for _, c := range []struct {
		value []byte
		enc   Encoding
		want  string
	}{
		{[]byte("123"), EncodingAuto, "123"},
		{[]byte{0, 1, 0xff}, EncodingAuto, "0x0001ff"},
		{[]byte("123"), EncodingHex, "0x313233"},
		{[]byte("a\x00b"), EncodingText, `"a\x00b"`},
		{[]byte{}, EncodingAuto, ""},
	} {
		rtest.Equals(t, c.want, FormatValue(c.value, c.enc))
	}
}

func TestParseValue(t *testing.T) {
	for _, c := range []struct {
		in   string
		enc  Encoding
		want []byte
	}{
		{"123", EncodingText, []byte("123")},
		{"0x0001ff", EncodingAuto, []byte{0, 1, 0xff}},
		{"0001ff", EncodingHex, []byte{0, 1, 0xff}},
		{"0x31", EncodingText, []byte("0x31")},
		{"plain", EncodingAuto, []byte("plain")},
	} {
		got, err := ParseValue(c.in, c.enc)
		rtest.OK(t, err)
		rtest.Equals(t, c.want, got)
	}

	_, err := ParseValue("0xzz", EncodingAuto)
	rtest.Assert(t, err != nil, "invalid hex accepted")
}

func TestTruncate(t *testing.T) {
	var tests = []struct {
		input  string
		width  int
		output string
	}{
		{"", 80, ""},
		{"", 0, ""},
		{"", -1, ""},
		{"foo", 80, "foo"},
		{"foo", 4, "foo"},
		{"foo", 3, "foo"},
		{"foo", 2, "fo"},
		{"foo", 1, "f"},
		{"foo", 0, ""},
		{"foo", -1, ""},
		{"Löwen", 4, "Löwe"},
		{"あああああああああ/data", 10, "あああああ"},
		{"あああああああああ/data", 11, "あああああ"},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			out := Truncate(test.input, test.width)
			if out != test.output {
				t.Fatalf("wrong output for input %v, width %d: want %q, got %q",
					test.input, test.width, test.output, out)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	rtest.Equals(t, "0 attributes", FormatCount(0, "attribute"))
	rtest.Equals(t, "1 attribute", FormatCount(1, "attribute"))
	rtest.Equals(t, "12 paths", FormatCount(12, "path"))
}
