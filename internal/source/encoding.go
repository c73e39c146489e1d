package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DecodeReason classifies why source bytes could not be decoded.
type DecodeReason uint8

const (
	DecodeNullBytes DecodeReason = iota + 1
	DecodeInvalidUTF8
	DecodeUnknownEncoding
	DecodeFailed
)

// DecodeError reports source bytes that cannot be turned into text.
// It carries no position: the problem is with the file as a whole.
type DecodeError struct {
	Path   string
	Reason DecodeReason
	Msg    string
}

func decodeErr(reason DecodeReason, format string, args ...any) *DecodeError {
	return &DecodeError{Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

const defaultEncoding = "utf-8"

// PEP 263: "# -*- coding: latin-1 -*-", "# vim: set fileencoding=utf-8 :" и т.п.
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// detectEncoding looks for a coding cookie on the first two lines. The second
// line only counts when the first one is blank or a comment.
func detectEncoding(content []byte) (string, bool) {
	first, rest, _ := bytes.Cut(content, []byte{'\n'})
	if m := codingCookie.FindSubmatch(first); m != nil {
		return string(m[1]), true
	}
	trimmed := bytes.TrimLeft(first, " \t\f\r")
	if len(trimmed) != 0 && trimmed[0] != '#' {
		return "", false
	}
	second, _, _ := bytes.Cut(rest, []byte{'\n'})
	if m := codingCookie.FindSubmatch(second); m != nil {
		return string(m[1]), true
	}
	return "", false
}

// normalEncodingName folds the spellings Python treats as the same codec.
func normalEncodingName(name string) string {
	n := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	switch {
	case n == "utf-8", strings.HasPrefix(n, "utf-8-"), n == "utf8":
		return "utf-8"
	case n == "latin-1", n == "iso-8859-1", n == "iso-latin-1",
		strings.HasPrefix(n, "latin-1-"), strings.HasPrefix(n, "iso-8859-1-"), strings.HasPrefix(n, "iso-latin-1-"),
		n == "latin1", n == "l1":
		return "iso-8859-1"
	case n == "ascii", n == "us-ascii", n == "646":
		return "ascii"
	}
	return n
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown encoding: %s", name)
}

// decodeSource converts raw file bytes into UTF-8 text. hadBOM pins the
// encoding to UTF-8.
func decodeSource(content []byte, hadBOM bool) ([]byte, string, bool, *DecodeError) {
	if bytes.IndexByte(content, 0) >= 0 {
		return nil, "", false, decodeErr(DecodeNullBytes, "source code string cannot contain null bytes")
	}

	declared, ok := detectEncoding(content)
	name := defaultEncoding
	if ok {
		name = normalEncodingName(declared)
		if hadBOM && name != defaultEncoding {
			return nil, "", false, decodeErr(DecodeUnknownEncoding, "encoding problem: %s with BOM", declared)
		}
	}

	switch name {
	case "utf-8":
		if off, b, bad := firstInvalidUTF8(content); bad {
			return nil, "", false, decodeErr(DecodeInvalidUTF8, "(unicode error) 'utf-8' codec can't decode byte 0x%02x in position %d: %s",
				b, off, utf8Reason(b))
		}
		return content, name, ok, nil
	case "ascii":
		for i, b := range content {
			if b >= 0x80 {
				return nil, "", false, decodeErr(DecodeInvalidUTF8, "(unicode error) 'ascii' codec can't decode byte 0x%02x in position %d: ordinal not in range(128)", b, i)
			}
		}
		return content, name, ok, nil
	}

	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, "", false, decodeErr(DecodeUnknownEncoding, "unknown encoding: %s", declared)
	}
	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, "", false, decodeErr(DecodeFailed, "(unicode error) '%s' codec can't decode source: %v", name, err)
	}
	return decoded, name, ok, nil
}

func firstInvalidUTF8(content []byte) (int, byte, bool) {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size <= 1 {
			return i, content[i], true
		}
		i += size
	}
	return 0, 0, false
}

func utf8Reason(b byte) string {
	if b < 0xC2 || b > 0xF4 {
		return "invalid start byte"
	}
	return "invalid continuation byte"
}
