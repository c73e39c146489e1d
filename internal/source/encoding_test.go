package source

import (
	"errors"
	"strings"
	"testing"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		found bool
	}{
		{name: "none", src: "x = 1\n", found: false},
		{name: "emacs style", src: "# -*- coding: latin-1 -*-\nx = 1\n", want: "latin-1", found: true},
		{name: "vim style", src: "# vim: set fileencoding=cp1252 :\n", want: "cp1252", found: true},
		{name: "second line after shebang", src: "#!/usr/bin/env python\n# coding=utf-8\n", want: "utf-8", found: true},
		{name: "second line after code ignored", src: "x = 1\n# coding: latin-1\n", found: false},
		{name: "third line ignored", src: "#\n#\n# coding: latin-1\n", found: false},
		{name: "not a comment", src: "coding = 'latin-1'\n", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := detectEncoding([]byte(tt.src))
			if found != tt.found || got != tt.want {
				t.Errorf("detectEncoding() = (%q, %v), want (%q, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestNormalEncodingName(t *testing.T) {
	tests := map[string]string{
		"UTF-8":       "utf-8",
		"utf_8":       "utf-8",
		"utf-8-sig":   "utf-8",
		"Latin-1":     "iso-8859-1",
		"iso_8859_1":  "iso-8859-1",
		"iso-latin-1": "iso-8859-1",
		"ascii":       "ascii",
		"cp1252":      "cp1252",
	}
	for in, want := range tests {
		if got := normalEncodingName(in); got != want {
			t.Errorf("normalEncodingName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		bom     bool
		want    string
		enc     string
		wantErr string
	}{
		{name: "plain utf-8", src: "s = 'α'\n", want: "s = 'α'\n", enc: "utf-8"},
		{name: "latin-1 cookie", src: "# coding: latin-1\ns = '\xe9'\n", want: "# coding: latin-1\ns = 'é'\n", enc: "iso-8859-1"},
		{name: "null byte", src: "\x00", wantErr: "source code string cannot contain null bytes"},
		{name: "invalid utf-8", src: "s = '\xff'\n", wantErr: "can't decode byte 0xff in position 5"},
		{name: "unknown cookie", src: "# coding: klingon\n", wantErr: "unknown encoding: klingon"},
		{name: "bom with latin-1", src: "# coding: latin-1\n", bom: true, wantErr: "encoding problem: latin-1 with BOM"},
		{name: "ascii violation", src: "# coding: ascii\ns = '\xe9'\n", wantErr: "'ascii' codec can't decode byte 0xe9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, _, err := decodeSource([]byte(tt.src), tt.bom)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("decodeSource() error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeSource() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("decodeSource() = %q, want %q", got, tt.want)
			}
			if enc != tt.enc {
				t.Errorf("decodeSource() encoding = %q, want %q", enc, tt.enc)
			}
		})
	}
}

func TestLoadDecodeError(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(writeTemp(t, "\x00"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decodeErr.Msg != "source code string cannot contain null bytes" {
		t.Errorf("unexpected message %q", decodeErr.Msg)
	}
	if decodeErr.Reason != DecodeNullBytes {
		t.Errorf("unexpected reason %d", decodeErr.Reason)
	}
}

func TestLoadDeclaredEncoding(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.Load(writeTemp(t, "# -*- coding: cp1252 -*-\r\ns = '\x80'\r\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	file := fs.Get(id)
	if file.Flags&FileDeclaredEncoding == 0 {
		t.Error("Expected FileDeclaredEncoding flag to be set")
	}
	if got := file.GetLine(2); got != "s = '€'" {
		t.Errorf("GetLine(2) = %q, want %q", got, "s = '€'")
	}
}
