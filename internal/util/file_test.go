package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedDocumentFile(t *testing.T) {
	cases := []struct {
		filename string
		allowed  bool
	}{
		{"slides.pdf", true},
		{"notes.DOC", true},
		{"deck.pptx", true},
		{"handout.docx", true},
		{"old.ppt", true},
		{"payload.exe", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
		{"double.pdf.sh", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, AllowedDocumentFile(tc.filename), "filename %q", tc.filename)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"slides.pdf", "slides.pdf"},
		{"../../etc/passwd", "passwd"},
		{"/abs/path/deck.pptx", "deck.pptx"},
		{"  spaced.pdf  ", "spaced.pdf"},
		{"dotty..name.pdf", "dottyname.pdf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}
