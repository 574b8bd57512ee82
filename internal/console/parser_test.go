package console

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"Updating '{{_File_}}.env{{|-|}}'.", "Updating '.env'."},
		{"{{|red::b|}}bold red{{|-|}}", "bold red"},
		{"\033[31mred\033[0m", "red"},
		{"\x1b]8;;https://example.com\x07link\x1b]8;;\x07", "link"},
		{"{{_Unknown_}}kept", "kept"},
	}

	for _, test := range tests {
		if got := Strip(test.input); got != test.expected {
			t.Errorf("Strip(%q) = %q; want %q", test.input, got, test.expected)
		}
	}
}

func TestParse(t *testing.T) {
	prev := ColorEnabled()
	defer SetColorEnabled(prev)

	SetColorEnabled(false)
	if got := Parse("{{_Var_}}KEY{{|-|}}"); got != "KEY" {
		t.Errorf("Parse without colour = %q; want %q", got, "KEY")
	}

	SetColorEnabled(true)
	tests := []struct {
		input    string
		expected string
	}{
		{"{{_Var_}}KEY{{|-|}}", CodeMagenta + "KEY" + CodeReset},
		{"{{|cyan::b|}}x", CodeCyan + CodeBold + "x"},
		{"{{|white:red|}}x", CodeWhite + CodeRedBg + "x"},
		{"{{_Unknown_}}x", "x"},
	}
	for _, test := range tests {
		if got := Parse(test.input); got != test.expected {
			t.Errorf("Parse(%q) = %q; want %q", test.input, got, test.expected)
		}
	}
}

func TestStyle(t *testing.T) {
	if got := Style("DiffAdd"); got != CodeGreen {
		t.Errorf("Style(%q) = %q; want %q", "DiffAdd", got, CodeGreen)
	}
	if got := Style("nope"); got != "" {
		t.Errorf("Style(%q) = %q; want empty", "nope", got)
	}
}

func TestWriterColorEnabled(t *testing.T) {
	if WriterColorEnabled(&bytes.Buffer{}) {
		t.Errorf("WriterColorEnabled(buffer) = true; want false")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out.diff"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if WriterColorEnabled(f) {
		t.Errorf("WriterColorEnabled(regular file) = true; want false")
	}
}
