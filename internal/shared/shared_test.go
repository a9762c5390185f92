package shared

import (
	"bytes"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("Writes To Provided Writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		logger.Info("hello")
		if buf.Len() == 0 {
			t.Error("expected log output in buffer")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected unique state tokens")
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{"lowercases", "Queen", "Bohemian Rhapsody", "queen bohemian rhapsody"},
		{"trims whitespace", "  Queen ", " Bohemian Rhapsody ", "queen bohemian rhapsody"},
		{"collapses inner spaces", "Daft  Punk", "One  More  Time", "daft punk one more time"},
		{"empty fields", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQuery(tt.artist, tt.title)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{213, "3:33"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		got := FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tt.seconds, tt.want, got)
		}
	}
}

func TestVisibilityString(t *testing.T) {
	if VisibilityString(true) != "Public" {
		t.Error("expected Public for true")
	}
	if VisibilityString(false) != "Private" {
		t.Error("expected Private for false")
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"a": 1}

	t.Run("Compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(out) != `{"a":1}` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.Contains(out, []byte("\n")) {
			t.Error("expected indented output")
		}
	})
}
