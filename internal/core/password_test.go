package core

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompter_ReadLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("bank.com\r\nalice\nlast"), &out)

	for _, want := range []string{"bank.com", "alice", "last"} {
		got, err := p.ReadLine("> ")
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		if got != want {
			t.Errorf("ReadLine = %q, want %q", got, want)
		}
	}

	if _, err := p.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end of input, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "> > > ") {
		t.Errorf("prompts not written, got %q", out.String())
	}
}

func TestPrompter_ReadPasswordConfirm(t *testing.T) {
	p := NewPrompter(strings.NewReader("s3cret\ns3cret\n"), io.Discard)
	pw, err := p.ReadPasswordConfirm()
	if err != nil {
		t.Fatalf("ReadPasswordConfirm failed: %v", err)
	}
	if string(pw) != "s3cret" {
		t.Errorf("password = %q, want s3cret", pw)
	}

	p = NewPrompter(strings.NewReader("one\ntwo\n"), io.Discard)
	if _, err := p.ReadPasswordConfirm(); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"No\n", false},
		{"", false},
	}

	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), io.Discard)
		if got := p.Confirm("? "); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
