package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{{Username: "alice", Password: "pw", Website: "bank.com"}}

	if err := Encode(&buf, records); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 4 || lines[3] != "" {
		t.Fatalf("expected 3 newline-terminated lines, got %q", buf.String())
	}
	if lines[0] != "alice" || lines[2] != "bank.com" {
		t.Errorf("username/website should be verbatim, got %q", lines)
	}
	if lines[1] == "pw" {
		t.Error("password should be obscured on disk")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []Record{
		{Username: "alice", Password: "Aa1!\tpass", Website: "a.com"},
		{Username: "", Password: "", Website: ""},
		{Username: "bob smith", Password: "pässwörd\r", Website: "b.com"},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_PartialTrailingGroup(t *testing.T) {
	var buf bytes.Buffer
	full := []Record{{Username: "u", Password: "p", Website: "w.com"}}
	if err := Encode(&buf, full); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	base := buf.String()

	tests := []struct {
		name  string
		input string
	}{
		{"one extra line", base + "orphan\n"},
		{"two extra lines", base + "orphan\nxx\n"},
		{"two extra lines unterminated", base + "orphan\nxx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(full, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_UnterminatedLastLine(t *testing.T) {
	var buf bytes.Buffer
	want := []Record{{Username: "u", Password: "p", Website: "w.com"}}
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	input := strings.TrimSuffix(buf.String(), "\n")

	got, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %v", got)
	}
}
