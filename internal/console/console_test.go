package console

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/iamasit07/connect4-cpu/internal/domain"
)

func TestParseColumn(t *testing.T) {
	b := domain.NewBoard()
	for i := 0; i < domain.Rows; i++ {
		b.Place(6, domain.Player1)
	}

	tests := []struct {
		input   string
		want    int
		problem string
	}{
		{"1", 0, ""},
		{" 4 ", 3, ""},
		{"abc", -1, "Input must be a single integer!"},
		{"0", -1, "Column must be between 1 and 7!"},
		{"8", -1, "Column must be between 1 and 7!"},
		{"7", -1, "The column you chose is full!"},
	}

	for _, tt := range tests {
		col, problem := ParseColumn(tt.input, &b)
		if col != tt.want || problem != tt.problem {
			t.Fatalf("%q: got (%d, %q), want (%d, %q)", tt.input, col, problem, tt.want, tt.problem)
		}
	}
}

func TestReadColumnRetries(t *testing.T) {
	b := domain.NewBoard()
	in := bufio.NewScanner(strings.NewReader("x\n9\n3\n"))
	var out bytes.Buffer

	col, err := ReadColumn(in, &out, &b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != 2 {
		t.Fatalf("expected column 2, got %d", col)
	}
	if !strings.Contains(out.String(), "Input must be a single integer!") ||
		!strings.Contains(out.String(), "Column must be between 1 and 7!") {
		t.Fatalf("expected both complaints, got %q", out.String())
	}

	if _, err := ReadColumn(bufio.NewScanner(strings.NewReader("")), &out, &b); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestRender(t *testing.T) {
	b := domain.NewBoard()
	b.Place(0, domain.Player1)
	b.Place(3, domain.Player2)

	var out bytes.Buffer
	Render(&out, &b)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != domain.Rows+3 {
		t.Fatalf("expected %d lines, got %d:\n%s", domain.Rows+3, len(lines), out.String())
	}
	if lines[0] != "  1 2 3 4 5 6 7" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[6] != "6 O * * X * * *" {
		t.Fatalf("unexpected bottom row %q", lines[6])
	}
	if lines[7] != "o2" || lines[8] != "x6" {
		t.Fatalf("unexpected scores %q %q", lines[7], lines[8])
	}
}
