package output

import (
	"bytes"
	"strings"
	"testing"

	"todo/internal/service"
	"todo/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"open", 1, service.Task{Title: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"done", 12, service.Task{Title: "Call mom", IsCompleted: true}, "  12  [x] Call mom\n"},
		{"empty title", 3, service.Task{Title: "   "}, "   3  [ ] (untitled)\n"},
		{"newlines", 4, service.Task{Title: "line one\nline two\r\n"}, "   4  [ ] line one line two  \n"},
		{"wide number", 12345, service.Task{Title: "x"}, "12345  [ ] x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if got := buf.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	if p.Styled {
		t.Fatal("a buffer is not a terminal")
	}

	p.Tasks([]service.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Call mom", IsCompleted: true},
		{ID: "3", Title: "Carpe diem"},
	})
	testutil.GoldenString(t, "tasks_plain", buf.String())
}

func TestPrinter_Styled(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{w: &buf, Styled: true}

	p.Task(1, service.Task{Title: "Buy milk", IsCompleted: true})
	got := buf.String()
	if !strings.Contains(got, "Buy milk") {
		t.Errorf("expected title in styled output, got %q", got)
	}
	if !strings.Contains(got, "[x]") {
		t.Errorf("expected check mark in styled output, got %q", got)
	}
}
