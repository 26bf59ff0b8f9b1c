package source

import "testing"

func TestRegistry_AddAndLine(t *testing.T) {
	r := NewRegistry()
	r.Add("a.fe", "line1\nline2\nline3")

	tests := []struct {
		name    string
		line    int
		want    string
		wantOk  bool
	}{
		{name: "first line", line: 1, want: "line1", wantOk: true},
		{name: "middle line", line: 2, want: "line2", wantOk: true},
		{name: "last line", line: 3, want: "line3", wantOk: true},
		{name: "zero is out of range", line: 0, want: "", wantOk: false},
		{name: "too high is out of range", line: 4, want: "", wantOk: false},
		{name: "negative is out of range", line: -1, want: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Line("a.fe", tt.line)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("Line(%d) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestRegistry_UnregisteredFile(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Line("missing.fe", 1); ok {
		t.Error("Line() on an unregistered file should report ok=false")
	}
}

func TestRegistry_AddOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Add("a.fe", "old content")
	r.Add("a.fe", "new\ncontent")

	if got, ok := r.Line("a.fe", 1); !ok || got != "new" {
		t.Errorf("Line(1) after overwrite = (%q, %v), want (\"new\", true)", got, ok)
	}
	if _, ok := r.Line("a.fe", 2); !ok {
		t.Error("Line(2) after overwrite should exist")
	}
}
