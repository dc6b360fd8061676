package session

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/vimdojo/vimdojo/internal/editor"
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

func TestWriteSample(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewRunner(fs, nil, nil, nil)

	cases := []struct {
		name  string
		lines []string
		want  string
	}{
		{"two lines", []string{"one", "two"}, "one\ntwo\n"},
		{"empty buffer", nil, "\n"},
		{"single line", []string{"hello"}, "hello\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := r.writeSample("/work/sample.txt", tc.lines); err != nil {
				t.Fatalf("writeSample: %v", err)
			}
			got, err := afero.ReadFile(fs, "/work/sample.txt")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tc.want {
				t.Errorf("sample = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEditorCommandListensWhenSamplingOverRPC(t *testing.T) {
	got := editorCommand("/w/setup.vim", "/w/sample.txt", "/w/nvim.sock", true)
	want := "nvim --listen /w/nvim.sock -S /w/setup.vim /w/sample.txt"
	if got != want {
		t.Errorf("editor command = %q, want %q", got, want)
	}

	got = editorCommand("/w/setup.vim", "/w/sample.txt", "/w/nvim.sock", false)
	want = "nvim -S /w/setup.vim /w/sample.txt"
	if got != want {
		t.Errorf("editor command = %q, want %q", got, want)
	}
}

func TestNeedsRPC(t *testing.T) {
	cases := []struct {
		name   string
		target goal.Target
		want   bool
	}{
		{"position goal", goal.Position{Line: 1, Col: 2}, false},
		{"mode goal", goal.ModeIs{Mode: editor.Insert}, false},
		{"buffer change goal", goal.BufferChanged{}, false},
		{"text goal", goal.TextAt{Line: 0, Expected: "x"}, true},
		{"register goal", goal.RegisterEquals{Register: "a", Expected: "x"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := &exercise.Exercise{Goals: []goal.Goal{{Target: tc.target}}}
			if got := needsRPC(ex); got != tc.want {
				t.Errorf("needsRPC = %t, want %t", got, tc.want)
			}
		})
	}
}
