package content

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// starterChapter is written by Scaffold so a fresh install has something
// to train on. It exercises every goal kind and flow policy.
const starterChapter = `chapter:
  number: 1
  title: "Motions and Modes"
  description: "Move the cursor, switch modes, and make your first edits."

exercises:
  - title: "Reach the corner"
    description: "Use h, j, k, l to move the cursor to line 3, column 5."
    sample_code:
      - "func main() {"
      - "    count := 0"
      - "    count++"
      - "}"
    goals:
      - kind: position
        target: [2, 4]
        description: "Move to line 3, column 5"
        hint: "j moves down, l moves right."

  - title: "In and out of insert mode"
    description: "Enter insert mode, then return to normal mode."
    sample_code:
      - "hello"
    goals:
      - kind: mode
        target: insert
        description: "Press i to enter insert mode"
      - kind: mode
        target: normal
        description: "Press Esc to return to normal mode"

  - title: "Delete pending"
    description: "Press d and pause. The editor waits for a motion."
    sample_code:
      - "delete me"
    goals:
      - kind: mode
        target: operator_d
        description: "Press d to start a delete"
        hint: "Just d, nothing after it."

  - title: "Change the text"
    description: "Replace the first line with TODO."
    flow: any_order
    sample_code:
      - "fix this line"
      - "leave this one"
    goals:
      - kind: text
        target:
          line: 0
          expected: "TODO"
        description: "Make line 1 read TODO"
      - kind: buffer_change
        description: "Change the buffer"

  - title: "Yank into a register"
    description: "Yank the word vim into register a."
    sample_code:
      - "vim"
    goals:
      - kind: register
        target:
          register: a
          expected: "vim"
        description: 'Use "ayw to yank into register a'
        hint: 'Prefix the yank with "a.'
`

// Scaffold writes the starter chapter into dir, creating it if needed.
// It refuses to overwrite an existing chapter file.
func Scaffold(fs afero.Fs, dir string) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}

	path := filepath.Join(dir, "chapter_01.yaml")
	if exists, err := afero.Exists(fs, path); err != nil {
		return "", err
	} else if exists {
		return "", fmt.Errorf("%s already exists", path)
	}

	if err := afero.WriteFile(fs, path, []byte(starterChapter), 0o644); err != nil {
		return "", fmt.Errorf("write starter chapter: %w", err)
	}
	return path, nil
}
