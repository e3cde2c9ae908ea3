// Package editor provides utilities for interactive editing with $EDITOR.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Edit opens the given file in $EDITOR (or vi as fallback) and waits for
// it to exit. Returns nil if the editor exits with status 0.
func Edit(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run editor: %w", err)
	}

	return nil
}

// EditText seeds a temp file with initial, opens it in $EDITOR, and
// returns the edited result flattened to a single line. An empty result
// means the user cleared the file.
func EditText(initial string) (string, error) {
	dir, err := os.MkdirTemp("", "tally-edit-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "task.txt")
	if err := os.WriteFile(path, []byte(initial+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := Edit(path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}

	return FlattenText(string(edited)), nil
}

// FlattenText collapses all whitespace runs, including newlines, into
// single spaces and trims the ends. Task text is a single line.
func FlattenText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
