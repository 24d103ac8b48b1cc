package assets

import (
	_ "embed"
	"strings"
)

// InstructionsText holds the how-to dialog: a title line followed by one
// step per line.
//
//go:embed instructions.txt
var InstructionsText string

// Instructions splits the embedded text into a title and its steps. Blank
// lines are skipped.
func Instructions() (title string, steps []string) {
	for _, line := range strings.Split(InstructionsText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if title == "" {
			title = line
			continue
		}
		steps = append(steps, line)
	}
	return title, steps
}
