package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Confirmer decides if a destructive operation can proceed.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Prompt asks the user for confirmation on the given streams. Only "yes",
// in any letter case, counts as a confirmation. Any other answer,
// including an empty line or a closed input, aborts.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s (yes/no): ", color.YellowString(question))

	response, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation failed: %w", err)
	}

	return IsYes(response), nil
}

// IsYes reports whether the trimmed, lower-cased response equals "yes".
func IsYes(response string) bool {
	return strings.ToLower(strings.TrimSpace(response)) == "yes"
}

// Always confirms without asking, used for non-interactive runs.
type Always struct{}

func (Always) Confirm(string) (bool, error) {
	return true, nil
}
