package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// Prompter abstracts interactive confirmation for testing.
type Prompter interface {
	// Confirm asks a yes/no question and reports whether the user agreed.
	Confirm(label string) (bool, error)
}

// PromptuiPrompter implements Prompter using promptui.
type PromptuiPrompter struct{}

// NewPromptuiPrompter creates a promptui-based prompter.
func NewPromptuiPrompter() *PromptuiPrompter {
	return &PromptuiPrompter{}
}

// Confirm implements Prompter.Confirm.
// A declined prompt returns false without an error; Ctrl+C returns
// promptui.ErrInterrupt.
func (p *PromptuiPrompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

// StaticPrompter answers every confirmation with a fixed value.
// It is used when stdin is not a terminal and in tests.
type StaticPrompter struct {
	Answer bool
	Asked  []string
}

// Confirm implements Prompter.Confirm.
func (p *StaticPrompter) Confirm(label string) (bool, error) {
	p.Asked = append(p.Asked, label)
	return p.Answer, nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return IsTerminal(os.Stdin)
}
