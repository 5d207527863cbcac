package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ConfirmFunc prompts the user for confirmation and returns true if confirmed.
type ConfirmFunc func(prompt string) (bool, error)

// NewConfirmFunc creates a line-based ConfirmFunc reading answers from in.
// Anything other than y/yes, including EOF, counts as no.
func NewConfirmFunc(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// NewInteractiveConfirmFunc creates a ConfirmFunc using huh's confirm component.
func NewInteractiveConfirmFunc() ConfirmFunc {
	return func(prompt string) (bool, error) {
		var result bool
		err := huh.NewConfirm().
			Title(prompt).
			Value(&result).
			Run()
		return result, err
	}
}

// AlwaysYes returns a ConfirmFunc that always confirms.
func AlwaysYes() ConfirmFunc {
	return func(_ string) (bool, error) {
		return true, nil
	}
}

// PromptFunc prompts the user for free-text input and returns the response.
type PromptFunc func(prompt string) (string, error)

// NewLinePromptFunc creates a PromptFunc that reads a single line from in,
// for piped input such as `echo $TOKEN | shopsum secret set NAME`.
func NewLinePromptFunc(in io.Reader) PromptFunc {
	reader := bufio.NewReader(in)
	return func(_ string) (string, error) {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// NewSecretPromptFunc creates a PromptFunc using huh's input component with
// the typed value masked.
func NewSecretPromptFunc() PromptFunc {
	return func(prompt string) (string, error) {
		var result string
		err := huh.NewInput().
			Title(prompt).
			EchoMode(huh.EchoModePassword).
			Value(&result).
			Run()
		return result, err
	}
}

// PromptKit bundles all prompt function types for dependency injection.
type PromptKit struct {
	Secret  PromptFunc
	Confirm ConfirmFunc
}

// NewPromptKit creates a PromptKit with huh-based interactive implementations.
func NewPromptKit() PromptKit {
	return PromptKit{
		Secret:  NewSecretPromptFunc(),
		Confirm: NewInteractiveConfirmFunc(),
	}
}

// NewLinePromptKit creates a PromptKit that reads from in, for non-TTY input.
func NewLinePromptKit(in io.Reader, out io.Writer) PromptKit {
	// bufio.NewReader returns r itself, so both prompts share one buffer.
	r := bufio.NewReader(in)
	return PromptKit{
		Secret:  NewLinePromptFunc(r),
		Confirm: NewConfirmFunc(r, out),
	}
}
