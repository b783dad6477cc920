// Package prompt reads the admin credential from the operator's terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"

	"golang.org/x/term"
)

// Terminal prompts on out and reads one line from in. When in is a
// terminal the answer is read without echo.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a prompter bound to the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// NewStdio creates a prompter on stdin/stderr.
func NewStdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stderr)
}

// PromptCredential implements port.CredentialPrompter.
func (t *Terminal) PromptCredential(message string) (string, error) {
	fmt.Fprint(t.out, message+" ")

	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(t.out)
		if err != nil {
			return "", &domain.ErrCancelled{Reason: err.Error()}
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", &domain.ErrCancelled{Reason: "no input"}
		}
		return "", &domain.ErrCancelled{Reason: err.Error()}
	}
	return strings.TrimSpace(line), nil
}
