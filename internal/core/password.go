package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/illarion/keeppass/internal/crypto"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Prompter reads answers from the user. Passwords are read without echo when
// the input is a terminal, and as plain lines otherwise.
type Prompter struct {
	in  *bufio.Reader
	fd  int
	tty bool
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// ReadLine prints prompt and returns the next input line without its line ending
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword reads a password without echoing it
func (p *Prompter) ReadPassword(prompt string) ([]byte, error) {
	if !p.tty {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return []byte(line), nil
	}

	fmt.Fprint(p.out, prompt)
	password, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out) // New line after password

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures they match
func (p *Prompter) ReadPasswordConfirm() ([]byte, error) {
	password1, err := p.ReadPassword("Enter master password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := p.ReadPassword("Confirm master password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, ErrPasswordMismatch
	}

	// Return a copy of the password
	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// Confirm asks a yes/no question. An empty answer means yes.
func (p *Prompter) Confirm(prompt string) bool {
	answer, err := p.ReadLine(prompt)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer != "n" && answer != "no"
}
