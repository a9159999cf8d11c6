// Package console reads operator input from a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

var (
	ErrEmptyInput       = errors.New("input must not be empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ReadLine prints prompt to w and reads one line from r with surrounding
// whitespace trimmed. A final line without a newline is accepted.
func ReadLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadRequiredLine is ReadLine that rejects blank answers.
func ReadRequiredLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	s, err := ReadLine(r, w, prompt)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%s: %w", prompt, ErrEmptyInput)
	}
	return s, nil
}

// ReadPassword reads a password from the terminal fd without echo.
func ReadPassword(fd int, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// ReadNewPassword asks twice and returns the password when both entries
// agree and are not empty.
func ReadNewPassword(fd int, w io.Writer) (string, error) {
	first, err := ReadPassword(fd, w, "Password")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", fmt.Errorf("password: %w", ErrEmptyInput)
	}
	second, err := ReadPassword(fd, w, "Repeat password")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}

// Account is what an operator enters to create a user with credentials.
type Account struct {
	Surname  string
	Name     string
	Email    string
	Password string
}

// ReadAccount prompts for every Account field in turn.
func ReadAccount(r *bufio.Reader, w io.Writer, fd int) (*Account, error) {
	a := &Account{}
	var err error
	if a.Surname, err = ReadRequiredLine(r, w, "Surname"); err != nil {
		return nil, err
	}
	if a.Name, err = ReadRequiredLine(r, w, "Name"); err != nil {
		return nil, err
	}
	if a.Email, err = ReadRequiredLine(r, w, "Email"); err != nil {
		return nil, err
	}
	if a.Password, err = ReadNewPassword(fd, w); err != nil {
		return nil, err
	}
	return a, nil
}
