// Package prompt asks the user for secrets on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a password is needed but stdin is not a
// terminal, so it cannot be read without echoing it.
var ErrNoTerminal = errors.New("no terminal available to prompt for the password; pass --password or set CONFIGDIFF_PASSWORD")

// PasswordLabel is written before reading the password.
const PasswordLabel = "Password: "

// PasswordReader reads a password, writing any prompt to w.
type PasswordReader func(w io.Writer) (string, error)

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests replaces the terminal with reader. The returned
// function restores the previous reader.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides IsTTY. The returned function restores the
// previous checker.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
}

// ReadPassword prints PasswordLabel to w and reads a line from the terminal
// with echo disabled. Surrounding whitespace is trimmed.
func ReadPassword(w io.Writer) (string, error) {
	if !IsTTY() {
		return "", ErrNoTerminal
	}

	_, err := io.WriteString(w, PasswordLabel)
	if err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	password, err := readSecret()

	_, _ = io.WriteString(w, "\n")

	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return strings.TrimSpace(password), nil
}

func readSecret() (string, error) {
	stdinReaderMu.RLock()

	override := stdinReaderOverride

	stdinReaderMu.RUnlock()

	if override != nil {
		line, err := bufio.NewReader(override).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}

		return line, nil
	}

	secret, err := term.ReadPassword(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
	if err != nil {
		return "", err //nolint:wrapcheck // wrapped by ReadPassword
	}

	return string(secret), nil
}
