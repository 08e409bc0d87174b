package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scandiweb/configdiff/pkg/svc/source"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Options configures how SSH connections are established.
type Options struct {
	// KnownHostsFile is consulted to verify host keys. Empty means ~/.ssh/known_hosts.
	KnownHostsFile string
	// InsecureIgnoreHostKey disables host key verification.
	InsecureIgnoreHostKey bool
	// Timeout bounds the TCP connect and the SSH handshake. Zero means no limit.
	Timeout time.Duration
}

// Session is an open connection able to run commands on the remote machine.
type Session interface {
	Run(ctx context.Context, command string) ([]byte, error)
	Close() error
}

// Dialer opens sessions to remote targets.
type Dialer interface {
	Dial(ctx context.Context, target Target, password string) (Session, error)
}

// DialerFactory builds a Dialer from connection options.
type DialerFactory func(opts Options) Dialer

// NewDialerFactory returns the factory producing SSH dialers.
func NewDialerFactory() DialerFactory {
	return func(opts Options) Dialer {
		return NewSSHDialer(opts)
	}
}

// SSHDialer dials targets with password authentication.
type SSHDialer struct {
	options Options
}

// NewSSHDialer creates a dialer using opts.
func NewSSHDialer(opts Options) *SSHDialer {
	return &SSHDialer{options: opts}
}

// Dial connects and authenticates to target. Failures wrap source.ErrTransport.
func (d *SSHDialer) Dial(ctx context.Context, target Target, password string) (Session, error) {
	callback, err := d.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	config := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(answerAll(password)),
		},
		HostKeyCallback: callback,
		Timeout:         d.options.Timeout,
	}

	address := target.Address()
	netDialer := net.Dialer{Timeout: d.options.Timeout}

	conn, err := netDialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", source.ErrTransport, address, err)
	}

	// The handshake does not observe ctx on its own.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	if d.options.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(d.options.Timeout))
	}

	clientConn, channels, requests, err := ssh.NewClientConn(conn, address, config)
	if !stop() {
		if clientConn != nil {
			_ = clientConn.Close()
		}

		return nil, fmt.Errorf("%w: connect %s: %w", source.ErrTransport, address, ctx.Err())
	}

	if err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("%w: connect %s: %w", source.ErrTransport, address, err)
	}

	_ = conn.SetDeadline(time.Time{})

	return &sshSession{client: ssh.NewClient(clientConn, channels, requests)}, nil
}

func (d *SSHDialer) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if d.options.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // explicitly requested by the user
	}

	path := d.options.KnownHostsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: locate known_hosts: %w", source.ErrTransport, err)
		}

		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: load known hosts %s (use --insecure-ignore-host-key to skip verification): %w",
			source.ErrTransport, path, err,
		)
	}

	return callback, nil
}

func answerAll(password string) ssh.KeyboardInteractiveChallenge {
	return func(_, _ string, questions []string, _ []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range answers {
			answers[i] = password
		}

		return answers, nil
	}
}

type sshSession struct {
	client *ssh.Client
}

// Run executes command and returns its standard output. A non-zero exit status
// is reported together with the remote standard error.
func (s *sshSession) Run(ctx context.Context, command string) ([]byte, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("%w: open session: %w", source.ErrTransport, err)
	}

	defer func() { _ = session.Close() }()

	var stdout, stderr bytes.Buffer

	session.Stdout = &stdout
	session.Stderr = &stderr

	err = session.Start(command)
	if err != nil {
		return nil, fmt.Errorf("%w: start remote command: %w", source.ErrTransport, err)
	}

	done := make(chan error, 1)

	go func() { done <- session.Wait() }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		_ = session.Close()

		return nil, fmt.Errorf("%w: remote command aborted: %w", source.ErrTransport, ctx.Err())
	case err = <-done:
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: remote command exited with status %d%s",
				source.ErrTransport, exitErr.ExitStatus(), describeStderr(stderr.String()))
		}

		return nil, fmt.Errorf("%w: remote command: %w", source.ErrTransport, err)
	}

	return stdout.Bytes(), nil
}

func (s *sshSession) Close() error {
	err := s.client.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("close ssh connection: %w", err)
	}

	return nil
}

func describeStderr(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}

	return ": " + stderr
}
