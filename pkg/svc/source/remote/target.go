package remote

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
)

// DefaultPort is the SSH port used when the target does not name one.
const DefaultPort = 22

const maxPort = 65535

// ErrInvalidTarget is returned when a remote specifier cannot be parsed.
var ErrInvalidTarget = errors.New("invalid remote host! Use user@machine:/path/to/magento/root")

var targetPattern = regexp.MustCompile(`(?i)^([^@]+)@([a-z0-9.\-]+)(:\d+)?:(.+)$`)

// Target identifies a Magento installation reachable over SSH.
type Target struct {
	User string
	Host string
	Port int
	Path string
}

// ParseTarget parses "user@host[:port]:/path".
func ParseTarget(raw string) (Target, error) {
	match := targetPattern.FindStringSubmatch(raw)
	if match == nil {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}

	target := Target{
		User: match[1],
		Host: match[2],
		Port: DefaultPort,
		Path: match[4],
	}

	if match[3] != "" {
		port, err := strconv.Atoi(match[3][1:])
		if err != nil || port < 1 || port > maxPort {
			return Target{}, fmt.Errorf("%w: port %s out of range", ErrInvalidTarget, match[3][1:])
		}

		target.Port = port
	}

	return target, nil
}

// Address returns host:port suitable for dialing.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// String formats the target back into its specifier form, omitting the
// default port.
func (t Target) String() string {
	if t.Port == DefaultPort {
		return fmt.Sprintf("%s@%s:%s", t.User, t.Host, t.Path)
	}

	return fmt.Sprintf("%s@%s:%d:%s", t.User, t.Host, t.Port, t.Path)
}
