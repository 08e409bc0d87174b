package configmanager

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidConfig is wrapped by every configuration problem.
var ErrInvalidConfig = errors.New("invalid configuration")

var localSources = []string{"exec", "file", "sqlite"}

// Validate reports every problem found in config at once.
func Validate(config *Config) error {
	var problems []string

	if config.ColumnWidth < 1 {
		problems = append(problems, fmt.Sprintf("column-width must be at least 1, got %d", config.ColumnWidth))
	}

	if config.Workers < 1 {
		problems = append(problems, fmt.Sprintf("workers must be at least 1, got %d", config.Workers))
	}

	if config.SSH.Timeout < 0 {
		problems = append(problems, fmt.Sprintf("ssh.timeout cannot be negative, got %s", config.SSH.Timeout))
	}

	if !slices.Contains(localSources, config.Local.Source) {
		problems = append(problems, fmt.Sprintf(
			"local.source must be one of %s, got %q", strings.Join(localSources, ", "), config.Local.Source,
		))
	} else if config.Local.Source != "exec" && config.Local.File == "" {
		problems = append(problems, fmt.Sprintf("local.file is required by the %s source", config.Local.Source))
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}
