package cmd

import (
	"context"
	"fmt"

	"github.com/scandiweb/configdiff/pkg/cli/ui/prompt"
	"github.com/scandiweb/configdiff/pkg/di"
	"github.com/scandiweb/configdiff/pkg/io/configmanager"
	"github.com/scandiweb/configdiff/pkg/svc/source/local"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
	"github.com/scandiweb/configdiff/pkg/utils/notify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type commandDeps struct {
	console       *di.Console
	dialerFactory remote.DialerFactory
	localFactory  local.Factory
	readPassword  prompt.PasswordReader
}

func resolveDeps(injector di.Injector) (*commandDeps, error) {
	console, err := di.ResolveConsole(injector)
	if err != nil {
		return nil, err
	}

	dialerFactory, err := di.ResolveDialerFactory(injector)
	if err != nil {
		return nil, err
	}

	localFactory, err := di.ResolveLocalFactory(injector)
	if err != nil {
		return nil, err
	}

	readPassword, err := di.ResolvePasswordReader(injector)
	if err != nil {
		return nil, err
	}

	return &commandDeps{
		console:       console,
		dialerFactory: dialerFactory,
		localFactory:  localFactory,
		readPassword:  readPassword,
	}, nil
}

// remoteTargetArgs accepts exactly min..max arguments and validates the first
// one as a remote target.
func remoteTargetArgs(minArgs, maxArgs int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < minArgs || len(args) > maxArgs {
			return fmt.Errorf("%w (got %d arguments)", remote.ErrInvalidTarget, len(args))
		}

		if len(args) == 0 {
			return nil
		}

		_, err := remote.ParseTarget(args[0])

		return err
	}
}

func sshOptions(config *configmanager.Config) remote.Options {
	return remote.Options{
		KnownHostsFile:        config.SSH.KnownHosts,
		InsecureIgnoreHostKey: config.SSH.InsecureIgnoreHostKey,
		Timeout:               config.SSH.Timeout,
	}
}

func localOptions(config *configmanager.Config) local.Options {
	return local.Options{
		Kind:        local.Kind(config.Local.Source),
		Path:        config.Local.Path,
		PHP:         config.Local.PHP,
		File:        config.Local.File,
		TablePrefix: config.Local.TablePrefix,
	}
}

// openRemote connects to target and returns a source reading through the new
// session. The caller must close the session.
func openRemote(
	ctx context.Context,
	target remote.Target,
	config *configmanager.Config,
	deps *commandDeps,
	logger logrus.FieldLogger,
) (*remote.Source, remote.Session, error) {
	password := config.Password
	if password == "" {
		var err error

		password, err = deps.readPassword(deps.console.Err)
		if err != nil {
			return nil, nil, err
		}
	}

	if config.SSH.InsecureIgnoreHostKey {
		notify.Warningf(deps.console.Err, "host key verification is disabled for %s", target.Host)
	}

	logger.WithFields(logrus.Fields{
		"address": target.Address(),
		"user":    target.User,
	}).Debug("connecting")

	session, err := deps.dialerFactory(sshOptions(config)).Dial(ctx, target, password)
	if err != nil {
		return nil, nil, err
	}

	return remote.NewSource(session, target.Path, config.Remote.PHP), session, nil
}

func closeSession(session remote.Session, logger logrus.FieldLogger) {
	err := session.Close()
	if err != nil {
		logger.WithError(err).Warn("closing the ssh session failed")
	}
}
