package cmd_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/scandiweb/configdiff/pkg/cli/cmd"
	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/di"
	"github.com/scandiweb/configdiff/pkg/io/wire"
	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/svc/source/local"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
	"github.com/scandiweb/configdiff/pkg/svc/source/shim"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

const (
	testTarget   = "deploy@shop.test:/var/www/magento"
	testPassword = "s3cret"
)

var parsedTarget = remote.Target{User: "deploy", Host: "shop.test", Port: 22, Path: "/var/www/magento"}

// fixture replaces every external dependency of the commands.
type fixture struct {
	dialer    *remote.MockDialer
	session   *remote.MockSession
	localData *dataset.Dataset

	console      bytes.Buffer
	prompts      int
	sshOptions   remote.Options
	localOptions local.Options
}

func newFixture(localData *dataset.Dataset) *fixture {
	return &fixture{
		dialer:    remote.NewMockDialer(),
		session:   remote.NewMockSession(),
		localData: localData,
	}
}

func (f *fixture) runtime() *di.Runtime {
	return di.New(
		di.ProvideConsole(&f.console),
		di.ProvideDialerFactory(func(opts remote.Options) remote.Dialer {
			f.sshOptions = opts

			return f.dialer
		}),
		di.ProvideLocalFactory(func(opts local.Options) (source.Source, error) {
			f.localOptions = opts

			return source.Func(func(context.Context) (*dataset.Dataset, error) {
				return f.localData, nil
			}), nil
		}),
		di.ProvidePasswordReader(func(io.Writer) (string, error) {
			f.prompts++

			return testPassword, nil
		}),
	)
}

// expectRemote makes the fake remote answer the dump shim with data.
func (f *fixture) expectRemote(t *testing.T, password string, data *dataset.Dataset) {
	t.Helper()

	var stream bytes.Buffer

	require.NoError(t, wire.Encode(&stream, data))

	f.dialer.On("Dial", mock.Anything, parsedTarget, password).Return(f.session, nil)
	f.session.On("Run", mock.Anything, shim.RemoteCommand(parsedTarget.Path, "php")).Return(stream.Bytes(), nil)
	f.session.On("Close").Return(nil)
}

func (f *fixture) execute(args ...string) (string, error) {
	root := cmd.NewRootCmdWithRuntime(f.runtime(), "1.2.3", "abc1234", "2026-01-02")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs(args)

	err := cmd.Execute(context.Background(), root)

	return out.String(), err
}
