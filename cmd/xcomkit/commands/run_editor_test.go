package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/xcomkit/internal/config"
	"github.com/thoreinstein/xcomkit/internal/editor"
	"github.com/thoreinstein/xcomkit/internal/errors"
)

type fakeLauncher struct {
	sdk string
	err error
}

func (f *fakeLauncher) Launch(_ context.Context, sdkRoot string) error {
	f.sdk = sdkRoot
	return f.err
}

func useFakeLauncher(t *testing.T, f *fakeLauncher) {
	t.Helper()
	orig := launcher
	launcher = f
	t.Cleanup(func() { launcher = orig })
}

func TestRunEditor_NotConfigured(t *testing.T) {
	e := newTestEnv(t)
	f := &fakeLauncher{}
	useFakeLauncher(t, f)

	out, err := e.execute(t, "", "run-editor")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Equal(t, "XCOM 2: cannot launch editor - the SDK path is not configured correctly\n", out)
	assert.Empty(t, f.sdk)
}

func TestRunEditor_Launches(t *testing.T) {
	e := newTestEnv(t)
	e.installBoth(t)
	e.set(t, config.SDKRootKey, e.sdk)
	f := &fakeLauncher{}
	useFakeLauncher(t, f)

	out, err := e.execute(t, "", "runEditor")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, e.sdk, f.sdk)
}

func TestRunEditor_LaunchFailure(t *testing.T) {
	e := newTestEnv(t)
	e.installBoth(t)
	e.set(t, config.SDKRootKey, e.sdk)
	useFakeLauncher(t, &fakeLauncher{err: errors.Mark(errors.New("permission denied"), editor.ErrLaunch)})

	out, err := e.execute(t, "", "run-editor")
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, out, "cannot launch editor - failed to start "+editor.ExecutablePath(e.sdk))
	assert.NotContains(t, out, "permission denied")
}
