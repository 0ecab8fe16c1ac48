package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitService_UsesFlagDirectories(t *testing.T) {
	// Use temp directories to avoid polluting real config
	configDir = t.TempDir()
	dataDir = t.TempDir()

	svc, err := initService()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, svc.Close())
	})

	assert.False(t, svc.Ready(), "fresh service has no install path")
	assert.Equal(t, "Default", svc.CurrentProfile())
	assert.Empty(t, svc.Mods())
}

func TestRequireInstallPath(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()

	svc, err := initService()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, svc.Close())
	})

	err = requireInstallPath(svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fmm path")
}

func TestResolveDirs_FallsBackToHome(t *testing.T) {
	configDir = ""
	dataDir = ""

	cfg, data, err := resolveDirs()
	require.NoError(t, err)
	assert.Contains(t, cfg, "fmm")
	assert.Contains(t, data, "fmm")
	assert.NotEqual(t, cfg, data)
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "fmm", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)

	for _, flag := range []string{"config", "data", "json", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}
