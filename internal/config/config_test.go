package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timzifer/interplist"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interplist.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 1000, cfg.MaxRecordSize)
	require.Equal(t, 64, cfg.ReservedHeadroom)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
max_record_size = 2048
debug_trace = true
log_level = "debug"
`)
	t.Setenv("INTERPLIST_MAX_RECORD_SIZE", "4096")
	t.Setenv("INTERPLIST_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.MaxRecordSize)
	require.Equal(t, 64, cfg.ReservedHeadroom)
	require.True(t, cfg.DebugTrace)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsBadFile(t *testing.T) {
	_, err := Load(writeConfig(t, "max_record_size = \"big\""))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ReservedHeadroom = cfg.MaxRecordSize
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.ReservedHeadroom = 8
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxRecordSize = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFormat = "xml"
	require.Error(t, cfg.Validate())
}

func TestQueueOptions(t *testing.T) {
	cfg := Default()
	cfg.MaxRecordSize = 200
	cfg.ReservedHeadroom = 100

	q := interplist.NewCommandQueue(cfg.QueueOptions(nil)...)
	require.Equal(t, 100, q.MaxCommandSize())
}
