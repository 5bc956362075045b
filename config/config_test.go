package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(p, []byte("sender_comp_id: CLIENT\ntarget_comp_id: PRIME\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, FIX42, cfg.FixVersion)
	require.Equal(t, 30, cfg.HeartbeatIntervalSeconds)
	require.True(t, cfg.ResetSeqNum)
	require.False(t, cfg.ReconnectEnabled)
}

func TestLoadRejectsMissingCompIDs(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(p, []byte("fix_version: FIX.4.4\n"), 0o644))

	_, err := Load(p)
	require.Error(t, err)
}

func TestLoadRejectsBadFixVersion(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(p, []byte("sender_comp_id: C\ntarget_comp_id: P\nfix_version: FIX.5.0\n"), 0o644))

	_, err := Load(p)
	require.Error(t, err)
}
