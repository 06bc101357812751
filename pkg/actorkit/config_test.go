package actorkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigBaseline(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 100, cfg.InternalBufferSize)
	assert.Equal(t, EventKindNames{Cancel: "cancel", Exit: "exit", LinkDown: "link_down"}, cfg.EventKinds)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actorkit.yaml")
	body := "internal_buffer_size: 256\nevent_kinds:\n  cancel: stop\n  exit: done\n  link_down: disconnected\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.InternalBufferSize)
	assert.Equal(t, EventKindNames{Cancel: "stop", Exit: "done", LinkDown: "disconnected"}, cfg.EventKinds)
}

func TestLoadConfigMissingFileReturnsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWithConfigAppliesCustomBufferSize(t *testing.T) {
	act, err := New(&state{}, Handlers[*state]{}, WithConfig[*state](&Config{
		InternalBufferSize: 2,
		EventKinds:         DefaultConfig().EventKinds,
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, cap(act.internal))
}
