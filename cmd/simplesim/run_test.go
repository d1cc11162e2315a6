package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germolinal/simple-sub002/internal/common/logger"
	"github.com/germolinal/simple-sub002/internal/config"
)

func TestApplyFlagOverrides_OnlySetFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ModelPath = "from-config.json"
	cfg.TimestepsPerHour = 1

	runFlags.modelPath = "from-flag.json"
	runFlags.timestepsPerHour = 0 // unset: zero value means "not passed"
	defer func() { runFlags.modelPath = ""; runFlags.timestepsPerHour = 0 }()

	applyFlagOverrides(cfg)
	assert.Equal(t, "from-flag.json", cfg.ModelPath)
	assert.Equal(t, 1, cfg.TimestepsPerHour)
}

func TestLoadModel_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "house.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("spaces:\n  - name: room\n    volume: 10\n"), 0o644))

	m, err := loadModel(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, m.Spaces, "room")
}

func TestLoadModel_DefaultsToJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "house.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"spaces": [{"name": "room", "volume": 10}]}`), 0o644))

	m, err := loadModel(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, m.Spaces, "room")
}

func TestParseLogLevel_RecognizesAllLevels(t *testing.T) {
	assert.Equal(t, logger.DEBUG, parseLogLevel("debug"))
	assert.Equal(t, logger.WARN, parseLogLevel("warn"))
	assert.Equal(t, logger.ERROR, parseLogLevel("error"))
	assert.Equal(t, logger.INFO, parseLogLevel("info"))
	assert.Equal(t, logger.INFO, parseLogLevel("nonsense"))
}
