package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "rowmut", configBaseName)
	assert.Equal(t, "rowmut.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "input", inputFlagName)
	assert.Equal(t, "mutations", mutationsFlagName)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "seed", seedFlagName)
	assert.Equal(t, "read-seed", readSeedFlagName)
	assert.Equal(t, "write-seed", writeSeedFlagName)
	assert.Equal(t, "count", countFlagName)
	assert.Equal(t, "min-count", minCountFlagName)
	assert.Equal(t, "max-count", maxCountFlagName)
	assert.Equal(t, "force", forceFlagName)
	assert.Equal(t, "strip-comments", stripCommentsFlagName)
	assert.Equal(t, "ROWMUT", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"debug", "debug", "DEBUG"},
		{"warn alias", "warning", "WARN"},
		{"numeric", "-4", "DEBUG"},
		{"blank falls back", "", "INFO"},
		{"unknown falls back", "nonsense", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSlogLevel(tt.input, slog.LevelInfo)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
