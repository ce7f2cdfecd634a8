package adapter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func readTestFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(content), nil
}

func assertFileContains(t *testing.T, path, want string) {
	t.Helper()

	content, err := readTestFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, content)
}
