package sat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSolution(t *testing.T) {
	t.Run("Optimum", func(t *testing.T) {
		output := "c roundingsat\no 3\ns OPTIMUM FOUND\nv x1 -x2\nv x3 -x4\n"

		result, assignment, err := parseSolution(output, 4)

		require.NoError(t, err)
		assert.Equal(t, outcomeOptimum, result)
		assert.Equal(t, []bool{true, false, true, false}, assignment)
	})

	t.Run("Unsatisfiable", func(t *testing.T) {
		result, assignment, err := parseSolution("s UNSATISFIABLE\n", 4)

		require.NoError(t, err)
		assert.Equal(t, outcomeUnsatisfiable, result)
		assert.Nil(t, assignment)
	})

	t.Run("Unknown", func(t *testing.T) {
		result, _, err := parseSolution("s UNKNOWN\n", 4)

		require.NoError(t, err)
		assert.Equal(t, outcomeUnknown, result)
	})

	t.Run("Missing status", func(t *testing.T) {
		_, _, err := parseSolution("c nothing\n", 4)

		assert.Error(t, err)
	})

	t.Run("Invalid literal", func(t *testing.T) {
		_, _, err := parseSolution("s SATISFIABLE\nv x1 xa\n", 4)

		assert.Error(t, err)
	})
}

func TestGetExecutablePath(t *testing.T) {
	//** Arrange
	previous := ConfigPath
	t.Cleanup(func() { ConfigPath = previous })
	ConfigPath = filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(ConfigPath, []byte(`{"roundingsatPath": "/opt/roundingsat"}`), 0666))

	//** Act
	path, err := getExecutablePath("roundingsatPath")
	_, missingErr := getExecutablePath("minisatpPath")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "/opt/roundingsat", path)
	assert.Error(t, missingErr)
}
