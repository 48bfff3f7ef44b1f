package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/limaJavier/floorplan/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilding(t *testing.T) {
	base := model.Building{
		Width:      1,
		Length:     1,
		Apartments: []model.RawApartment{{Rooms: []model.RawRoom{{Category: "K"}}}},
	}

	t.Run("Answers override the file", func(t *testing.T) {
		//** Arrange
		var out bytes.Buffer

		//** Act
		building, err := promptBuilding(strings.NewReader("2\n3\n4\n"), &out, base)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 2, building.Hallways)
		assert.Equal(t, 3, building.Width)
		assert.Equal(t, 4, building.Length)
		assert.Contains(t, out.String(), "Enter number of apartments")
	})

	t.Run("Non numeric answer", func(t *testing.T) {
		_, err := promptBuilding(strings.NewReader("two\n"), &bytes.Buffer{}, base)
		assert.Error(t, err)
	})

	t.Run("Missing answer", func(t *testing.T) {
		_, err := promptBuilding(strings.NewReader("2\n3\n"), &bytes.Buffer{}, base)
		assert.Error(t, err)
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		_, err := promptBuilding(strings.NewReader("1\n0\n4\n"), &bytes.Buffer{}, base)
		assert.Error(t, err)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 10, exitCode(cp.Optimal))
	assert.Equal(t, 10, exitCode(cp.Feasible))
	assert.Equal(t, 20, exitCode(cp.Infeasible))
	assert.Equal(t, 30, exitCode(cp.Unknown))
}

func TestWriteWorkbook(t *testing.T) {
	t.Run("Writes the file", func(t *testing.T) {
		//** Arrange
		filePath := filepath.Join(t.TempDir(), "layouts.xlsx")

		//** Act
		err := writeWorkbook(filePath, model.Result{Status: cp.Infeasible})

		//** Assert
		require.NoError(t, err)
		info, err := os.Stat(filePath)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("Missing directory", func(t *testing.T) {
		err := writeWorkbook(filepath.Join(t.TempDir(), "missing", "layouts.xlsx"), model.Result{})
		assert.Error(t, err)
	})
}
