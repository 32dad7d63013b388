package filesystem_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noziop/mkdf/internal/brace"
	"github.com/Noziop/mkdf/internal/filesystem"
	"github.com/Noziop/mkdf/internal/generator"
	"github.com/Noziop/mkdf/internal/tree"
)

func TestMaterialize(t *testing.T) {
	root := filepath.Join(t.TempDir(), "shop")
	tr, err := tree.NewBuilder().
		File("backend/main.py", "print('hi')\n").
		Dir("frontend/public").
		File(".env", "PROJECT_NAME=shop\n").
		Build()
	require.NoError(t, err)

	report, err := filesystem.Materialize(context.Background(), root, tr, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "backend", "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(content))
	assert.DirExists(t, filepath.Join(root, "frontend", "public"))
	assert.FileExists(t, filepath.Join(root, ".env"))
	assert.Len(t, report.Applied, 6)
}

func TestMaterializePaths(t *testing.T) {
	base := t.TempDir()
	paths := brace.Expand("app/{src/{models,views},docs/,README.md,name.}")

	var buf bytes.Buffer
	_, err := filesystem.MaterializePaths(context.Background(), base, paths, generator.ExecuteOptions{Writer: &buf})
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(base, "app", "src", "models"))
	assert.DirExists(t, filepath.Join(base, "app", "src", "views"))
	assert.DirExists(t, filepath.Join(base, "app", "docs"))
	assert.DirExists(t, filepath.Join(base, "app", "name."))
	assert.FileExists(t, filepath.Join(base, "app", "README.md"))
}

func TestMaterializePathsSkipsExisting(t *testing.T) {
	base := t.TempDir()
	readme := filepath.Join(base, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("keep me"), 0o644))

	var buf bytes.Buffer
	report, err := filesystem.MaterializePaths(context.Background(), base, []string{"README.md", "src/"}, generator.ExecuteOptions{Writer: &buf})
	require.NoError(t, err)

	content, _ := os.ReadFile(readme)
	assert.Equal(t, "keep me", string(content))
	assert.Equal(t, []string{readme}, report.Skipped)
	assert.Contains(t, buf.String(), "already exists")

	_, err = filesystem.MaterializePaths(context.Background(), base, []string{"README.md"}, generator.ExecuteOptions{Force: true, Writer: &buf})
	require.NoError(t, err)
	content, _ = os.ReadFile(readme)
	assert.Empty(t, content)
}
