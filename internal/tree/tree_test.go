package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tr, err := NewBuilder().
		File("backend/app/main.py", "print()").
		Dir("frontend").
		File("./docker-compose.yml", "version: '3.8'").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 5, tr.Len())
	content, ok := tr.File("backend/app/main.py")
	assert.True(t, ok)
	assert.Equal(t, "print()", content)

	e, ok := tr.Lookup("backend/app")
	require.True(t, ok)
	assert.Equal(t, Dir, e.Kind)

	assert.Equal(t, []string{"backend/app/main.py", "docker-compose.yml"}, tr.Files())
}

func TestBuildLastFileWins(t *testing.T) {
	tr, err := NewBuilder().File("a.txt", "one").File("a.txt", "two").Build()
	require.NoError(t, err)
	content, _ := tr.File("a.txt")
	assert.Equal(t, "two", content)
	assert.Equal(t, 1, tr.Len())
}

func TestBuildConflict(t *testing.T) {
	_, err := NewBuilder().File("src", "x").File("src/main.go", "").Build()
	assert.ErrorIs(t, err, ErrPathConflict)

	_, err = NewBuilder().Dir("docs").File("docs", "x").Build()
	assert.ErrorIs(t, err, ErrPathConflict)
}

func TestWalkOrder(t *testing.T) {
	tr, err := NewBuilder().
		File("z/1", "").
		File("a", "").
		Dir("z/sub").
		Build()
	require.NoError(t, err)

	var paths []string
	for _, e := range tr.Entries() {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"z", "z/1", "z/sub", "a"}, paths)
}

func TestMerge(t *testing.T) {
	inner, err := NewBuilder().File("main.py", "x").Dir("tests").Build()
	require.NoError(t, err)

	tr, err := NewBuilder().Merge("backend", inner).Build()
	require.NoError(t, err)

	_, ok := tr.File("backend/main.py")
	assert.True(t, ok)
	e, ok := tr.Lookup("backend/tests")
	assert.True(t, ok)
	assert.Equal(t, Dir, e.Kind)
}

func TestFormat(t *testing.T) {
	tr, err := NewBuilder().
		File("backend/main.py", "").
		File(".env", "").
		Build()
	require.NoError(t, err)

	want := "shop/\n" +
		"├── backend/\n" +
		"│   └── main.py\n" +
		"└── .env"
	assert.Equal(t, want, tr.Format("shop"))
}
