package fixtures

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepository() *Repository {
	return NewRepository(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFixtureFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const usersFixture = `
- table: users
  rows:
    - id: 1
      name: alice
`

func TestDiscoverDirectoryThenFile(t *testing.T) {
	tmpDir := t.TempDir()
	dirA := filepath.Join(tmpDir, "a")
	writeFixtureFile(t, dirA, "01_users.yaml", usersFixture)
	writeFixtureFile(t, dirA, "02_posts.yaml", `
- table: posts
  rows:
    - id: 10
      author_id: 1
`)
	fileB := writeFixtureFile(t, tmpDir, "b_comments.yml", `
- table: comments
  rows:
    - id: 100
`)

	repo := testRepository()
	found, err := repo.Discover([]string{dirA, fileB})
	require.NoError(t, err)

	require.Len(t, found, 3)
	assert.Equal(t, filepath.Join(dirA, "01_users.yaml"), found[0].Path)
	assert.Equal(t, filepath.Join(dirA, "02_posts.yaml"), found[1].Path)
	assert.Equal(t, fileB, found[2].Path)
}

func TestDiscoverRecursesLexicographically(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFile(t, tmpDir, filepath.Join("nested", "deep.yaml"), usersFixture)
	writeFixtureFile(t, tmpDir, "a_first.yaml", usersFixture)
	writeFixtureFile(t, tmpDir, "z_last.yaml", usersFixture)

	repo := testRepository()
	found, err := repo.Discover([]string{tmpDir})
	require.NoError(t, err)

	require.Len(t, found, 3)
	assert.Equal(t, filepath.Join(tmpDir, "a_first.yaml"), found[0].Path)
	assert.Equal(t, filepath.Join(tmpDir, "nested", "deep.yaml"), found[1].Path)
	assert.Equal(t, filepath.Join(tmpDir, "z_last.yaml"), found[2].Path)
}

func TestDiscoverIgnoresNonFixtureFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixtureFile(t, tmpDir, "users.yaml", usersFixture)
	writeFixtureFile(t, tmpDir, "readme.txt", "nothing to load here")
	writeFixtureFile(t, tmpDir, "data.csv", "id,name\n1,alice\n")

	repo := testRepository()
	found, err := repo.Discover([]string{tmpDir})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestDiscoverSkipsMissingPaths(t *testing.T) {
	tmpDir := t.TempDir()
	file := writeFixtureFile(t, tmpDir, "users.yaml", usersFixture)

	repo := testRepository()
	found, err := repo.Discover([]string{filepath.Join(tmpDir, "does-not-exist"), file})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestDiscoverEmptyResult(t *testing.T) {
	repo := testRepository()
	found, err := repo.Discover([]string{t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDiscoverExplicitFileUnsupportedFormat(t *testing.T) {
	tmpDir := t.TempDir()
	file := writeFixtureFile(t, tmpDir, "users.json", `{"table": "users"}`)

	repo := testRepository()
	_, err := repo.Discover([]string{file})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTableNames(t *testing.T) {
	fixtures := []Fixture{
		{Tables: []Table{{Name: "users"}, {Name: "posts"}}},
		{Tables: []Table{{Name: "users"}, {Name: "comments"}}},
	}

	assert.Equal(t, []string{"users", "posts", "comments"}, TableNames(fixtures))
}

func TestRowCount(t *testing.T) {
	f := Fixture{Tables: []Table{
		{Name: "users", Rows: []Row{{"id": 1}, {"id": 2}}},
		{Name: "posts", Rows: []Row{{"id": 10}}},
	}}

	assert.Equal(t, 3, f.RowCount())
}
