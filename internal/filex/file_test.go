package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("downloads")
	require.NoError(t, err)

	want := filepath.Join(tmp, "downloads")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubdDir("downloads")
	require.NoError(t, err)

	second, err := EnsureSubdDir("downloads")
	require.NoError(t, err)

	require.Equal(t, first, second)
	fi, err := os.Stat(second)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("downloads", []byte("x"), 0o660))

	_, err := EnsureSubdDir("downloads")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestSaveInSubdDir_WritesBaseNameOnly(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	path, err := SaveInSubdDir("downloads", "../../etc/x.txt", []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "downloads", "x.txt"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestSaveInSubdDir_RejectsEmptyName(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	_, err := SaveInSubdDir("downloads", "", []byte("x"))
	require.Error(t, err)
}

func TestDetectContentType(t *testing.T) {
	require.Equal(t, "text/plain; charset=utf-8", DetectContentType("x.txt", []byte("hello")))
	require.Equal(t, "application/pdf", DetectContentType("doc.PDF", nil))
	require.Equal(t, "application/octet-stream", DetectContentType("blob", []byte{0x00, 0x01, 0x02}))
}
