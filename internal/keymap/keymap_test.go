package keymap_test

import (
	"errors"
	"path/filepath"

	"github.com/stretchr/testify/require"
	"testing"

	"github.com/studio1767/s3tree/internal/keymap"
)

func TestToKeyUsesSlashes(t *testing.T) {
	root := filepath.Join("data", "root")
	path := filepath.Join(root, "one", "two", "file.txt")

	key, err := keymap.ToKey(root, "pfx", path)
	require.NoError(t, err)
	require.Equal(t, "pfx/one/two/file.txt", key)
}

func TestToKeyEmptyPrefix(t *testing.T) {
	root := filepath.Join("data", "root")

	key, err := keymap.ToKey(root, "", filepath.Join(root, "x.txt"))
	require.NoError(t, err)
	require.Equal(t, "x.txt", key)
}

func TestToKeyKeepsPrefixLiteral(t *testing.T) {
	root := filepath.Join("data", "root")

	key, err := keymap.ToKey(root, "pfx/", filepath.Join(root, "x.txt"))
	require.NoError(t, err)
	require.Equal(t, "pfx//x.txt", key)
}

func TestToKeyOutsideRoot(t *testing.T) {
	root := filepath.Join("data", "root")

	for _, path := range []string{
		root,
		filepath.Join("data", "other", "x.txt"),
		filepath.Join("data", "x.txt"),
	} {
		_, err := keymap.ToKey(root, "pfx", path)
		var mapping *keymap.ErrMapping
		require.True(t, errors.As(err, &mapping), path)
	}
}

func TestRoundTrip(t *testing.T) {
	root := filepath.Join("data", "root")

	for _, rel := range []string{
		"x.txt",
		"a/b/c.txt",
		"with space/and-dash.bin",
		"deep/er/and/deeper/still/file",
	} {
		for _, prefix := range []string{"pfx", "a/b", ""} {
			path := filepath.Join(root, filepath.FromSlash(rel))

			key, err := keymap.ToKey(root, prefix, path)
			require.NoError(t, err)

			back, err := keymap.ToLocalPath(root, prefix, key)
			require.NoError(t, err)
			require.Equal(t, path, back)

			relBack, err := keymap.RelPath(prefix, key)
			require.NoError(t, err)
			require.Equal(t, rel, relBack)
		}
	}
}

func TestToLocalPathRejectsForeignKey(t *testing.T) {
	root := filepath.Join("data", "root")

	for _, key := range []string{
		"other/x.txt",
		"pfxx/x.txt",
		"pfx",
	} {
		_, err := keymap.ToLocalPath(root, "pfx", key)
		var mapping *keymap.ErrMapping
		require.True(t, errors.As(err, &mapping), key)
	}
}

func TestToLocalPathRejectsEscape(t *testing.T) {
	root := filepath.Join("data", "root")

	for _, key := range []string{
		"pfx/../x.txt",
		"pfx/a/../../x.txt",
		"pfx//etc/passwd",
	} {
		_, err := keymap.ToLocalPath(root, "pfx", key)
		var mapping *keymap.ErrMapping
		require.True(t, errors.As(err, &mapping), key)
	}
}

func TestDirMarkers(t *testing.T) {
	root := filepath.Join("data", "root")

	require.True(t, keymap.IsDirMarker("pfx/a/"))
	require.False(t, keymap.IsDirMarker("pfx/a"))

	path, err := keymap.ToLocalPath(root, "pfx", "pfx/a/b/")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "a", "b"), path)

	path, err = keymap.ToLocalPath(root, "pfx", "pfx/")
	require.NoError(t, err)
	require.Equal(t, root, path)
}

func TestParseRemote(t *testing.T) {
	remote, err := keymap.ParseRemote("bucket::some/prefix")
	require.NoError(t, err)
	require.Equal(t, "bucket", remote.Bucket)
	require.Equal(t, "some/prefix", remote.Prefix)
	require.Equal(t, "bucket::some/prefix", remote.String())

	remote, err = keymap.ParseRemote("bucket::")
	require.NoError(t, err)
	require.Equal(t, "", remote.Prefix)

	for _, bad := range []string{"bucket", "::prefix", "", "bucket:prefix"} {
		_, err := keymap.ParseRemote(bad)
		var badarg *keymap.ErrBadArgument
		require.True(t, errors.As(err, &badarg), bad)
	}
}
