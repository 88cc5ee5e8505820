// Package keymap translates between paths under a local root directory and
// object keys under a key prefix.
//
// Keys always use '/' as the separator whatever the host convention is, and
// the prefix is used literally: a key is prefix + "/" + relative path. An
// empty prefix maps files to the root of the bucket.
package keymap

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Separator is the path separator inside object keys.
const Separator = "/"

type ErrMapping struct {
	msg string
}

func (e *ErrMapping) Error() string {
	return e.msg
}

// ToKey returns the key for the file at path, which must be inside root.
func ToKey(root, prefix, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", &ErrMapping{
			msg: fmt.Sprintf("cannot map %s relative to %s: %s", path, root, err),
		}
	}
	if rel == "." || !filepath.IsLocal(rel) {
		return "", &ErrMapping{
			msg: fmt.Sprintf("path is not inside %s: %s", root, path),
		}
	}

	return JoinKey(prefix, filepath.ToSlash(rel)), nil
}

// JoinKey appends a slash separated relative path to the prefix.
func JoinKey(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return prefix + Separator + rel
}

// RelPath strips the prefix and its separator from key. The result is
// slash separated and may be empty when key is the prefix's own directory
// marker.
func RelPath(prefix, key string) (string, error) {
	rel := key
	if prefix != "" {
		head := prefix + Separator
		if !strings.HasPrefix(key, head) {
			return "", &ErrMapping{
				msg: fmt.Sprintf("key is not under prefix %q: %s", prefix, key),
			}
		}
		rel = key[len(head):]
	}

	// directory markers keep their trailing slash in the key only
	check := strings.TrimSuffix(rel, Separator)
	if check != "" && !filepath.IsLocal(filepath.FromSlash(check)) {
		return "", &ErrMapping{
			msg: fmt.Sprintf("key escapes the restore root: %s", key),
		}
	}

	return rel, nil
}

// ToLocalPath returns where the object at key lives below root.
func ToLocalPath(root, prefix, key string) (string, error) {
	rel, err := RelPath(prefix, key)
	if err != nil {
		return "", err
	}

	return filepath.Join(root, filepath.FromSlash(rel)), nil
}

// IsDirMarker reports whether key names an empty directory rather than an
// object with content. The store has no directories; by convention a key
// ending in the separator stands for one.
func IsDirMarker(key string) bool {
	return strings.HasSuffix(key, Separator)
}
