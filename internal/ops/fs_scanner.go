package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/studio1767/s3tree/internal/keymap"
)

// ScanOptions prunes the directory walk. SkipDirs names directories that are
// never entered; a directory holding any of SkipDirItems is skipped with all
// of its contents.
type ScanOptions struct {
	SkipDirs     []string
	SkipDirItems []string
}

// NewFsScanner walks root depth first and emits one entry per regular file,
// with its key under prefix already filled in. Symbolic links and other
// special files are not followed. Directories that can't be read are
// reported as failed entries and the walk carries on.
func NewFsScanner(ctx context.Context, root, prefix string, opts ScanOptions) <-chan *EntryInfo {

	// convert the skip lists to maps for easier lookup
	skip_dirs := make(map[string]bool)
	skip_dir_items := make(map[string]bool)

	for _, dir := range opts.SkipDirs {
		skip_dirs[dir] = true
	}
	for _, item := range opts.SkipDirItems {
		skip_dir_items[item] = true
	}

	out := make(chan *EntryInfo, 10)
	fs := fsScanner{
		ctx:            ctx,
		out:            out,
		root:           root,
		prefix:         prefix,
		skip_dirs:      skip_dirs,
		skip_dir_items: skip_dir_items,
	}
	go func() {
		defer close(fs.out)
		fs.run(fs.root)
	}()

	return out
}

type fsScanner struct {
	ctx            context.Context
	out            chan<- *EntryInfo
	root           string
	prefix         string
	skip_dirs      map[string]bool
	skip_dir_items map[string]bool
}

func (fs *fsScanner) run(dir string) bool {
	// check for the existance of skip_dir_items
	for skip := range fs.skip_dir_items {
		_, err := os.Lstat(filepath.Join(dir, skip))
		if err == nil {
			// no error, so the file exists... bail out
			return true
		}
	}

	// read the directory contents
	entries, err := os.ReadDir(dir)
	if err != nil {
		info := &EntryInfo{
			LocalPath: dir,
		}
		rel, _ := filepath.Rel(fs.root, dir)
		info.RelPath = filepath.ToSlash(rel)
		info.Fail(&ErrScan{
			dir: dir,
			err: err,
		})
		return send(fs.ctx, fs.out, info)
	}

	// loop over the directory entries
	for _, entry := range entries {
		// check for context done
		select {
		case <-fs.ctx.Done():
			return false
		default:
		}

		fpath := filepath.Join(dir, entry.Name())

		if entry.Type().IsRegular() {
			if !fs.emit(fpath, entry) {
				return false
			}
		} else if entry.IsDir() && !fs.skip_dirs[entry.Name()] {
			// scan into the subdirectory
			if !fs.run(fpath) {
				return false
			}
		}
	}

	return true
}

func (fs *fsScanner) emit(fpath string, entry os.DirEntry) bool {
	info := &EntryInfo{
		LocalPath: fpath,
	}

	rel, err := filepath.Rel(fs.root, fpath)
	if err != nil {
		info.Fail(err)
		return send(fs.ctx, fs.out, info)
	}
	info.RelPath = filepath.ToSlash(rel)

	key, err := keymap.ToKey(fs.root, fs.prefix, fpath)
	if err != nil {
		info.Fail(err)
		return send(fs.ctx, fs.out, info)
	}
	info.Key = key

	// the file may have gone away since the directory was read
	st, err := entry.Info()
	if err != nil {
		info.Fail(err)
		return send(fs.ctx, fs.out, info)
	}
	info.RawSize = st.Size()
	info.ModTime = st.ModTime()
	info.Mode = st.Mode()

	return send(fs.ctx, fs.out, info)
}
