package ops

import (
	"os"
	"sync"
)

const dirPerm = 0755

// DirMaker creates directory chains on behalf of concurrent downloads. Each
// distinct directory is created at most once per DirMaker; concurrent
// callers asking for the same directory wait for the first attempt and share
// its result.
type DirMaker struct {
	lock sync.Mutex
	dirs map[string]*dirState
}

type dirState struct {
	once sync.Once
	err  error
}

func NewDirMaker() *DirMaker {
	return &DirMaker{
		dirs: make(map[string]*dirState),
	}
}

// Ensure makes sure dir and all of its parents exist. An existing directory
// is not an error.
func (dm *DirMaker) Ensure(dir string) error {
	dm.lock.Lock()
	state, ok := dm.dirs[dir]
	if !ok {
		state = &dirState{}
		dm.dirs[dir] = state
	}
	dm.lock.Unlock()

	state.once.Do(func() {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			state.err = &ErrMkdir{
				dir: dir,
				err: err,
			}
		}
	})

	return state.err
}

// Count returns the number of distinct directories asked for so far.
func (dm *DirMaker) Count() int {
	dm.lock.Lock()
	defer dm.lock.Unlock()

	return len(dm.dirs)
}
