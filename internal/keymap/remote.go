package keymap

import (
	"fmt"
	"strings"
)

// RemoteSeparator splits the bucket from the key prefix on the command line.
const RemoteSeparator = "::"

type ErrBadArgument struct {
	msg string
}

func (e *ErrBadArgument) Error() string {
	return e.msg
}

func NewErrBadArgument(format string, args ...any) *ErrBadArgument {
	return &ErrBadArgument{
		msg: fmt.Sprintf(format, args...),
	}
}

// Remote is a bucket together with the key prefix used inside it.
type Remote struct {
	Bucket string
	Prefix string
}

// ParseRemote parses "bucket::prefix".
func ParseRemote(s string) (Remote, error) {
	bucket, prefix, found := strings.Cut(s, RemoteSeparator)
	if !found {
		return Remote{}, NewErrBadArgument("expected <bucket>%s<key-prefix>, got %q", RemoteSeparator, s)
	}
	if bucket == "" {
		return Remote{}, NewErrBadArgument("missing bucket name in %q", s)
	}

	return Remote{
		Bucket: bucket,
		Prefix: prefix,
	}, nil
}

func (r Remote) String() string {
	return r.Bucket + RemoteSeparator + r.Prefix
}
