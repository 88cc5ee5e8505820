package ops

import (
	"context"
	"strings"
)

// Filters out files from the stream based on their file extension.
// If 'include' is true, files that don't match are dropped from the
// stream; if 'include' is false, files that do match are dropped from
// the stream. Dropped files never reach the store and are not counted.
// The matching is case-insensitive and extensions start with a '.'.

func NewFileExtensionFilter(ctx context.Context, in <-chan *EntryInfo, extensions []string, include bool) <-chan *EntryInfo {

	// normalise the extensions and make sure they start with a '.'
	var ext []string
	for _, extension := range extensions {
		if len(extension) == 0 {
			continue
		}
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
		ext = append(ext, strings.ToLower(extension))
	}

	out := make(chan *EntryInfo, 10)
	filter := fileExtensionFilter{
		ctx:        ctx,
		in:         in,
		out:        out,
		extensions: ext,
		include:    include,
	}
	go filter.run()

	return out
}

type fileExtensionFilter struct {
	ctx        context.Context
	in         <-chan *EntryInfo
	out        chan<- *EntryInfo
	extensions []string
	include    bool
}

func (filter *fileExtensionFilter) run() {
	defer close(filter.out)

	for {
		// check the channels
		select {
		case <-filter.ctx.Done():
			return
		case info, ok := <-filter.in:
			if !ok {
				return
			}
			if filter.keep(info) && !send(filter.ctx, filter.out, info) {
				return
			}
		}
	}
}

func (filter *fileExtensionFilter) keep(info *EntryInfo) bool {
	// pass on failure information
	if info.Action == Failed {
		return true
	}

	// see if this file has one of our matching extensions
	name := strings.ToLower(info.RelPath)
	ext_match := false
	for _, ext := range filter.extensions {
		if strings.HasSuffix(name, ext) {
			ext_match = true
			break
		}
	}

	// case 1: matching for include
	//    include if filter.include == true && ext_match == true
	//    ... or if ext_match == filter.include
	// case 2: matching for exclude
	//    if filter.include == false && ext_match == false, then we include
	//    ... or if ext_match == filter.include
	return ext_match == filter.include
}
