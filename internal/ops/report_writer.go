package ops

import (
	"context"
	"fmt"
	"io"
	"net/url"
)

// ReportWriter writes one line per entry to a report and passes the entry
// on. Lines have the form:
//
//	action,bytes,key,error
//
// with key and error url-escaped so they never contain a comma. Entries
// without a key (such as unreadable directories) are reported by path.
type ReportWriter struct {
	ctx    context.Context
	in     <-chan *EntryInfo
	out    chan *EntryInfo
	writer io.Writer
	err    error
}

func NewReportWriter(ctx context.Context, in <-chan *EntryInfo, rwriter io.Writer) *ReportWriter {
	rw := ReportWriter{
		ctx:    ctx,
		in:     in,
		out:    make(chan *EntryInfo, 10),
		writer: rwriter,
	}
	go rw.run()

	return &rw
}

func (rw *ReportWriter) Entries() <-chan *EntryInfo {
	return rw.out
}

// Err returns the first write failure. Entries keep flowing after a failed
// write; only the report is abandoned. Valid once Entries has been drained.
func (rw *ReportWriter) Err() error {
	return rw.err
}

func (rw *ReportWriter) run() {
	defer close(rw.out)

	for {
		// check the channels
		select {
		case <-rw.ctx.Done():
			return
		case info, ok := <-rw.in:
			if !ok {
				return
			}
			rw.process(info)
			if !send(rw.ctx, rw.out, info) {
				return
			}
		}
	}
}

func (rw *ReportWriter) process(info *EntryInfo) {
	if rw.err != nil {
		return
	}

	name := info.Key
	if name == "" {
		name = info.RelPath
	}

	msg := ""
	if info.Err != nil {
		msg = url.QueryEscape(info.Err.Error())
	}

	line := fmt.Sprintf("%s,%d,%s,%s\n",
		info.Action,
		info.TransferredSize,
		url.PathEscape(name),
		msg,
	)
	_, err := rw.writer.Write([]byte(line))
	if err != nil {
		rw.err = fmt.Errorf("failed writing entry to report: %w", err)
	}
}
