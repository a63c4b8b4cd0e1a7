package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery pairs a control sequence the program may emit with the
// canned reply a real terminal would send back.
type terminalQuery struct {
	pattern  []byte
	response []byte
}

// Queries bubbletea and lipgloss issue on startup: cursor position plus
// foreground and background color probes, in both BEL and ST terminated
// forms. Colors are answered as light text on a dark background so the
// adaptive styles resolve deterministically.
var terminalQueries = []terminalQuery{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

// terminalResponder watches the program's output stream and answers the
// terminal capability queries above, so the TUI under test never stalls
// waiting for a reply the PTY would otherwise never send.
type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	tr.scan()
	// Keep a small tail so sequences split across reads still match.
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

func (tr *terminalResponder) scan() {
	for {
		answered := false
		for _, query := range terminalQueries {
			idx := bytes.Index(tr.buf, query.pattern)
			if idx < 0 {
				continue
			}
			tr.buf = tr.buf[idx+len(query.pattern):]
			_, _ = tr.w.Write(query.response)
			answered = true
		}
		if !answered {
			return
		}
	}
}
