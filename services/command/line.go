package command

import "strings"

// LineBuffer assembles command lines from a byte stream. '\n' or '\r'
// terminates a line; bytes beyond the buffer size are dropped until the
// next terminator.
type LineBuffer struct {
	buf      []byte
	max      int
	overflow bool
	Dropped  uint32
}

func NewLineBuffer(size int) *LineBuffer {
	if size <= 0 {
		size = 64
	}
	return &LineBuffer{buf: make([]byte, 0, size), max: size}
}

// Feed consumes one byte and returns a completed non-empty line.
func (l *LineBuffer) Feed(c byte) (line string, ok bool) {
	if c == '\n' || c == '\r' {
		if len(l.buf) == 0 {
			l.overflow = false
			return "", false
		}
		line = string(l.buf)
		l.buf = l.buf[:0]
		l.overflow = false
		return line, true
	}
	if len(l.buf) >= l.max {
		l.overflow = true
		l.Dropped++
		return "", false
	}
	l.buf = append(l.buf, c)
	return "", false
}

// Write feeds p and calls fn for every completed line.
func (l *LineBuffer) Write(p []byte, fn func(line string)) {
	for _, c := range p {
		if line, ok := l.Feed(c); ok {
			fn(line)
		}
	}
}

// Overflowed reports whether the current line has lost bytes.
func (l *LineBuffer) Overflowed() bool { return l.overflow }

// Split returns the first whitespace-delimited token of line and the
// remainder with only the separating whitespace removed.
func Split(line string) (key, args string) {
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}
