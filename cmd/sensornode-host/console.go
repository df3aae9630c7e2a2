//go:build !(rp2040 || rp2350)

package main

import (
	"io"

	"github.com/chzyer/readline"

	"sensornode-go/services/serialio"
)

// console is an interactive command line. Log and gateway output go
// through its writers so the prompt is redrawn below them.
type console struct {
	*serialio.ReaderPort
	rl     *readline.Instance
	onExit func()
}

func newConsole() (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "node> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	c := &console{rl: rl}
	c.ReaderPort = serialio.FromReader(lineReader{c})
	return c, nil
}

func (c *console) Stdout() io.Writer { return c.rl.Stdout() }
func (c *console) Stderr() io.Writer { return c.rl.Stderr() }
func (c *console) Close() error      { return c.rl.Close() }

// lineReader yields one edited line per Read, newline terminated.
type lineReader struct{ c *console }

func (r lineReader) Read(p []byte) (int, error) {
	line, err := r.c.rl.Readline()
	if err != nil {
		// ^C and ^D both end the session.
		if r.c.onExit != nil {
			r.c.onExit()
		}
		return 0, io.EOF
	}
	if len(line) >= len(p) {
		line = line[:len(p)-1]
	}
	n := copy(p, line)
	p[n] = '\n'
	return n + 1, nil
}
