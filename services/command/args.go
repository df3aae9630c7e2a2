package command

import (
	"github.com/google/shlex"

	"sensornode-go/errcode"
)

// Args tokenises handler arguments with shell-style quoting so that values
// may contain spaces or commas, e.g. `set module1 "5,10,20,7,3,0,8"`.
func Args(args string) ([]string, error) {
	toks, err := shlex.Split(args)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "command.args", err)
	}
	return toks, nil
}

// ArgsN tokenises args and requires exactly n tokens.
func ArgsN(args string, n int) ([]string, error) {
	toks, err := Args(args)
	if err != nil {
		return nil, err
	}
	if len(toks) != n {
		return nil, errcode.New(errcode.InvalidParams, "command.args", "wrong argument count")
	}
	return toks, nil
}
