package main

import (
	"fmt"
	"strings"

	"github.com/example/photobooth/internal/theme"
)

type themeCmd struct {
	command
	action string
	args   []string
}

func parseThemeCmd(args []string, r *root) (*themeCmd, error) {
	cmd := &themeCmd{command: newCommand(r, "theme")}
	cmd.fs.Usage = usageFunc(cmd)
	if err := cmd.fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() < 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.action = strings.ToLower(cmd.fs.Arg(0))
	cmd.args = cmd.fs.Args()[1:]
	return cmd, nil
}

func (t *themeCmd) Run() error {
	kv, err := t.openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	// The stored choice is what these commands read and write, so the
	// -theme flag is not applied here.
	tc := theme.Load(kv, theme.NewLoader())

	switch t.action {
	case "get":
		fmt.Fprintln(t.out(), tc.Name())
		return nil
	case "set":
		if len(t.args) != 1 {
			return &UsageError{of: t}
		}
		n, err := theme.ParseName(t.args[0])
		if err != nil {
			return err
		}
		if err := tc.Set(n); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		fmt.Fprintln(t.out(), n)
		return nil
	case "toggle":
		n, err := tc.Toggle()
		if err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		fmt.Fprintln(t.out(), n)
		return nil
	case "show":
		name := tc.Name()
		if len(t.args) == 1 {
			if name, err = theme.ParseName(t.args[0]); err != nil {
				return err
			}
		}
		p, err := theme.NewLoader().Load(string(name))
		if err != nil {
			return err
		}
		_, err = p.WriteTo(t.out())
		return err
	default:
		return &UsageError{of: t}
	}
}
