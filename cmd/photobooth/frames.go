package main

import (
	"fmt"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/example/photobooth/internal/frames"
)

type framesCmd struct {
	command
	yaml bool
}

func parseFramesCmd(args []string, r *root) (*framesCmd, error) {
	cmd := &framesCmd{command: newCommand(r, "frames")}
	cmd.fs.Usage = usageFunc(cmd)
	cmd.fs.BoolVar(&cmd.yaml, "yaml", false, "print the full catalog, preview recipes included, as YAML")
	if err := cmd.fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (f *framesCmd) Run() error {
	all := frames.All()
	if f.yaml {
		enc := yaml.NewEncoder(f.out())
		enc.SetIndent(2)
		if err := enc.Encode(all); err != nil {
			return fmt.Errorf("encode frames: %w", err)
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(f.out(), 0, 4, 2, ' ', 0)
	for _, d := range all {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", d.ID, d.Icon, d.Label, d.Description)
	}
	return tw.Flush()
}
