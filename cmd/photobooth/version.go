package main

import "fmt"

type versionCmd struct{ *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.out(), "%s version %s\n", v.program, version)
	if commit != "" {
		fmt.Fprintf(v.out(), "commit %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(v.out(), "built %s\n", date)
	}
	return nil
}
