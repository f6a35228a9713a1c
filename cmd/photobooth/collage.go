package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/photobooth/internal/collage"
	"github.com/example/photobooth/internal/photos"
)

type collageCmd struct {
	command
	latest bool
	output string
	copy   bool
	now    func() time.Time
}

func parseCollageCmd(args []string, r *root) (*collageCmd, error) {
	cmd := &collageCmd{command: newCommand(r, "collage"), now: time.Now}
	fs := cmd.fs
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.latest, "latest", false, "use the newest photos instead of listing ids")
	fs.StringVar(&cmd.output, "o", "", "output PNG file")
	fs.BoolVar(&cmd.copy, "copy", false, "copy the collage to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !cmd.latest && fs.NArg() == 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *collageCmd) Run() error {
	kv, err := c.openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	records := photos.NewStore(kv).Load()

	var sel collage.Selection
	ids := c.fs.Args()
	if c.latest {
		ids = collage.Latest(records, collage.MaxPhotos)
	}
	for _, id := range ids {
		if sel.Has(id) {
			continue
		}
		if _, err := sel.Toggle(id); err != nil {
			if errors.Is(err, collage.ErrSelectionFull) {
				return fmt.Errorf("collage: at most %d photos can be combined: %w", collage.MaxPhotos, err)
			}
			return err
		}
	}
	picked := sel.Len()
	sel.Prune(records)
	if missing := picked - sel.Len(); missing > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d photo(s) not found in the gallery\n", missing)
	}

	opts, err := c.collageOptions()
	if err != nil {
		return err
	}
	img, err := collage.Build(context.Background(), collage.FromRecords(records, sel.IDs()), opts)
	if err != nil {
		if errors.Is(err, collage.ErrNoPhotos) {
			return fmt.Errorf("collage: %w; take some photos first", err)
		}
		return fmt.Errorf("collage: %w", err)
	}
	data, err := collage.EncodePNG(img)
	if err != nil {
		return err
	}

	path := c.exportPath(collage.Filename(c.now()), c.output)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("collage: write %s: %w", path, err)
	}
	fmt.Fprintln(c.out(), path)
	c.notifySave(path)
	if c.copy {
		if err := copyEncoded("image/png", data); err != nil {
			return fmt.Errorf("collage: copy: %w", err)
		}
		c.notifyCopy("collage")
	}
	return nil
}
