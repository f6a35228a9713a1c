package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/example/photobooth/internal/photos"
)

type galleryCmd struct {
	command
	action string
	args   []string
	yaml   bool
	output string
	all    bool
}

func parseGalleryCmd(args []string, r *root) (*galleryCmd, error) {
	cmd := &galleryCmd{command: newCommand(r, "gallery")}
	fs := cmd.fs
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.yaml, "yaml", false, "list as YAML")
	fs.StringVar(&cmd.output, "o", "", "export: output file, or directory with -all")
	fs.BoolVar(&cmd.all, "all", false, "export every photo")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.action = strings.ToLower(fs.Arg(0))
	// Flags may also follow the action.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return nil, err
	}
	cmd.args = fs.Args()
	return cmd, nil
}

type galleryEntry struct {
	ID        string `yaml:"id"`
	CreatedAt string `yaml:"createdAt"`
	Filename  string `yaml:"filename"`
	Bytes     int    `yaml:"bytes"`
}

type galleryListing struct {
	Photos []galleryEntry `yaml:"photos"`
	Usage  photos.Usage   `yaml:"usage"`
}

func (g *galleryCmd) Run() error {
	kv, err := g.openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	store := photos.NewStore(kv)

	switch g.action {
	case "list", "ls":
		return g.list(store)
	case "delete", "rm":
		return g.delete(store)
	case "clear":
		store.Clear()
		fmt.Fprintln(g.out(), "gallery cleared")
		return nil
	case "export":
		return g.export(store)
	case "copy":
		return g.copy(store)
	case "quota", "usage":
		u := store.Usage()
		fmt.Fprintf(g.out(), "photos: %d\nused: %d bytes\navailable: %d bytes\nestimated photos remaining: %d\n",
			u.Photos, u.UsedBytes, u.AvailableBytes, u.EstimatedPhotosRemaining)
		return nil
	default:
		return &UsageError{of: g}
	}
}

func (g *galleryCmd) list(store *photos.Store) error {
	records := store.Load()
	listing := galleryListing{Photos: make([]galleryEntry, 0, len(records)), Usage: store.Usage()}
	for _, r := range records {
		data, _, err := r.Bytes()
		if err != nil {
			data = nil
		}
		listing.Photos = append(listing.Photos, galleryEntry{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			Filename:  photos.Filename(r),
			Bytes:     len(data),
		})
	}
	if g.yaml {
		enc := yaml.NewEncoder(g.out())
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return fmt.Errorf("encode gallery: %w", err)
		}
		return enc.Close()
	}
	if len(records) == 0 {
		fmt.Fprintln(g.out(), "no photos yet")
		return nil
	}
	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	for _, e := range listing.Photos {
		fmt.Fprintf(tw, "%s\t%s\t%d KB\n", e.ID, e.CreatedAt, (e.Bytes+1023)/1024)
	}
	return tw.Flush()
}

func (g *galleryCmd) delete(store *photos.Store) error {
	if len(g.args) == 0 {
		return &UsageError{of: g}
	}
	for _, id := range g.args {
		ok, err := store.Delete(id)
		if err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("delete %s: no such photo", id)
		}
		fmt.Fprintf(g.out(), "deleted %s\n", id)
	}
	return nil
}

// resolve finds a photo by id, or the newest one for "latest".
func resolve(store *photos.Store, id string) (photos.Record, error) {
	if id == "latest" {
		records := store.Load()
		if len(records) == 0 {
			return photos.Record{}, fmt.Errorf("no photos yet")
		}
		return records[0], nil
	}
	r, ok := store.Get(id)
	if !ok {
		return photos.Record{}, fmt.Errorf("no such photo %s", id)
	}
	return r, nil
}

func (g *galleryCmd) export(store *photos.Store) error {
	if g.all {
		dir := g.output
		if dir == "" {
			dir = g.exportPath("", "")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		for _, r := range store.Load() {
			if err := g.write(r, filepath.Join(dir, photos.Filename(r))); err != nil {
				return err
			}
		}
		return nil
	}
	if len(g.args) != 1 {
		return &UsageError{of: g}
	}
	r, err := resolve(store, g.args[0])
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return g.write(r, g.exportPath(photos.Filename(r), g.output))
}

func (g *galleryCmd) write(r photos.Record, path string) error {
	data, _, err := r.Bytes()
	if err != nil {
		return fmt.Errorf("export %s: %w", r.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", r.ID, err)
	}
	fmt.Fprintln(g.out(), path)
	g.notifySave(path)
	return nil
}

func (g *galleryCmd) copy(store *photos.Store) error {
	id := "latest"
	if len(g.args) > 0 {
		id = g.args[0]
	}
	r, err := resolve(store, id)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	data, mime, err := r.Bytes()
	if err != nil {
		return fmt.Errorf("copy %s: %w", r.ID, err)
	}
	if err := copyEncoded(mime, data); err != nil {
		return fmt.Errorf("copy %s: %w", r.ID, err)
	}
	fmt.Fprintf(g.out(), "copied %s\n", r.ID)
	g.notifyCopy(photos.Filename(r))
	return nil
}
