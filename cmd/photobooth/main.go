package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/photobooth/internal/clipboard"
	"github.com/example/photobooth/internal/config"
	"github.com/example/photobooth/internal/notify"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// Clipboard writers, replaced in tests.
var (
	copyImage    = clipboard.WriteImage
	copyEncoded  = clipboard.WriteEncoded
	runBoothFunc = runBooth
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	notifier *notify.Notifier
	config   *config.Config
	stdout   io.Writer

	captureAlerts     bool
	saveAlerts        bool
	copyAlerts        bool
	storageFullAlerts bool
	themeName         string
	storage           string
	backend           string
	source            string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return newRootWith(cfg, os.Stdout)
}

// newRootWith builds the root command around an already loaded config.
func newRootWith(cfg *config.Config, stdout io.Writer) *root {
	r := &root{
		fs:       flag.NewFlagSet("photobooth", flag.ContinueOnError),
		program:  "photobooth",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
		stdout:   stdout,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after taking a photo")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after exporting a file")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.storageFullAlerts, "notify-storage-full", cfg.Notify.StorageFull, "show a desktop notification when the gallery is full")

	// Precedence: CLI > Env > Config > Default. Env was folded into cfg by
	// ApplyEnv, so an empty flag falls back to it in Run.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (sky, neon)")
	r.fs.StringVar(&r.storage, "storage", "", "directory holding the gallery")
	r.fs.StringVar(&r.backend, "backend", "", "storage backend (file, sqlite, memory)")
	r.fs.StringVar(&r.source, "source", "", "camera source: a directory of still frames or x11")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventCapture, r.captureAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventStorageFull, r.storageFullAlerts)
	}
	if r.storage != "" {
		r.config.Storage = r.storage
	}
	if r.backend != "" {
		r.config.Backend = r.backend
	}
	if r.source != "" {
		r.config.Source = r.source
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "booth":
		cmd, err = parseBoothCmd(subArgs, r)
	case "snap":
		cmd, err = parseSnapCmd(subArgs, r)
	case "frames":
		cmd, err = parseFramesCmd(subArgs, r)
	case "gallery":
		cmd, err = parseGalleryCmd(subArgs, r)
	case "collage":
		cmd, err = parseCollageCmd(subArgs, r)
	case "theme":
		cmd, err = parseThemeCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, flag.ErrHelp):
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyCapture(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Capture(detail, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyStorageFull() {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.StorageFull("")
}

// subcommandName joins the program name with a subcommand for help text.
func (r *root) subcommandName(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}
