package main

import (
	"fmt"

	"github.com/example/photobooth/internal/booth"
	"github.com/example/photobooth/internal/camera"
	"github.com/example/photobooth/internal/photos"
	"github.com/example/photobooth/internal/session"
)

type boothCmd struct {
	command
	mode   string
	facing string
	width  int
	height int
}

func parseBoothCmd(args []string, r *root) (*boothCmd, error) {
	cmd := &boothCmd{command: newCommand(r, "booth")}
	fs := cmd.fs
	fs.Usage = usageFunc(cmd)
	frame, facing := "", ""
	if r != nil {
		frame, facing = r.config.Frame, r.config.Facing
	}
	fs.StringVar(&cmd.mode, "frame", frame, "frame style to start with")
	fs.StringVar(&cmd.facing, "facing", facing, "camera direction (user, environment)")
	fs.IntVar(&cmd.width, "width", 960, "window width")
	fs.IntVar(&cmd.height, "height", 800, "window height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (b *boothCmd) Run() error {
	mode, err := frameMode(b.mode)
	if err != nil {
		return err
	}
	facing, err := camera.ParseFacing(b.facing)
	if err != nil {
		return err
	}
	cam, err := b.camera()
	if err != nil {
		return err
	}
	comp, err := b.compositor()
	if err != nil {
		return err
	}
	kv, err := b.openKV()
	if err != nil {
		return err
	}
	defer kv.Close()

	store := photos.NewStore(kv)
	sess := session.New(cam, comp, store, session.WithFacing(facing), session.WithMode(mode))
	defer sess.Close()

	w := booth.New(sess, b.themeContext(kv), store,
		booth.WithNotifier(b.notifier),
		booth.WithOverlay(booth.Overlay{Fonts: comp.Fonts, Branding: comp.Branding}),
		booth.WithClipboard(copyImage),
		booth.WithSize(b.width, b.height),
	)
	if err := runBoothFunc(w); err != nil {
		return fmt.Errorf("booth: %w", err)
	}
	return nil
}

func runBooth(w *booth.Booth) error {
	w.Run()
	return nil
}
