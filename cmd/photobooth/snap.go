package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/photobooth/internal/camera"
	"github.com/example/photobooth/internal/photos"
	"github.com/example/photobooth/internal/session"
)

type snapCmd struct {
	command
	mode    string
	facing  string
	output  string
	copy    bool
	timeout time.Duration
}

func parseSnapCmd(args []string, r *root) (*snapCmd, error) {
	cmd := &snapCmd{command: newCommand(r, "snap")}
	fs := cmd.fs
	fs.Usage = usageFunc(cmd)
	frame, facing := "", ""
	if r != nil {
		frame, facing = r.config.Frame, r.config.Facing
	}
	fs.StringVar(&cmd.mode, "frame", frame, "frame style (polaroid, minimal, film, neon-story)")
	fs.StringVar(&cmd.facing, "facing", facing, "camera direction (user, environment)")
	fs.StringVar(&cmd.output, "o", "", "also write the framed JPEG to this file")
	fs.BoolVar(&cmd.copy, "copy", false, "copy the framed photo to the clipboard")
	fs.DurationVar(&cmd.timeout, "timeout", 10*time.Second, "how long to wait for the camera")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *snapCmd) Run() error {
	mode, err := frameMode(s.mode)
	if err != nil {
		return err
	}
	facing, err := camera.ParseFacing(s.facing)
	if err != nil {
		return err
	}
	cam, err := s.camera()
	if err != nil {
		return err
	}
	comp, err := s.compositor()
	if err != nil {
		return err
	}
	kv, err := s.openKV()
	if err != nil {
		return err
	}
	defer kv.Close()

	sess := session.New(cam, comp, photos.NewStore(kv), session.WithFacing(facing), session.WithMode(mode))
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := sess.Start(ctx); err != nil {
		return err
	}
	if err := sess.WaitReady(ctx); err != nil {
		var ce *camera.CapabilityError
		if errors.As(err, &ce) {
			return fmt.Errorf("snap: %s: %w", ce.Message(), err)
		}
		return fmt.Errorf("snap: %w", err)
	}
	rec, err := sess.Capture(ctx)
	if err != nil {
		if errors.Is(err, photos.ErrQuotaExceeded) {
			s.notifyStorageFull()
			return fmt.Errorf("snap: storage is full, delete photos from the gallery: %w", err)
		}
		return fmt.Errorf("snap: %w", err)
	}
	fmt.Fprintln(s.out(), rec.ID)

	img, err := rec.Decode()
	if err != nil {
		return fmt.Errorf("snap: decode %s: %w", rec.ID, err)
	}
	s.notifyCapture(rec.ID, img)
	if s.output != "" {
		data, _, err := rec.Bytes()
		if err != nil {
			return err
		}
		if err := os.WriteFile(s.output, data, 0o644); err != nil {
			return fmt.Errorf("snap: write %s: %w", s.output, err)
		}
		s.notifySave(s.output)
	}
	if s.copy {
		if err := copyImage(img); err != nil {
			return fmt.Errorf("snap: copy: %w", err)
		}
		s.notifyCopy(photos.Filename(rec))
	}
	return nil
}
