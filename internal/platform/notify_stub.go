//go:build !linux && !darwin && !windows

package platform

// Notify does nothing on platforms without a supported notification center.
// The booth still shows its own toast for captures and failures.
func Notify(title, body string, opts Options) error {
	return nil
}
