package platform

// DefaultAppName is used when Options.AppName is empty.
const DefaultAppName = "Smile Photobooth"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification center.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgent marks failures the user has to act on, such as a full gallery.
	Urgent bool
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
