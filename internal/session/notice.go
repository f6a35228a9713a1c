package session

import "time"

// NoticeKind says what a notice reports.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSaved
	NoticeStorageFull
)

const (
	savedText       = "Photo saved to gallery"
	storageFullText = "Storage is full. Delete photos from the gallery to free up space."
)

// Notice is a message about the last capture. Saved notices clear
// themselves; the others stay until dismissed or replaced.
type Notice struct {
	Kind    NoticeKind
	Text    string
	PhotoID string
}

func (n Notice) Visible() bool { return n.Kind != NoticeNone }

// Notice returns the message currently shown.
func (c *Controller) Notice() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// DismissNotice hides the current notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.notice.Visible() {
		return
	}
	c.clearNoticeLocked()
	c.publishLocked()
}

// showNoticeLocked replaces the notice. A positive ttl schedules its
// removal; the caller publishes.
func (c *Controller) showNoticeLocked(n Notice, ttl time.Duration) {
	c.clearNoticeLocked()
	c.notice = n
	if ttl <= 0 {
		return
	}
	id := c.noticeID
	c.timer = time.AfterFunc(ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.noticeID != id {
			return
		}
		c.clearNoticeLocked()
		c.publishLocked()
	})
}

func (c *Controller) clearNoticeLocked() {
	c.noticeID++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.notice = Notice{}
}
