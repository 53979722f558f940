package form

import "time"

// ToastType selects the toast styling
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Toast is the transient notification shown after a submission
type Toast struct {
	Type    ToastType
	Message string
	Visible bool
}

// Toast returns the current toast
func (c *Controller) Toast() Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toast
}

// HideToast dismisses the toast now
func (c *Controller) HideToast() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideToastLocked()
}

// ShowToast displays a toast, replacing any visible one
func (c *Controller) ShowToast(t ToastType, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showToastLocked(t, message)
}

func (c *Controller) showToastLocked(t ToastType, message string) {
	c.stopTimerLocked()
	c.toastGen++
	c.toast = Toast{Type: t, Message: message, Visible: true}

	if c.toastDuration <= 0 {
		return
	}
	gen := c.toastGen
	c.timer = time.AfterFunc(c.toastDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// a newer toast owns the slot
		if c.toastGen == gen {
			c.toast.Visible = false
			c.timer = nil
		}
	})
}

func (c *Controller) hideToastLocked() {
	c.stopTimerLocked()
	c.toastGen++
	c.toast.Visible = false
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
