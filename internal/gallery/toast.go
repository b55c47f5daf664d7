package gallery

import (
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultToastTTL is how long a notification stays visible.
const DefaultToastTTL = 3 * time.Second

type Toast struct {
	Message  string
	Severity Severity
}

// Toaster shows at most one transient notification at a time. A new
// message replaces the current one instead of queuing behind it.
type Toaster struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Toast
	timer   *time.Timer
	seq     int
}

func NewToaster() *Toaster {
	return &Toaster{ttl: DefaultToastTTL}
}

// NewToasterTTL builds a Toaster with a custom visibility window.
func NewToasterTTL(ttl time.Duration) *Toaster {
	return &Toaster{ttl: ttl}
}

func (t *Toaster) Show(message string, severity Severity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = &Toast{Message: message, Severity: severity}
	t.seq++
	seq := t.seq

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// A newer message may have replaced this one already.
		if t.seq == seq {
			t.current = nil
		}
	})
}

func (t *Toaster) Success(message string) { t.Show(message, SeveritySuccess) }
func (t *Toaster) Error(message string)   { t.Show(message, SeverityError) }

// Current returns the visible notification, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}
