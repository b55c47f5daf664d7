package gallery

import (
	"testing"
	"time"
)

func TestToaster_ShowAndCurrent(t *testing.T) {
	toaster := NewToaster()

	if _, ok := toaster.Current(); ok {
		t.Fatal("fresh toaster must have no visible toast")
	}

	toaster.Success("video uploaded")
	toast, ok := toaster.Current()
	if !ok {
		t.Fatal("expected a visible toast")
	}
	if toast.Message != "video uploaded" || toast.Severity != SeveritySuccess {
		t.Errorf("unexpected toast %+v", toast)
	}
}

func TestToaster_NewMessageReplacesCurrent(t *testing.T) {
	toaster := NewToasterTTL(time.Minute)

	toaster.Success("first")
	toaster.Error("second")

	toast, ok := toaster.Current()
	if !ok {
		t.Fatal("expected a visible toast")
	}
	if toast.Message != "second" || toast.Severity != SeverityError {
		t.Errorf("expected replacement, got %+v", toast)
	}
}

func TestToaster_AutoDismiss(t *testing.T) {
	toaster := NewToasterTTL(20 * time.Millisecond)

	toaster.Success("fleeting")
	if _, ok := toaster.Current(); !ok {
		t.Fatal("toast must be visible right after Show")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := toaster.Current(); !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("toast never dismissed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestToaster_ReplacementOutlivesOldTimer(t *testing.T) {
	toaster := NewToasterTTL(20 * time.Millisecond)

	toaster.Success("first")
	time.Sleep(10 * time.Millisecond)
	toaster.Success("second")

	// Past the first toast's window but inside the second's.
	time.Sleep(15 * time.Millisecond)
	toast, ok := toaster.Current()
	if !ok {
		t.Fatal("replacement dismissed by the stale timer")
	}
	if toast.Message != "second" {
		t.Errorf("unexpected toast %+v", toast)
	}
}
