package chat

import (
	"context"
	"errors"
	"testing"
)

func TestSendPump_NotifyCoalesces(t *testing.T) {
	p := newSendPump(nil)

	p.Notify()
	p.Notify()
	p.Notify()

	select {
	case <-p.updates:
	default:
		t.Fatal("expected a pending update")
	}

	select {
	case <-p.updates:
		t.Fatal("back-to-back notifications should coalesce into one update")
	default:
	}
}

func TestSendPump_Finish(t *testing.T) {
	p := newSendPump(nil)

	p.Finish(errors.New("boom"))

	err := <-p.done
	if err == nil || err.Error() != "boom" {
		t.Errorf("done carried %v, want boom", err)
	}

	// After Finish the pump is closed: notifications are dropped and a
	// second Finish must not block or panic.
	p.Notify()
	select {
	case <-p.updates:
		t.Error("Notify() after Finish should be a no-op")
	default:
	}
	p.Finish(nil)
}

func TestSendPump_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := newSendPump(cancel)

	p.Cancel()

	if ctx.Err() == nil {
		t.Error("Cancel() should cancel the request context")
	}

	// A pump without a cancel func tolerates Cancel.
	newSendPump(nil).Cancel()
}
