package chat

import (
	"context"
	"sync"
)

// sendPump bridges a streaming send running in its own goroutine to the
// bubbletea update loop. Store change notifications are coalesced into a
// buffered channel so a fast stream never blocks on a slow redraw.
type sendPump struct {
	mu      sync.Mutex
	updates chan struct{}
	done    chan error
	cancel  context.CancelFunc
	closed  bool
}

func newSendPump(cancel context.CancelFunc) *sendPump {
	return &sendPump{
		updates: make(chan struct{}, 1),
		done:    make(chan error, 1),
		cancel:  cancel,
	}
}

// Notify signals that the conversation content changed. Never blocks;
// back-to-back notifications collapse into one redraw.
func (p *sendPump) Notify() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Finish reports the send's result and marks the pump closed.
func (p *sendPump) Finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.done <- err
}

// Cancel aborts the in-flight request.
func (p *sendPump) Cancel() {
	if p.cancel != nil {
		p.cancel()
	}
}
