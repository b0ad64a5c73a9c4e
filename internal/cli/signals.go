package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// SignalHandler cancels a context when the user interrupts a wait. The
// submitted job is left alone; only this process stops polling.
type SignalHandler struct {
	signals  chan os.Signal
	cancel   context.CancelFunc
	onSignal func(os.Signal)
	stopCh   chan struct{} // closed by Stop to signal goroutine to exit
	done     chan struct{} // closed when goroutine exits
	stopOnce sync.Once
}

// NewSignalHandler creates a signal handler with the given context cancel.
// onSignal may be nil.
func NewSignalHandler(cancel context.CancelFunc, onSignal func(os.Signal)) *SignalHandler {
	return &SignalHandler{
		signals:  make(chan os.Signal, 1),
		cancel:   cancel,
		onSignal: onSignal,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins listening for signals. Pass false for notify in unit tests
// to avoid global signal state interactions.
func (h *SignalHandler) Start(notify bool) {
	if notify {
		signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)
	}

	go func() {
		defer close(h.done)

		select {
		case sig := <-h.signals:
			log.Printf("received signal: %v", sig)
			if h.onSignal != nil {
				h.onSignal(sig)
			}
			if h.cancel != nil {
				h.cancel()
			}
		case <-h.stopCh:
		}
	}()
}

// Stop stops the signal handler and restores default signal behaviour
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})
	select {
	case <-h.done:
	case <-time.After(100 * time.Millisecond):
	}
}
