package vfs

import (
	"context"
	"sync"
	"time"
)

// Poller is a polling Watcher portable across OSes. It compares the
// modification time of every added path at a fixed interval.
type Poller struct {
	fs       FileSystem
	interval time.Duration

	mu    sync.Mutex
	paths map[string]time.Time

	evCh chan Event
	erCh chan error
	stop context.CancelFunc
	done chan struct{}
}

// NewPoller returns a Poller over fs. Call Start to begin polling.
func NewPoller(fs FileSystem, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Poller{
		fs:       fs,
		interval: interval,
		paths:    make(map[string]time.Time),
		evCh:     make(chan Event, 64),
		erCh:     make(chan error, 1),
	}
}

func (w *Poller) Events() <-chan Event { return w.evCh }
func (w *Poller) Errors() <-chan error { return w.erCh }

// Add starts watching name. Its current modification time is the
// baseline, so only later changes are reported.
func (w *Poller) Add(name string) error {
	var mod time.Time
	if info, err := w.fs.Stat(name); err == nil {
		mod = info.ModTime()
	}
	w.mu.Lock()
	w.paths[name] = mod
	w.mu.Unlock()
	return nil
}

func (w *Poller) Remove(name string) error {
	w.mu.Lock()
	delete(w.paths, name)
	w.mu.Unlock()
	return nil
}

// Start begins polling until ctx is done or Close is called.
func (w *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.stop = cancel
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.poll(ctx)
			}
		}
	}()
}

func (w *Poller) poll(ctx context.Context) {
	w.mu.Lock()
	var changed []string
	for name, last := range w.paths {
		info, err := w.fs.Stat(name)
		if err != nil {
			select {
			case w.erCh <- err:
			default:
			}
			continue
		}
		if info.ModTime().After(last) {
			w.paths[name] = info.ModTime()
			changed = append(changed, name)
		}
	}
	w.mu.Unlock()

	for _, name := range changed {
		select {
		case w.evCh <- Event{Path: name, Op: OpWrite, Time: time.Now()}:
		case <-ctx.Done():
			return
		}
	}
}

// Close stops polling and closes the event channel.
func (w *Poller) Close() error {
	if w.stop != nil {
		w.stop()
		<-w.done
	}
	close(w.evCh)
	return nil
}
