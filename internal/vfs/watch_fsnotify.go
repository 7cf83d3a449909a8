package vfs

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher implements Watcher using fsnotify for OS-native notifications.
type FSNotifyWatcher struct {
	w   *fsnotify.Watcher
	evC chan Event
	erC chan error
}

// NewFSWatcher creates a new FSNotifyWatcher.
func NewFSWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FSNotifyWatcher{w: w, evC: make(chan Event, 128), erC: make(chan error, 1)}
	go fw.loop()
	return fw, nil
}

func convertOp(in fsnotify.Op) WatchOp {
	var op WatchOp
	if in.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if in.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if in.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if in.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if in.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

func (fw *FSNotifyWatcher) loop() {
	defer close(fw.evC)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			fw.evC <- Event{Path: ev.Name, Op: convertOp(ev.Op), Time: time.Now()}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

func (fw *FSNotifyWatcher) Events() <-chan Event     { return fw.evC }
func (fw *FSNotifyWatcher) Errors() <-chan error     { return fw.erC }
func (fw *FSNotifyWatcher) Add(name string) error    { return fw.w.Add(name) }
func (fw *FSNotifyWatcher) Remove(name string) error { return fw.w.Remove(name) }
func (fw *FSNotifyWatcher) Close() error             { return fw.w.Close() }
