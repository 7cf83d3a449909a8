// Package vfs abstracts the file access and change notification the
// compiler driver needs, so sources can come from disk or from memory.
package vfs

import (
	"io"
	"io/fs"
	"path"
	"time"
)

// File represents an open file handle within a FileSystem.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Stat() (fs.FileInfo, error)
}

// FileSystem abstracts basic filesystem operations.
type FileSystem interface {
	Open(name string) (File, error)
	Create(name string) (File, error)
	MkdirAll(name string, perm fs.FileMode) error
	Remove(name string) error
	Stat(name string) (fs.FileInfo, error)
}

// ReadFile reads the whole named file from fsys.
func ReadFile(fsys FileSystem, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// WriteFile creates or truncates the named file in fsys and writes data
// to it, creating missing parent directories.
func WriteFile(fsys FileSystem, name string, data []byte) error {
	if dir := path.Dir(ToSlash(name)); dir != "." && dir != "/" {
		if err := fsys.MkdirAll(FromSlash(dir), 0o755); err != nil {
			return err
		}
	}
	f, err := fsys.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WatchOp indicates a change operation in the filesystem.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Changes reports whether op alters file contents.
func (op WatchOp) Changes() bool {
	return op&(OpCreate|OpWrite|OpRename) != 0
}

// Event describes a filesystem change event.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher provides a platform-independent file watching API.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}
