package vfs

import (
	"bytes"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"
)

type fileInfo struct {
	name string
	size int64
	mode fs.FileMode
	mod  time.Time
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi fileInfo) ModTime() time.Time { return fi.mod }
func (fi fileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi fileInfo) Sys() any           { return nil }

type memEnt struct {
	data []byte
	mod  time.Time
	dir  bool
}

// MemFS is an in-memory FileSystem. Writes become visible when the
// handle is closed.
type MemFS struct {
	mu   sync.RWMutex
	ents map[string]*memEnt
	now  func() time.Time
}

func NewMem() *MemFS {
	return &MemFS{ents: make(map[string]*memEnt), now: time.Now}
}

func norm(p string) string {
	return strings.TrimPrefix(path.Clean(ToSlash(p)), "/")
}

// memFile is a handle on a MemFS entry.
type memFile struct {
	fsys *MemFS
	key  string
	r    *bytes.Reader
	w    *bytes.Buffer
}

func (f *memFile) Read(p []byte) (int, error) {
	if f.r == nil {
		return 0, fs.ErrPermission
	}
	return f.r.Read(p)
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.w == nil {
		return 0, fs.ErrPermission
	}
	return f.w.Write(p)
}

func (f *memFile) Close() error {
	if f.w == nil {
		return nil
	}
	f.fsys.mu.Lock()
	defer f.fsys.mu.Unlock()
	f.fsys.ents[f.key] = &memEnt{data: append([]byte(nil), f.w.Bytes()...), mod: f.fsys.now()}
	f.w = nil
	return nil
}

func (f *memFile) Stat() (fs.FileInfo, error) {
	return f.fsys.Stat(f.key)
}

func (m *MemFS) Open(name string) (File, error) {
	key := norm(name)
	m.mu.RLock()
	e := m.ents[key]
	m.mu.RUnlock()
	if e == nil || e.dir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &memFile{fsys: m, key: key, r: bytes.NewReader(e.data)}, nil
}

func (m *MemFS) Create(name string) (File, error) {
	key := norm(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if dir := path.Dir(key); dir != "." {
		if e := m.ents[dir]; e == nil || !e.dir {
			return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrNotExist}
		}
	}
	if e := m.ents[key]; e != nil && e.dir {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrExist}
	}
	m.ents[key] = &memEnt{mod: m.now()}
	return &memFile{fsys: m, key: key, w: new(bytes.Buffer)}, nil
}

func (m *MemFS) MkdirAll(name string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := ""
	for _, part := range strings.Split(norm(name), "/") {
		if part == "" || part == "." {
			continue
		}
		cur = path.Join(cur, part)
		if e, ok := m.ents[cur]; ok {
			if !e.dir {
				return &fs.PathError{Op: "mkdir", Path: cur, Err: fs.ErrExist}
			}
			continue
		}
		m.ents[cur] = &memEnt{dir: true, mod: m.now()}
	}
	return nil
}

func (m *MemFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := norm(name)
	if _, ok := m.ents[key]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.ents, key)
	return nil
}

func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := norm(name)
	e := m.ents[key]
	if e == nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	if e.dir {
		return fileInfo{name: path.Base(key), mode: fs.ModeDir | 0o755, mod: e.mod}, nil
	}
	return fileInfo{name: path.Base(key), size: int64(len(e.data)), mode: 0o644, mod: e.mod}, nil
}

// AddFile stores data under name, creating parent directories.
func (m *MemFS) AddFile(name string, data []byte) {
	if dir := path.Dir(norm(name)); dir != "." {
		_ = m.MkdirAll(dir, 0o755)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ents[norm(name)] = &memEnt{data: append([]byte(nil), data...), mod: m.now()}
}
