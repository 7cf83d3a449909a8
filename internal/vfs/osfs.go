package vfs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFS is the FileSystem backed by the host operating system.
type OSFS struct{}

func NewOS() *OSFS { return &OSFS{} }

func (fsys *OSFS) Open(name string) (File, error)               { return os.Open(name) }
func (fsys *OSFS) Create(name string) (File, error)             { return os.Create(name) }
func (fsys *OSFS) MkdirAll(name string, perm fs.FileMode) error { return os.MkdirAll(name, perm) }
func (fsys *OSFS) Remove(name string) error                     { return os.Remove(name) }
func (fsys *OSFS) Stat(name string) (fs.FileInfo, error)        { return os.Stat(name) }

// ToSlash and FromSlash convert between host and slash separated paths.
func ToSlash(p string) string   { return filepath.ToSlash(p) }
func FromSlash(p string) string { return filepath.FromSlash(p) }
