//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// IsTerminal always reports false; colored output must be requested
// explicitly on this platform.
func IsTerminal(fd uintptr) bool {
	return false
}
