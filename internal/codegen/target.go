package codegen

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
)

// PointerStyle selects how pointer types are spelled in the emitted IR.
type PointerStyle int

const (
	// TypedPointers spells pointers as "<elem>*".
	TypedPointers PointerStyle = iota
	// OpaquePointers spells every pointer as "ptr".
	OpaquePointers
)

func (ps PointerStyle) String() string {
	if ps == OpaquePointers {
		return "opaque"
	}
	return "typed"
}

// DefaultLLVMVersion is the IR dialect targeted when none is configured.
const DefaultLLVMVersion = "14.0.0"

// opaqueFrom is the first LLVM release whose IR uses opaque pointers only.
const opaqueFrom = ">= 15.0.0"

// Target describes the IR dialect being emitted.
type Target struct {
	Version  *semver.Version
	Pointers PointerStyle
}

// ParseTarget builds a Target for an LLVM version string such as "14",
// "15.0.7" or "v17.0.0". An empty string selects DefaultLLVMVersion.
func ParseTarget(version string) (Target, error) {
	if version == "" {
		version = DefaultLLVMVersion
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return Target{}, fmt.Errorf("invalid llvm version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(opaqueFrom)
	if err != nil {
		return Target{}, err
	}

	t := Target{Version: v, Pointers: TypedPointers}
	if c.Check(v) {
		t.Pointers = OpaquePointers
	}
	return t, nil
}

// DefaultTarget returns the Target for DefaultLLVMVersion.
func DefaultTarget() Target {
	t, _ := ParseTarget(DefaultLLVMVersion)
	return t
}

func (t Target) String() string {
	if t.Version == nil {
		return "llvm (" + t.Pointers.String() + " pointers)"
	}
	return fmt.Sprintf("llvm %s (%s pointers)", t.Version, t.Pointers)
}

// pointer returns the type of a pointer to elem.
func (t Target) pointer(elem string) string {
	if t.Pointers == OpaquePointers {
		return "ptr"
	}
	return elem + "*"
}
