// Package descriptor mints the namespaced tags that disambiguate ports of compatible kinds.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is used for locations that carry no namespace.
const DefaultNamespace = "runeport"

// ErrInvalidLocation is returned when a location cannot be parsed.
var ErrInvalidLocation = errors.New("invalid descriptor location")

// Descriptor is the canonical "namespace.path" form of a location.
// Two ports agree on their descriptor iff the strings are equal.
type Descriptor string

// New builds a descriptor from its two parts without validation.
func New(namespace, path string) Descriptor {
	return Descriptor(namespace + "." + path)
}

// Parse reads a "namespace:path" location. A location without a colon
// lives in DefaultNamespace.
func Parse(location string) (Descriptor, error) {
	return ParseIn(location, DefaultNamespace)
}

// ParseIn reads a "namespace:path" location, falling back to
// defaultNamespace when the location has no namespace.
func ParseIn(location, defaultNamespace string) (Descriptor, error) {
	namespace, path, found := strings.Cut(location, ":")
	if !found {
		namespace, path = defaultNamespace, location
	}
	if !validNamespace(namespace) {
		return "", fmt.Errorf("%w: bad namespace in %q", ErrInvalidLocation, location)
	}
	if !validPath(path) {
		return "", fmt.Errorf("%w: bad path in %q", ErrInvalidLocation, location)
	}
	return New(namespace, path), nil
}

// MustParse is like Parse but panics on error.
func MustParse(location string) Descriptor {
	d, err := Parse(location)
	if err != nil {
		panic(err)
	}
	return d
}

// Namespace returns the part before the first dot.
func (d Descriptor) Namespace() string {
	ns, _, _ := strings.Cut(string(d), ".")
	return ns
}

// Path returns the part after the first dot.
func (d Descriptor) Path() string {
	_, path, _ := strings.Cut(string(d), ".")
	return path
}

// Location returns the "namespace:path" form.
func (d Descriptor) Location() string {
	return d.Namespace() + ":" + d.Path()
}

func (d Descriptor) String() string {
	return string(d)
}

func validNamespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isLowerAlnum(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

func validPath(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isLowerAlnum(r) && r != '_' && r != '-' && r != '.' && r != '/' {
			return false
		}
	}
	return true
}

func isLowerAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
