package store

import "strings"

// DefaultBoardName is the name of the board used when none is given.
const DefaultBoardName = "whiteboard-data"

// Keyer derives storage keys for boards.
type Keyer interface {
	BoardKey(name string) string
}

// DefaultKeyer produces keys of the form "board:<name>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BoardKey returns the key for the named board. An empty name selects
// DefaultBoardName.
func (DefaultKeyer) BoardKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultBoardName
	}
	return "board:" + name
}

// ScopedKeyer wraps a Keyer with a prefix so several profiles can share
// one backend without seeing each other's boards.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team:design:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BoardKey generates a prefixed board key.
func (k *ScopedKeyer) BoardKey(name string) string {
	return k.prefix + k.inner.BoardKey(name)
}
