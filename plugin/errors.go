package plugin

import "errors"

var (
	// ErrNotFound is returned when no registered plugin provides a view.
	ErrNotFound = errors.New("plugin: no provider")
	// ErrAmbiguous is returned when more than one plugin provides a view.
	ErrAmbiguous = errors.New("plugin: ambiguous provider")
	// ErrCycle is returned when a plugin's load imports itself.
	ErrCycle = errors.New("plugin: import cycle")
	// ErrProviderMismatch is returned when a loaded instance does not cast
	// to a view its plugin declared.
	ErrProviderMismatch = errors.New("plugin: provider mismatch")
	// ErrDuplicate is returned when a plugin name is registered twice.
	ErrDuplicate = errors.New("plugin: duplicate registration")
	// ErrClosed is returned by a Root after Close.
	ErrClosed = errors.New("plugin: root closed")
)
