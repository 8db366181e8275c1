package components

import "github.com/charmbracelet/bubbles/key"

// FilterKeyMap defines key bindings while the grid filter input is focused
type FilterKeyMap struct {
	Escape key.Binding
	Accept key.Binding
	Delete key.Binding
	Filter key.Binding
}

// DefaultFilterKeyMap returns the default filter key bindings
func DefaultFilterKeyMap() FilterKeyMap {
	return FilterKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept filter"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
	}
}

// ModalKeyMap defines the keys that close the video overlay and the alert
type ModalKeyMap struct {
	Close   key.Binding
	Dismiss key.Binding
}

// DefaultModalKeyMap returns the default modal key bindings
func DefaultModalKeyMap() ModalKeyMap {
	return ModalKeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "close"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", "backspace"),
			key.WithHelp("enter/esc", "dismiss"),
		),
	}
}

// Package-level key map instances
var (
	FilterKeys = DefaultFilterKeyMap()
	ModalKeys  = DefaultModalKeyMap()
)
