package dex

import "github.com/jwebster45206/pokedex/pkg/pokemon"

// Renderer is the display surface driven by the Controller.
type Renderer interface {
	// Append adds cards after the ones already shown
	Append(items []pokemon.Pokemon)

	// Rebuild replaces every card with items
	Rebuild(items []pokemon.Pokemon)

	// SetLoading shows or hides the loading indicator
	SetLoading(loading bool)

	// ShowEnd shows or hides the end-of-catalog message
	ShowEnd(shown bool)

	// Alert surfaces a failure the user must acknowledge
	Alert(err error)

	// ShowOverlay displays the detail card for p, front or back
	ShowOverlay(p pokemon.Pokemon, flipped bool)

	// HideOverlay dismisses the detail card
	HideOverlay()
}
