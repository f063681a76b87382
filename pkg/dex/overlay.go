package dex

import "github.com/jwebster45206/pokedex/pkg/pokemon"

type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayFront
	OverlayBack
)

func (s OverlayState) String() string {
	switch s {
	case OverlayFront:
		return "front"
	case OverlayBack:
		return "back"
	default:
		return "closed"
	}
}

// Overlay is the detail panel state machine:
// Closed -> Front on Open, Front <-> Back on Toggle, any -> Closed on Close.
type Overlay struct {
	state OverlayState
	item  pokemon.Pokemon
}

// Open shows p, always on the front face.
func (o *Overlay) Open(p pokemon.Pokemon) {
	o.item = p
	o.state = OverlayFront
}

// Toggle flips the card. It does nothing while closed.
func (o *Overlay) Toggle() {
	switch o.state {
	case OverlayFront:
		o.state = OverlayBack
	case OverlayBack:
		o.state = OverlayFront
	}
}

func (o *Overlay) Close() {
	o.state = OverlayClosed
}

func (o *Overlay) State() OverlayState   { return o.state }
func (o *Overlay) IsOpen() bool          { return o.state != OverlayClosed }
func (o *Overlay) Flipped() bool         { return o.state == OverlayBack }
func (o *Overlay) Item() pokemon.Pokemon { return o.item }
