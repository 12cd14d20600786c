// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package world defines the read-only interfaces and snapshot types the
// renderer consumes from the host game. The renderer never mutates any of
// them; every frame reads fresh snapshots.
package world

// Theme identifies a procedural background.
type Theme uint8

const (
	ThemeSky Theme = iota
	ThemeCity
	ThemeSpace
	ThemeDesert
	ThemeOcean
)

// themeNames maps Theme values to their string representation.
var themeNames = [...]string{
	ThemeSky:    "Sky",
	ThemeCity:   "City",
	ThemeSpace:  "Space",
	ThemeDesert: "Desert",
	ThemeOcean:  "Ocean",
}

// String returns the string representation of a Theme.
func (t Theme) String() string {
	if int(t) < len(themeNames) {
		return themeNames[t]
	}
	return "Unknown"
}

// Tile is one world cell.
type Tile struct {
	ID       uint16
	Walkable bool
}

// TileProvider exposes the tile grid. Out-of-range lookups report ok=false.
type TileProvider interface {
	Tile(x, y int) (Tile, bool)
	Width() int
	Height() int
	Background() Theme
}

// Direction is an 8-way facing used to pick sprite rows.
type Direction uint8

const (
	DirSouth Direction = iota
	DirSouthWest
	DirWest
	DirNorthWest
	DirNorth
	DirNorthEast
	DirEast
	DirSouthEast
)

// PlayerView is a read-only player snapshot.
type PlayerView struct {
	ID        uint32
	Name      string
	X, Y      float64 // interpolated world position
	Dir       Direction
	Frame     int // animation frame
	Character uint8
	Team      uint8
	Health    int
	MaxHealth int
	Dead      bool
	Shielded  bool
	Stealthed bool
}

// ProjectileView is a read-only projectile snapshot.
type ProjectileView struct {
	ID        uint32
	Archetype uint8
	X, Y      float64
	VX, VY    float64
	Owner     uint32
}

// ItemView is a read-only dropped-item snapshot.
type ItemView struct {
	ID   uint32
	Kind uint8
	X, Y float64
}

// EventView is a timestamped one-shot event (death, teleport, explosion,
// area effect). Start is the host clock in seconds at the event.
type EventView struct {
	X, Y  float64
	Start float64
	Kind  uint8
}

// KillView is one kill-feed line.
type KillView struct {
	Killer, Victim string
	Start          float64
}

// GameState exposes read-only snapshots of the live game. Map keys are
// entity IDs; Deaths is keyed by the victim, the remaining event maps by
// an arbitrary host identifier.
//
// Players holds every player in the match including the local one;
// entity bodies draw from it. Local singles out the player this client
// controls for the camera, the ground marker and the HUD.
type GameState interface {
	Local() (PlayerView, bool)
	Players() map[uint32]PlayerView
	Projectiles() map[uint32]ProjectileView
	Items() map[uint32]ItemView

	Deaths() map[uint32]EventView
	Teleports() map[uint32]EventView
	Explosions() map[uint32]EventView
	AreaEffects() map[uint32]EventView
	KillFeed() []KillView

	// Now is the host clock in seconds, the time base of EventView.Start.
	Now() float64
}
