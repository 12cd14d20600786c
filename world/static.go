package world

// StaticMap is a fixed in-memory TileProvider, handy for tools and tests.
type StaticMap struct {
	W, H  int
	Tiles []Tile // row-major, len W*H
	Theme Theme
}

// NewStaticMap creates a W×H map filled with the given tile.
func NewStaticMap(w, h int, fill Tile, theme Theme) *StaticMap {
	tiles := make([]Tile, w*h)
	for i := range tiles {
		tiles[i] = fill
	}
	return &StaticMap{W: w, H: h, Tiles: tiles, Theme: theme}
}

// Set overwrites one cell; out-of-range coordinates are ignored.
func (m *StaticMap) Set(x, y int, t Tile) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Tiles[y*m.W+x] = t
}

// Tile implements TileProvider.
func (m *StaticMap) Tile(x, y int) (Tile, bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return Tile{}, false
	}
	return m.Tiles[y*m.W+x], true
}

// Width implements TileProvider.
func (m *StaticMap) Width() int { return m.W }

// Height implements TileProvider.
func (m *StaticMap) Height() int { return m.H }

// Background implements TileProvider.
func (m *StaticMap) Background() Theme { return m.Theme }

// Snapshot is a plain-struct GameState, handy for tools and tests.
type Snapshot struct {
	LocalPlayer    PlayerView
	HasLocal       bool
	PlayerMap      map[uint32]PlayerView
	ProjectileMap  map[uint32]ProjectileView
	ItemMap        map[uint32]ItemView
	DeathEvents    map[uint32]EventView
	TeleportEvents map[uint32]EventView
	ExplosionEvts  map[uint32]EventView
	AreaEvents     map[uint32]EventView
	Feed           []KillView
	Clock          float64
}

// Local implements GameState.
func (s *Snapshot) Local() (PlayerView, bool) { return s.LocalPlayer, s.HasLocal }

// Players implements GameState.
func (s *Snapshot) Players() map[uint32]PlayerView { return s.PlayerMap }

// Projectiles implements GameState.
func (s *Snapshot) Projectiles() map[uint32]ProjectileView { return s.ProjectileMap }

// Items implements GameState.
func (s *Snapshot) Items() map[uint32]ItemView { return s.ItemMap }

// Deaths implements GameState.
func (s *Snapshot) Deaths() map[uint32]EventView { return s.DeathEvents }

// Teleports implements GameState.
func (s *Snapshot) Teleports() map[uint32]EventView { return s.TeleportEvents }

// Explosions implements GameState.
func (s *Snapshot) Explosions() map[uint32]EventView { return s.ExplosionEvts }

// AreaEffects implements GameState.
func (s *Snapshot) AreaEffects() map[uint32]EventView { return s.AreaEvents }

// KillFeed implements GameState.
func (s *Snapshot) KillFeed() []KillView { return s.Feed }

// Now implements GameState.
func (s *Snapshot) Now() float64 { return s.Clock }
