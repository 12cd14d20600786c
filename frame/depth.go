package frame

import (
	"math"

	"github.com/gogpu/isoscene/world"
)

// visRect is the visible tile rectangle, inclusive on both ends.
type visRect struct {
	minX, minY int
	maxX, maxY int
}

func (r visRect) contains(x, y int) bool {
	return x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

type entryKind uint8

const (
	entryPlayer entryKind = iota
	entryItem
	entryProjectile
	entryLocalMarker
	entryDeathMarker
)

// depthEntry is one deferred draw keyed by the world cell it occupies.
type depthEntry struct {
	kind entryKind
	x, y float64 // world position

	player world.PlayerView
	item   world.ItemView
	proj   world.ProjectileView
}

func cellKey(tx, ty int) uint64 {
	return uint64(uint32(tx))<<32 | uint64(uint32(ty))
}

// depthBuckets groups deferred draws by cell so tiles and entities can
// interleave in one row-major pass. Slices are reused across frames.
type depthBuckets struct {
	rect       visRect
	cells      map[uint64][]depthEntry
	stragglers []depthEntry
}

func newDepthBuckets() *depthBuckets {
	return &depthBuckets{cells: make(map[uint64][]depthEntry)}
}

// reset empties every bucket, keeping allocated capacity.
func (b *depthBuckets) reset(rect visRect) {
	b.rect = rect
	for k, s := range b.cells {
		b.cells[k] = s[:0]
	}
	b.stragglers = b.stragglers[:0]
}

// add files an entry under its cell; entries outside the visible rect go
// to the straggler list and are dispatched after the tile pass.
func (b *depthBuckets) add(e depthEntry) {
	tx := int(math.Floor(e.x))
	ty := int(math.Floor(e.y))
	if !b.rect.contains(tx, ty) {
		b.stragglers = append(b.stragglers, e)
		return
	}
	k := cellKey(tx, ty)
	b.cells[k] = append(b.cells[k], e)
}

// at returns the entries for one cell, possibly empty.
func (b *depthBuckets) at(tx, ty int) []depthEntry {
	return b.cells[cellKey(tx, ty)]
}

// MaxDeferredBars caps the health-bar/label array; overflow drops the
// newest entry and the frame continues.
const MaxDeferredBars = 192

// barEntry is one postponed health bar + name label.
type barEntry struct {
	x, y      float64 // screen position above the entity
	health    int
	maxHealth int
	team      uint8
	id        uint32
	label     string
}

// barList is a fixed-capacity array of deferred bars.
type barList struct {
	entries [MaxDeferredBars]barEntry
	n       int
}

// add appends an entry, reporting false (and dropping it) when full.
func (l *barList) add(e barEntry) bool {
	if l.n == len(l.entries) {
		return false
	}
	l.entries[l.n] = e
	l.n++
	return true
}

func (l *barList) reset() { l.n = 0 }

func (l *barList) all() []barEntry { return l.entries[:l.n] }

// MaxSpecialTiles caps the per-frame special-tile overlay collection.
const MaxSpecialTiles = 512

type specialTile struct {
	tx, ty int
	id     uint16
}

// specialList is a fixed-capacity collection filled during the ground
// pass so overlays need no second tile scan.
type specialList struct {
	entries [MaxSpecialTiles]specialTile
	n       int
}

func (l *specialList) add(e specialTile) bool {
	if l.n == len(l.entries) {
		return false
	}
	l.entries[l.n] = e
	l.n++
	return true
}

func (l *specialList) reset() { l.n = 0 }

func (l *specialList) all() []specialTile { return l.entries[:l.n] }
