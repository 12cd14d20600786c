// Command isodemo renders a small synthetic match headlessly and reports
// per-frame draw statistics. It is the quickest way to see what the frame
// orchestrator actually submits to a device.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/isoscene/backend"
	"github.com/gogpu/isoscene/frame"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/world"
)

func main() {
	var (
		frames  = flag.Int("frames", 120, "number of frames to render")
		size    = flag.Int("size", 24, "world size in tiles")
		width   = flag.Int("width", 1280, "frame width in pixels")
		height  = flag.Int("height", 720, "frame height in pixels")
		verbose = flag.Bool("v", false, "print per-frame statistics")
	)
	flag.Parse()

	b := backend.Get(backend.BackendRecording)
	if b == nil {
		log.Fatal("recording backend not registered")
	}
	if err := b.Init(); err != nil {
		log.Fatalf("backend init: %v", err)
	}
	defer b.Close()

	rec, ok := b.Device().(*gpu.Recorder)
	if !ok {
		log.Fatal("recording backend did not yield a recorder")
	}

	tiles := demoWorld(*size)
	state := demoState()
	o := frame.New(rec, tiles, state)
	defer o.Dispose()

	const dt = 1.0 / 60
	var totalSubs, totalVerts int
	for i := 0; i < *frames; i++ {
		advance(state, dt)
		if err := o.Render(dt, *width, *height, *width, *height); err != nil {
			log.Fatalf("frame %d: %v", i, err)
		}
		subs := rec.Submissions()
		verts := 0
		for _, s := range subs {
			verts += s.Count
		}
		totalSubs += len(subs)
		totalVerts += verts
		if *verbose {
			fmt.Printf("frame %3d: %3d submissions, %6d vertices, %4d particles\n",
				i, len(subs), verts, o.Particles().Active())
		}
		rec.Reset()
	}

	fmt.Fprintf(os.Stdout, "%d frames: avg %.1f submissions, avg %.0f vertices\n",
		*frames, float64(totalSubs)/float64(*frames), float64(totalVerts)/float64(*frames))
}

// demoWorld builds a walkable plain with a lava pool, an ice patch and a
// ridge of elevated tiles.
func demoWorld(size int) *world.StaticMap {
	m := world.NewStaticMap(size, size, world.Tile{ID: 1, Walkable: true}, world.ThemeSky)
	for x := 4; x < 8; x++ {
		for y := 4; y < 8; y++ {
			m.Set(x, y, world.Tile{ID: world.TileLava, Walkable: true})
		}
	}
	for x := 12; x < 15; x++ {
		m.Set(x, 10, world.Tile{ID: world.TileIce, Walkable: true})
	}
	for y := 2; y < size-2; y++ {
		m.Set(size/2, y, world.Tile{ID: 2, Walkable: false})
	}
	return m
}

func demoState() *world.Snapshot {
	return &world.Snapshot{
		LocalPlayer: world.PlayerView{
			ID: 1, Name: "local", X: 6, Y: 12,
			Health: 100, MaxHealth: 100, Character: 1,
		},
		HasLocal: true,
		// Players carries every player, the local one included.
		PlayerMap: map[uint32]world.PlayerView{
			1: {ID: 1, Name: "local", X: 6, Y: 12, Health: 100, MaxHealth: 100, Character: 1},
			2: {ID: 2, Name: "scout", X: 9, Y: 9, Team: 1, Health: 80, MaxHealth: 100, Character: 2},
			3: {ID: 3, Name: "guard", X: 14, Y: 6, Team: 2, Health: 55, MaxHealth: 100, Character: 3, Shielded: true},
		},
		ProjectileMap: map[uint32]world.ProjectileView{
			10: {ID: 10, Archetype: 1, X: 10, Y: 10, VX: 2, VY: 0, Owner: 2},
		},
		ItemMap: map[uint32]world.ItemView{
			20: {ID: 20, Kind: 1, X: 7, Y: 14},
			21: {ID: 21, Kind: 3, X: 11, Y: 13},
		},
	}
}

// advance moves the synthetic match forward so successive frames differ:
// the projectile flies, players drift and the clock ticks.
func advance(s *world.Snapshot, dt float64) {
	s.Clock += dt
	p := s.ProjectileMap[10]
	p.X += p.VX * dt
	p.Y += p.VY * dt
	s.ProjectileMap[10] = p
	scout := s.PlayerMap[2]
	scout.X += 0.5 * dt
	s.PlayerMap[2] = scout
}
