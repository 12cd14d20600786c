// Package isoscene is the real-time rendering core of a networked isometric
// multiplayer game client.
//
// Given the current game state (tiles, players, projectiles, items, timed
// visual events) and a frame delta, the frame orchestrator produces one fully
// composited frame while keeping GPU state changes to a minimum. The core is
// built from a small number of tightly coupled pieces:
//
//   - batch: vertex accumulators for flat shapes and textured sprites, plus
//     the mode controller that guarantees at most one active batch at a time
//   - particle: a fixed-capacity particle pool with swap-remove expiry
//   - effect: the archetype-indexed registry of procedural effect renderers
//   - light: the per-frame point-light accumulator feeding the light map
//   - post: bright pass, separable blur, and the final composite
//   - frame: the per-frame orchestrator that drives everything above
//
// The root package holds the leaf types shared by all of them: 2D vectors,
// colors, the isometric coordinate transform, the deterministic per-tick hash
// used by procedural effects, and the package logger.
//
// GPU access goes through the gpu.Device interface. The backend/gogpu package
// provides the real device on top of gogpu's WebGPU stack; gpu.Recorder is a
// command-capturing device used by tests and headless tools.
//
// Rendering is single threaded: one Render call owns the frame, and no type
// in this module is safe for concurrent use unless its documentation says so.
package isoscene
