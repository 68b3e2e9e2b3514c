// Package world implements the real-time interaction loop: player movement,
// veda placement and the overlap tests that feed progression events.
package world

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/vedapath/internal/catalog"
	"github.com/vovakirdan/vedapath/internal/config"
	"github.com/vovakirdan/vedapath/internal/core"
)

// Player is the avatar.
type Player struct {
	Pos    core.Vec
	Vel    core.Vec // Units per second, zero while paused
	Size   float64
	Facing int // -1 left, 1 right
}

// Box returns the player's collision box.
func (p Player) Box() core.Box {
	return core.BoxAt(p.Pos, p.Size, p.Size)
}

// Item is one spawned veda.
type Item struct {
	ID        core.ItemID
	Pos       core.Vec
	Collected bool // Touched and accepted; no longer visible or touchable
}

// Gate is the level exit.
type Gate struct {
	Box core.Box
}

// World is the per-level simulation. It is owned by a single frame loop.
type World struct {
	cfg    config.Config
	rng    *rand.Rand
	Player Player
	Items  []Item
	Gate   Gate

	nextID core.ItemID
	paused bool
	tick   uint64
}

// New creates an empty world. Call StartLevel before stepping.
func New(cfg config.Config, rng *rand.Rand) *World {
	w := &World{
		cfg: cfg,
		rng: rng,
		Gate: Gate{Box: core.BoxAt(
			core.V(cfg.Gate.X, cfg.Gate.Y), cfg.Gate.Width, cfg.Gate.Height,
		)},
	}
	w.resetPlayer()
	return w
}

// Width returns the playfield width in world units.
func (w *World) Width() float64 { return w.cfg.World.Width }

// Height returns the playfield height in world units.
func (w *World) Height() float64 { return w.cfg.World.Height }

// Tick returns the number of simulated ticks since the level started.
func (w *World) Tick() uint64 { return w.tick }

func (w *World) resetPlayer() {
	w.Player = Player{
		Pos:    core.V(w.cfg.Player.StartX, w.cfg.Player.StartY),
		Size:   w.cfg.Player.Size,
		Facing: 1,
	}
}

// StartLevel discards the previous level's entities, moves the player to the
// start and spawns the level's vedas. Catalog spawn points are used in order;
// missing ones are filled with random positions.
func (w *World) StartLevel(level catalog.Level) {
	w.resetPlayer()
	w.Items = nil
	w.nextID = 0
	w.paused = false
	w.tick = 0

	count := max(level.RequiredItems, len(level.ItemSpawns))
	for i := 0; i < count; i++ {
		if !w.cfg.Items.RandomSpawns && i < len(level.ItemSpawns) {
			w.addItem(level.ItemSpawns[i])
			continue
		}
		w.addItem(w.randomPosition())
	}
}

// SpawnReplacement adds one veda at a fresh random position and returns its id.
func (w *World) SpawnReplacement() core.ItemID {
	return w.addItem(w.randomPosition())
}

func (w *World) addItem(pos core.Vec) core.ItemID {
	id := w.nextID
	w.nextID++
	w.Items = append(w.Items, Item{ID: id, Pos: pos})
	return id
}

// randomPosition draws a point inside the margins that keeps its distance from
// the player start and the gate. After SpawnAttempts misses the last candidate
// is used anyway.
func (w *World) randomPosition() core.Vec {
	ic := w.cfg.Items
	start := core.V(w.cfg.Player.StartX, w.cfg.Player.StartY)
	gate := w.Gate.Box.Center

	var p core.Vec
	for attempt := 0; attempt < max(ic.SpawnAttempts, 1); attempt++ {
		p = core.V(
			ic.Margin+w.rng.Float64()*(w.cfg.World.Width-2*ic.Margin),
			ic.Margin+w.rng.Float64()*(w.cfg.World.Height-2*ic.Margin),
		)
		if p.Dist(start) >= ic.MinDistanceFromPlayer && p.Dist(gate) >= ic.MinDistanceFromGate {
			break
		}
	}
	return p
}

// MarkCollected hides an item so it can no longer be touched.
func (w *World) MarkCollected(id core.ItemID) {
	for i := range w.Items {
		if w.Items[i].ID == id {
			w.Items[i].Collected = true
			return
		}
	}
}

// Remaining returns the number of visible vedas.
func (w *World) Remaining() int {
	n := 0
	for _, it := range w.Items {
		if !it.Collected {
			n++
		}
	}
	return n
}

// SetPaused fully suspends or resumes the simulation.
func (w *World) SetPaused(paused bool) {
	w.paused = paused
	if paused {
		w.Player.Vel = core.Vec{}
	}
}

// Paused reports whether the simulation is suspended.
func (w *World) Paused() bool {
	return w.paused
}

// Step advances the simulation by dt seconds and returns the events of this tick:
// at most one item touch (first visible item in spawn order) followed by a gate
// event while the player overlaps the gate. A paused world does nothing.
func (w *World) Step(in core.InputFrame, dt float64) []core.Event {
	if w.paused {
		return nil
	}
	w.tick++

	w.Player.Vel = w.velocity(in)
	if w.Player.Vel.X < 0 {
		w.Player.Facing = -1
	} else if w.Player.Vel.X > 0 {
		w.Player.Facing = 1
	}

	half := w.Player.Size / 2
	pos := w.Player.Pos.Add(w.Player.Vel.Scale(dt))
	pos.X = core.ClampF(pos.X, half, w.cfg.World.Width-half)
	pos.Y = core.ClampF(pos.Y, half, w.cfg.World.Height-half)
	w.Player.Pos = pos

	var events []core.Event
	pbox := w.Player.Box()
	for _, it := range w.Items {
		if it.Collected {
			continue
		}
		if pbox.Overlaps(core.BoxAt(it.Pos, w.cfg.Items.Size, w.cfg.Items.Size)) {
			events = append(events, core.ItemTouched(it.ID, w.tick))
			break
		}
	}
	if pbox.Overlaps(w.Gate.Box) {
		events = append(events, core.GateReached(w.tick))
	}
	return events
}

// velocity maps held directions to a velocity. Left wins over right and up
// over down when both are held.
func (w *World) velocity(in core.InputFrame) core.Vec {
	var dir core.Vec
	switch {
	case in.Has(core.ActionLeft):
		dir.X = -1
	case in.Has(core.ActionRight):
		dir.X = 1
	}
	switch {
	case in.Has(core.ActionUp):
		dir.Y = -1
	case in.Has(core.ActionDown):
		dir.Y = 1
	}

	speed := w.cfg.Player.Speed
	if dir.X != 0 && dir.Y != 0 && w.cfg.Movement.NormalizeDiagonal {
		speed /= math.Sqrt2
	}
	return dir.Scale(speed)
}
