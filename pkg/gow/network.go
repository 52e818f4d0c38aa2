package gow

// Solve computes, for both sides, the set of cells that are online: reached
// by that side's Lines of Communication. This is a pure function of the
// board's terrain, units, and config — no caches, no invalidation flags,
// callers simply call it again whenever they need a fresh answer (and Board
// does, via RecomputeNetworks, after every move, capture, and end of turn).
func Solve(b *Board, cfg Config) [2]map[Position]bool {
	return [2]map[Position]bool{
		solveSide(b, North, cfg),
		solveSide(b, South, cfg),
	}
}

// solveSide runs the fixed-point propagation algorithm for a single side:
// seed from arsenals, then alternate relay-rebroadcast and
// adjacency-propagation passes until a full round adds nothing new.
func solveSide(b *Board, side Side, cfg Config) map[Position]bool {
	online := make(map[Position]bool)
	rebroadcast := make(map[Position]bool)

	lightRaysFrom := func(origin Position) bool {
		changed := false
		for _, d := range AllDirections() {
			for _, cell := range Ray(origin, d, b.Height, b.Width) {
				if cellBlocksFor(b, cell, side) {
					break
				}
				if !online[cell] {
					online[cell] = true
					changed = true
				}
			}
		}
		return changed
	}

	// Step 1: seed online cells from every arsenal owned by side. The
	// arsenal cell itself is always online, in addition to whatever its 8
	// rays reach.
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			p := Position{Row: r, Col: c}
			cell := b.TerrainAt(p)
			if cell.Kind == ArsenalTerrain && cell.Owner == side {
				online[p] = true
				lightRaysFrom(p)
			}
		}
	}

	// Steps 2 and 3 alternate until a round makes no further progress.
	for {
		changed := false

		// Step 2: every friendly Relay that is online and hasn't yet
		// rebroadcast casts 8 new rays, repeated until a full pass lights
		// nothing new (so every ray-lit Relay has rebroadcast before step 3).
		for {
			lit := false
			for _, p := range b.UnitsOf(side) {
				u, _ := b.UnitAt(p)
				if !u.Kind.IsRelay() || rebroadcast[p] || !online[p] {
					continue
				}
				rebroadcast[p] = true
				if lightRaysFrom(p) {
					lit = true
					changed = true
				}
			}
			if !lit {
				break
			}
		}

		// Step 3: any offline friendly unit 8-adjacent to an online
		// friendly unit becomes online.
		for _, p := range b.UnitsOf(side) {
			if online[p] {
				continue
			}
			for _, q := range Neighbors8(p, b.Height, b.Width) {
				if b.IsFriendly(q, side) && online[q] {
					online[p] = true
					changed = true
					break
				}
			}
		}

		if !cfg.RelayAdjacencyRebroadcast {
			// Any relay that just became online in this round's step 3
			// (i.e. still unmarked after step 2 ran) was lit purely by
			// adjacency. With the flag off it stays online but must never
			// rebroadcast, so lock it out now.
			for _, p := range b.UnitsOf(side) {
				u, _ := b.UnitAt(p)
				if u.Kind.IsRelay() && online[p] && !rebroadcast[p] {
					rebroadcast[p] = true
				}
			}
		}

		if !changed {
			break
		}
	}

	return online
}

// cellBlocksFor reports whether p blocks propagation of side's rays: a
// Mountain, or a unit belonging to the other side that is not a Relay.
// Enemy Relays, Pass, Fortress, friendly arsenals/units, and empty cells are
// all transparent.
func cellBlocksFor(b *Board, p Position, side Side) bool {
	if b.TerrainAt(p).Kind == Mountain {
		return true
	}
	if u, ok := b.UnitAt(p); ok {
		if u.Side != side && !u.Kind.IsRelay() {
			return true
		}
	}
	return false
}
