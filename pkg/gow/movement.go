package gow

import "fmt"

// LegalDestinations enumerates the legal destinations for the unit at p: all
// cells within its effective Chebyshev move radius, in bounds, not
// Mountain, unoccupied or holding an enemy Arsenal — with the mounted
// early-stop rule applied for Cavalry/SwiftCannon/SwiftRelay.
func LegalDestinations(b *Board, p Position) ([]Position, error) {
	u, ok := b.UnitAt(p)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoUnitAt, p)
	}

	m := EffectiveMovement(u, b.Online(u.Side, p))
	if m == 0 {
		return nil, nil
	}

	var out []Position
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			q := Position{Row: r, Col: c}
			if q == p {
				continue
			}
			if p.ChebyshevDistance(q) > m {
				continue
			}
			if !isLegalDestinationTerrain(b, q, u.Side) {
				continue
			}
			if u.Kind.IsMounted() && !mountedPathLegal(b, u.Side, p, q) {
				continue
			}
			out = append(out, q)
		}
	}
	return out, nil
}

// isLegalDestinationTerrain reports whether q is a cell a unit of side could
// move onto: not Mountain, unoccupied, and either ordinary terrain or an
// enemy-owned Arsenal (entering it destroys it — see ExecuteMove). A
// friendly Arsenal is not a legal destination: it still stands, occupied or
// not, and is not "empty" terrain.
func isLegalDestinationTerrain(b *Board, q Position, side Side) bool {
	cell := b.TerrainAt(q)
	if !cell.Passable() {
		return false
	}
	if _, occupied := b.UnitAt(q); occupied {
		return false
	}
	if cell.Kind == ArsenalTerrain {
		return cell.Owner != side
	}
	return true
}

// mountedPathLegal implements the mounted early-stop rule: q is a legal
// destination only if the straight-line path from p to q (required to exist
// — ambiguous offsets like |dr|=1,|dc|=2 are illegal for mounted units) is
// online all the way through, or q is exactly the first offline cell along
// that path.
func mountedPathLegal(b *Board, side Side, p, q Position) bool {
	dir, ok := DirectionTo(p, q)
	if !ok {
		return false
	}
	path := Ray(p, dir, b.Height, b.Width)
	for _, cell := range path {
		if b.Online(side, cell) {
			if cell == q {
				return true
			}
			continue
		}
		// cell is offline: legal only if this is q itself (first offline
		// stop); otherwise q (farther along) is unreachable.
		return cell == q
	}
	return false
}

// MoveOutcome reports what ExecuteMove actually did, so the turn state
// machine can decide whether the move also consumed the turn's attack slot.
type MoveOutcome struct {
	ArsenalDestroyed bool
}

// ExecuteMove relocates the unit owned by side from `from` to `to`, after
// validating ownership, terrain, occupancy, range, and (for mounted units)
// the early-stop rule. If `to` holds an enemy Arsenal, the arsenal is
// destroyed (terrain flips to Flat) as part of the same move. Both sides'
// online maps are recomputed before returning.
func ExecuteMove(b *Board, side Side, from, to Position) (MoveOutcome, error) {
	u, ok := b.UnitAt(from)
	if !ok {
		return MoveOutcome{}, fmt.Errorf("%w: %v", ErrNoUnitAt, from)
	}
	if u.Side != side {
		return MoveOutcome{}, fmt.Errorf("%w: %v", ErrNotYourUnit, from)
	}
	if !b.InBounds(to) {
		return MoveOutcome{}, fmt.Errorf("%w: %v", ErrOutOfBounds, to)
	}

	destCell := b.TerrainAt(to)
	if !destCell.Passable() {
		return MoveOutcome{}, fmt.Errorf("%w: %v", ErrIllegalTerrain, to)
	}
	if occ, occupied := b.UnitAt(to); occupied {
		if occ.Side == side {
			return MoveOutcome{}, fmt.Errorf("%w: %v", ErrOccupiedByFriendly, to)
		}
		return MoveOutcome{}, fmt.Errorf("%w: enemy unit at %v", ErrMovementBlocked, to)
	}

	legal, err := LegalDestinations(b, from)
	if err != nil {
		return MoveOutcome{}, err
	}
	found := false
	for _, q := range legal {
		if q == to {
			found = true
			break
		}
	}
	if !found {
		m := EffectiveMovement(u, b.Online(side, from))
		if from.ChebyshevDistance(to) > m {
			return MoveOutcome{}, fmt.Errorf("%w: %v to %v exceeds move %d", ErrOutOfRange, from, to, m)
		}
		return MoveOutcome{}, fmt.Errorf("%w: %v to %v", ErrMovementBlocked, from, to)
	}

	outcome := MoveOutcome{}
	if destCell.Kind == ArsenalTerrain && destCell.Owner != side {
		outcome.ArsenalDestroyed = true
		if err := b.SetTerrain(to, Cell{Kind: Flat}); err != nil {
			return MoveOutcome{}, err
		}
	}

	b.MoveUnit(from, to)
	b.RecomputeNetworks()
	return outcome, nil
}
