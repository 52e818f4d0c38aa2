package gow

import "fmt"

// Config holds the engine-wide rule knobs. The zero value is NOT the
// rules-correct default: callers should start from DefaultConfig().
type Config struct {
	// NetworksEnabled toggles the LOC solver. When false every unit is
	// considered online and the solver is a no-op. Default true; tests that
	// want to isolate movement/combat math from network effects turn it off
	// explicitly.
	NetworksEnabled bool

	// RelayAdjacencyRebroadcast controls whether a Relay lit only by
	// adjacency propagation (not by a direct arsenal/relay ray) itself
	// rebroadcasts new rays. Default true.
	RelayAdjacencyRebroadcast bool

	// RetreatingUnitsFullyOffline selects the stricter reading of the
	// ambiguous "can a retreating unit contribute to combat" rule: when
	// true, a unit that resolved a retreat at the start of the current turn
	// contributes nothing to any attack/defense line (as if offline) for
	// the rest of that turn. Default false: the unit may still support
	// lines, it just cannot initiate the turn's single attack itself.
	RetreatingUnitsFullyOffline bool
}

// DefaultConfig returns the engine's rules-correct default configuration.
func DefaultConfig() Config {
	return Config{
		NetworksEnabled:             true,
		RelayAdjacencyRebroadcast:   true,
		RetreatingUnitsFullyOffline: false,
	}
}

// Board is the mutable root of all game state: terrain, units, the derived
// online map, and the turn state machine. Callers needing concurrent search
// must Clone it first; Board itself is not safe for concurrent use.
type Board struct {
	Height int
	Width  int
	Config Config

	terrain [][]Cell
	units   map[Position]Unit
	online  [2]map[Position]bool
	status  Status

	Turn TurnState
}

// NewBoard returns an empty board of the given dimensions, all-Flat terrain,
// no units, phase Movement, turn 1, side-to-move North.
func NewBoard(height, width int, cfg Config) *Board {
	terrain := make([][]Cell, height)
	for r := range terrain {
		terrain[r] = make([]Cell, width)
	}
	b := &Board{
		Height:  height,
		Width:   width,
		Config:  cfg,
		terrain: terrain,
		units:   make(map[Position]Unit),
		online:  [2]map[Position]bool{make(map[Position]bool), make(map[Position]bool)},
		status:  Ongoing,
		Turn:    NewTurnState(),
	}
	return b
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Position) bool {
	return p.InBounds(b.Height, b.Width)
}

// Territory returns the side whose home territory row p falls in: North is
// rows [0, Height/2), South is the rest.
func (b *Board) Territory(p Position) Side {
	if p.Row < b.Height/2 {
		return North
	}
	return South
}

// TerrainAt returns the terrain cell at p.
func (b *Board) TerrainAt(p Position) Cell {
	return b.terrain[p.Row][p.Col]
}

// SetTerrain sets the terrain kind/owner at p.
func (b *Board) SetTerrain(p Position, c Cell) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	b.terrain[p.Row][p.Col] = c
	return nil
}

// UnitAt returns the unit at p and true, or the zero Unit and false.
func (b *Board) UnitAt(p Position) (Unit, bool) {
	u, ok := b.units[p]
	return u, ok
}

// Place puts unit u at p. Fails if out of bounds, impassable, or occupied.
func (b *Board) Place(p Position, u Unit) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if !b.TerrainAt(p).Passable() {
		return fmt.Errorf("%w: %v", ErrCellImpassable, p)
	}
	if _, occupied := b.units[p]; occupied {
		return fmt.Errorf("%w: %v", ErrCellOccupied, p)
	}
	b.units[p] = u
	return nil
}

// Remove deletes and returns the unit at p.
func (b *Board) Remove(p Position) (Unit, error) {
	u, ok := b.units[p]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %v", ErrNoUnitAt, p)
	}
	delete(b.units, p)
	return u, nil
}

// MoveUnit atomically relocates the unit at from to to. The destination must
// be empty and passable; violating that is an implementation bug reachable
// only by a caller that skipped validation, so MoveUnit panics rather than
// returning an error.
func (b *Board) MoveUnit(from, to Position) {
	u, ok := b.units[from]
	if !ok {
		panic(fmt.Sprintf("gow: MoveUnit: no unit at %v", from))
	}
	if !b.InBounds(to) || !b.TerrainAt(to).Passable() {
		panic(fmt.Sprintf("gow: MoveUnit: %v is not a legal destination", to))
	}
	if _, occupied := b.units[to]; occupied {
		panic(fmt.Sprintf("gow: MoveUnit: %v is occupied", to))
	}
	delete(b.units, from)
	b.units[to] = u
}

// UnitsOf returns the positions of every unit belonging to side.
func (b *Board) UnitsOf(side Side) []Position {
	var out []Position
	for p, u := range b.units {
		if u.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// IsEnemy reports whether p holds a unit belonging to the opposing side.
func (b *Board) IsEnemy(p Position, side Side) bool {
	u, ok := b.units[p]
	return ok && u.Side != side
}

// IsFriendly reports whether p holds a unit belonging to side.
func (b *Board) IsFriendly(p Position, side Side) bool {
	u, ok := b.units[p]
	return ok && u.Side == side
}

// Online reports whether the cell p is part of side's online network. When
// networking is disabled, every cell is considered online.
func (b *Board) Online(side Side, p Position) bool {
	if !b.Config.NetworksEnabled {
		return true
	}
	return b.online[side][p]
}

// RecomputeNetworks re-derives the online map for both sides from scratch.
// ExecuteMove, a capturing ResolveAttack, and EndTurn call it before
// returning. Place, Remove, MoveUnit and SetTerrain do not recompute, so
// callers that use them directly (e.g. scenario setup) call it afterward.
func (b *Board) RecomputeNetworks() {
	b.online = Solve(b, b.Config)
}

// EffectiveAttack returns u's Attack stat given its online status.
func EffectiveAttack(u Unit, online bool) int {
	if !online {
		return 0
	}
	return baseStats[u.Kind].Attack
}

// EffectiveDefense returns u's Defense stat given its online status. Relays
// keep their base Defense of 1 even offline; every other kind contributes 0
// offline. Terrain bonuses are NOT included here: combat.go adds them only
// for the unit that is the direct target of an attack, never for a
// supporter.
func EffectiveDefense(u Unit, online bool) int {
	if online {
		return baseStats[u.Kind].Defense
	}
	if u.Kind.IsRelay() {
		return baseStats[u.Kind].Defense
	}
	return 0
}

// EffectiveMovement returns u's Movement stat given its online status.
// Relays may always move (base Movement) even offline.
func EffectiveMovement(u Unit, online bool) int {
	if online {
		return baseStats[u.Kind].Movement
	}
	if u.Kind.IsRelay() {
		return baseStats[u.Kind].Movement
	}
	return 0
}

// EffectiveRange returns u's Range stat given its online status; always 0
// offline.
func EffectiveRange(u Unit, online bool) int {
	if !online {
		return 0
	}
	return baseStats[u.Kind].Range
}

// Clone returns a deep copy of the board. Mutations to the clone do not
// affect the original; this is how a caller doing speculative search would
// fork state without re-parsing a position string each time.
func (b *Board) Clone() *Board {
	c := &Board{
		Height: b.Height,
		Width:  b.Width,
		Config: b.Config,
		status: b.status,
		Turn:   b.Turn.clone(),
	}
	c.terrain = make([][]Cell, b.Height)
	for r := range b.terrain {
		c.terrain[r] = append([]Cell(nil), b.terrain[r]...)
	}
	c.units = make(map[Position]Unit, len(b.units))
	for p, u := range b.units {
		c.units[p] = u
	}
	c.online = [2]map[Position]bool{
		make(map[Position]bool, len(b.online[North])),
		make(map[Position]bool, len(b.online[South])),
	}
	for p, v := range b.online[North] {
		c.online[North][p] = v
	}
	for p, v := range b.online[South] {
		c.online[South][p] = v
	}
	return c
}

// CheckInvariants validates the board's structural invariants (every unit in
// bounds and off Mountain terrain) and panics describing the first violation
// found. Intended for use in tests and in development builds after mutating
// operations, not on a hot path.
func (b *Board) CheckInvariants() {
	for p, u := range b.units {
		if !b.InBounds(p) {
			panic(fmt.Sprintf("gow: invariant violated: unit %v at out-of-bounds %v", u, p))
		}
		if b.TerrainAt(p).Kind == Mountain {
			panic(fmt.Sprintf("gow: invariant violated: unit %v on Mountain at %v", u, p))
		}
		_ = u
	}
}
