package gow

import "fmt"

// Phase is one of the two phases of a side's turn.
type Phase int

const (
	MovementPhase Phase = iota
	BattlePhase
)

func (p Phase) String() string {
	if p == BattlePhase {
		return "battle"
	}
	return "movement"
}

// Status is the overall game state.
type Status int

const (
	Ongoing Status = iota
	NorthWins
	SouthWins
	Draw
)

func (s Status) String() string {
	switch s {
	case NorthWins:
		return "north_wins"
	case SouthWins:
		return "south_wins"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// TurnState holds the per-turn state machine: whose turn it is, which phase,
// the move/attack budgets spent so far, and any retreats still owed before
// the owning side's next move.
type TurnState struct {
	TurnNumber int
	SideToMove Side
	Phase      Phase

	movesThisTurn   map[Position]bool
	attacksThisTurn int

	// pendingRetreats[s] holds cells, owned by s, whose occupant must
	// retreat before s may move freely again.
	pendingRetreats [2]map[Position]bool

	// retreatedThisTurn holds the destination cells of units that resolved a
	// retreat at the start of the side-to-move's current turn. Such a unit
	// may still support attack/defense lines but may not initiate its side's
	// attack this turn: it contributes nothing to AttackPower on a ray where
	// it is the first friendly unit from the target. Cleared at the next
	// EndTurn.
	retreatedThisTurn map[Position]bool
}

// NewTurnState returns the initial state: turn 1, North to move, Movement
// phase, empty budgets.
func NewTurnState() TurnState {
	return TurnState{
		TurnNumber:        1,
		SideToMove:        North,
		Phase:             MovementPhase,
		movesThisTurn:     make(map[Position]bool),
		attacksThisTurn:   0,
		pendingRetreats:   [2]map[Position]bool{make(map[Position]bool), make(map[Position]bool)},
		retreatedThisTurn: make(map[Position]bool),
	}
}

func (t TurnState) clone() TurnState {
	c := TurnState{
		TurnNumber:        t.TurnNumber,
		SideToMove:        t.SideToMove,
		Phase:             t.Phase,
		attacksThisTurn:   t.attacksThisTurn,
		movesThisTurn:     make(map[Position]bool, len(t.movesThisTurn)),
		retreatedThisTurn: make(map[Position]bool, len(t.retreatedThisTurn)),
		pendingRetreats: [2]map[Position]bool{
			make(map[Position]bool, len(t.pendingRetreats[North])),
			make(map[Position]bool, len(t.pendingRetreats[South])),
		},
	}
	for p, v := range t.movesThisTurn {
		c.movesThisTurn[p] = v
	}
	for p, v := range t.retreatedThisTurn {
		c.retreatedThisTurn[p] = v
	}
	for p, v := range t.pendingRetreats[North] {
		c.pendingRetreats[North][p] = v
	}
	for p, v := range t.pendingRetreats[South] {
		c.pendingRetreats[South][p] = v
	}
	return c
}

// HasJustRetreated reports whether the unit at p resolved a retreat at the
// start of the current side-to-move's turn and so may not initiate its
// side's attack this turn (it may still support behind another unit).
func (t *TurnState) HasJustRetreated(p Position) bool {
	return t.retreatedThisTurn[p]
}

func (t *TurnState) addPendingRetreat(owner Side, p Position) {
	t.pendingRetreats[owner][p] = true
}

// PendingRetreats returns the cells owned by side that must retreat before
// side may move freely.
func (t *TurnState) PendingRetreats(side Side) []Position {
	var out []Position
	for p := range t.pendingRetreats[side] {
		out = append(out, p)
	}
	return out
}

// MovesThisTurn returns the destination cells moved to so far this turn.
func (t *TurnState) MovesThisTurn() []Position {
	var out []Position
	for p := range t.movesThisTurn {
		out = append(out, p)
	}
	return out
}

// AttacksThisTurn returns how many attacks (0 or 1) have been spent.
func (t *TurnState) AttacksThisTurn() int {
	return t.attacksThisTurn
}

const maxMovesPerTurn = 5

// MakeMove validates and applies a move by the side to move, per the turn
// budget: phase must be Movement, fewer than 5 moves spent, `from` must not
// already be a cell that moved this turn, and the unit must belong to the
// side to move. An arsenal-destroying entry consumes the turn's single
// attack and switches the phase to Battle immediately (it does not end the
// turn).
func (t *TurnState) MakeMove(b *Board, from, to Position) (MoveOutcome, error) {
	if t.Phase != MovementPhase {
		return MoveOutcome{}, fmt.Errorf("%w: make_move requires Movement phase", ErrWrongPhase)
	}
	if len(t.PendingRetreats(t.SideToMove)) > 0 {
		return MoveOutcome{}, fmt.Errorf("%w", ErrMustRetreatFirst)
	}
	if len(t.movesThisTurn) >= maxMovesPerTurn {
		return MoveOutcome{}, fmt.Errorf("%w", ErrOutOfMoveBudget)
	}
	if t.movesThisTurn[from] {
		return MoveOutcome{}, fmt.Errorf("%w: %v already moved this turn", ErrAlreadyMoved, from)
	}

	outcome, err := ExecuteMove(b, t.SideToMove, from, to)
	if err != nil {
		return MoveOutcome{}, err
	}
	t.movesThisTurn[to] = true

	if outcome.ArsenalDestroyed {
		t.Phase = BattlePhase
		t.attacksThisTurn = 1
	}
	b.CheckVictory()
	return outcome, nil
}

// SwitchToBattle moves from Movement to Battle phase. Requires no pending
// retreats left unresolved for the side to move.
func (t *TurnState) SwitchToBattle() error {
	if t.Phase != MovementPhase {
		return fmt.Errorf("%w: switch_to_battle requires Movement phase", ErrWrongPhase)
	}
	if len(t.PendingRetreats(t.SideToMove)) > 0 {
		return fmt.Errorf("%w", ErrMustRetreatFirst)
	}
	t.Phase = BattlePhase
	return nil
}

// MakeAttack resolves the side to move's single attack against the enemy
// unit at target. Requires phase Battle and no attack spent yet.
func (t *TurnState) MakeAttack(b *Board, target Position) (AttackResult, error) {
	if t.Phase != BattlePhase {
		return AttackResult{}, fmt.Errorf("%w: make_attack requires Battle phase", ErrWrongPhase)
	}
	if t.attacksThisTurn != 0 {
		return AttackResult{}, fmt.Errorf("%w", ErrNoAttacksLeft)
	}

	result, err := ResolveAttack(b, t.SideToMove, target)
	if err != nil {
		return AttackResult{}, err
	}
	t.attacksThisTurn = 1
	b.CheckVictory()
	return result, nil
}

// PassAttack spends the turn's single attack without attacking.
func (t *TurnState) PassAttack() error {
	if t.Phase != BattlePhase {
		return fmt.Errorf("%w: pass_attack requires Battle phase", ErrWrongPhase)
	}
	if t.attacksThisTurn != 0 {
		return fmt.Errorf("%w", ErrAlreadyAttacked)
	}
	t.attacksThisTurn = 1
	return nil
}

// EndTurn closes out the side to move's turn: resolves the incoming side's
// pending retreats, flips side to move, advances turn_number after South's
// turn, resets phase and budgets, recomputes the network, and checks
// victory.
func (t *TurnState) EndTurn(b *Board) error {
	if t.Phase != BattlePhase {
		return fmt.Errorf("%w: end_turn requires Battle phase", ErrWrongPhase)
	}
	if t.attacksThisTurn != 1 {
		return fmt.Errorf("%w: attack must be resolved or passed first", ErrTurnNotEndable)
	}

	next := t.SideToMove.Opponent()

	if t.SideToMove == South {
		t.TurnNumber++
	}
	t.SideToMove = next
	t.Phase = MovementPhase
	t.movesThisTurn = make(map[Position]bool)
	t.attacksThisTurn = 0
	t.retreatedThisTurn = make(map[Position]bool)

	resolveRetreats(b, t, next)

	b.RecomputeNetworks()
	b.CheckVictory()
	return nil
}

// resolveRetreats applies the retreat-or-destroy rule for every cell in
// side's pending retreats, choosing the first in-bounds, empty, non-Mountain,
// non-Arsenal 8-neighbor as the retreat destination (deterministic: lowest row, then
// lowest column). A unit with no valid neighbor is destroyed. A retreating
// unit is marked as having moved this turn, consuming one of the new move
// budget's 5 slots.
func resolveRetreats(b *Board, t *TurnState, side Side) {
	for p := range t.pendingRetreats[side] {
		if _, ok := b.UnitAt(p); !ok {
			continue // captured or otherwise removed before the retreat resolved
		}
		dest, found := firstRetreatDestination(b, p)
		if !found {
			b.Remove(p)
			continue
		}
		b.MoveUnit(p, dest)
		t.movesThisTurn[dest] = true
		t.retreatedThisTurn[dest] = true
	}
	t.pendingRetreats[side] = make(map[Position]bool)
	b.RecomputeNetworks()
}

func firstRetreatDestination(b *Board, p Position) (Position, bool) {
	neighbors := Neighbors8(p, b.Height, b.Width)
	best, found := Position{}, false
	for _, q := range neighbors {
		cell := b.TerrainAt(q)
		if !cell.Passable() {
			continue
		}
		if _, occupied := b.UnitAt(q); occupied {
			continue
		}
		if cell.Kind == ArsenalTerrain {
			continue
		}
		if !found || q.Row < best.Row || (q.Row == best.Row && q.Col < best.Col) {
			best, found = q, true
		}
	}
	return best, found
}

// CheckVictory recomputes the game status from the current board and stores
// it. It is idempotent and cheap enough to call after every mutation.
func (b *Board) CheckVictory() Status {
	b.status = computeStatus(b)
	return b.status
}

// GameStatus returns the status as of the last CheckVictory call.
func (b *Board) GameStatus() Status {
	return b.status
}

func computeStatus(b *Board) Status {
	northLost := sideLost(b, North)
	southLost := sideLost(b, South)
	switch {
	case northLost && southLost:
		return Draw
	case northLost:
		return SouthWins
	case southLost:
		return NorthWins
	default:
		return Ongoing
	}
}

func sideLost(b *Board, side Side) bool {
	if arsenalsDestroyed(b, side) {
		return true
	}
	if !hasMobileCombatUnit(b, side) {
		return true
	}
	if relaysDestroyedAndAllOffline(b, side) {
		return true
	}
	return false
}

func arsenalsDestroyed(b *Board, side Side) bool {
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			p := Position{Row: r, Col: c}
			if b.TerrainAt(p).Kind == ArsenalTerrain && b.TerrainAt(p).Owner == side {
				return false
			}
		}
	}
	return true
}

func hasMobileCombatUnit(b *Board, side Side) bool {
	for _, p := range b.UnitsOf(side) {
		u, _ := b.UnitAt(p)
		if u.Kind.IsCombatUnit() {
			return true
		}
	}
	return false
}

func relaysDestroyedAndAllOffline(b *Board, side Side) bool {
	units := b.UnitsOf(side)
	for _, p := range units {
		u, _ := b.UnitAt(p)
		if u.Kind.IsRelay() {
			return false
		}
	}
	for _, p := range units {
		if b.Online(side, p) {
			return false
		}
	}
	return len(units) > 0
}
