package gow

import "errors"

// Sentinel errors for every failure kind in the engine, checked with
// errors.Is. Each call site wraps the relevant sentinel with fmt.Errorf to
// add position/context, so callers can branch on error kind without parsing
// strings.
var (
	// Geometry
	ErrOutOfBounds   = errors.New("gow: cell out of bounds")
	ErrInvalidCoord  = errors.New("gow: invalid coordinate")

	// Occupancy
	ErrNoUnitAt        = errors.New("gow: no unit at cell")
	ErrCellOccupied    = errors.New("gow: cell occupied")
	ErrCellImpassable  = errors.New("gow: cell impassable")

	// Ownership
	ErrNotYourUnit = errors.New("gow: unit does not belong to side to move")

	// Movement
	ErrAlreadyMoved       = errors.New("gow: unit already moved this turn")
	ErrOutOfMoveBudget    = errors.New("gow: move budget exhausted for this turn")
	ErrOutOfRange         = errors.New("gow: destination out of range")
	ErrMustRetreatFirst   = errors.New("gow: pending retreats must be resolved first")
	ErrMovementBlocked    = errors.New("gow: movement blocked")
	ErrIllegalTerrain     = errors.New("gow: illegal terrain for unit")
	ErrOccupiedByFriendly = errors.New("gow: cell occupied by friendly unit")

	// Combat
	ErrNoLineToTarget   = errors.New("gow: no friendly unit on a straight line to target")
	ErrTargetOutOfRange = errors.New("gow: target on a line, but out of range for every attacker on it")
	ErrNoAttacksLeft    = errors.New("gow: no attacks left this turn")
	ErrAlreadyAttacked  = errors.New("gow: already attacked this turn")
	ErrNoEnemyAtTarget  = errors.New("gow: no enemy unit at target cell")

	// Phase
	ErrWrongPhase      = errors.New("gow: wrong phase for this operation")
	ErrTurnNotEndable  = errors.New("gow: turn cannot be ended yet")

	// Parse (named for collaborators; no codec lives in this package)
	ErrMalformedKFEN = errors.New("gow: malformed KFEN")
	ErrBadMoveToken  = errors.New("gow: bad move token")
)
