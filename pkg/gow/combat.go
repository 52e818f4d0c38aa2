package gow

import "fmt"

// Outcome classifies the result of a resolved attack.
type Outcome int

const (
	Neutral Outcome = iota
	Retreat
	Capture
)

func (o Outcome) String() string {
	switch o {
	case Neutral:
		return "neutral"
	case Retreat:
		return "retreat"
	case Capture:
		return "capture"
	default:
		return "unknown"
	}
}

// AttackResult reports the computed powers and outcome of a resolved attack.
type AttackResult struct {
	Attack  int
	Defense int
	Outcome Outcome
}

// hasRangedAttacker reports whether some friendly unit of side lies on a
// straight 8-direction line from q with effective range covering the
// distance — the legality condition for declaring q as a target. Blocking is
// irrelevant to legality: a blocked attacker simply contributes 0 to
// AttackPower, yielding a Neutral outcome.
func hasRangedAttacker(b *Board, side Side, q Position) bool {
	for _, d := range AllDirections() {
		for _, cell := range Ray(q, d, b.Height, b.Width) {
			u, ok := b.UnitAt(cell)
			if !ok {
				continue
			}
			if u.Side != side {
				continue
			}
			dist := q.ChebyshevDistance(cell)
			if EffectiveRange(u, b.Online(side, cell)) >= dist {
				return true
			}
		}
	}
	return false
}

// hasAttackerOnLine reports whether any friendly-to-side unit lies on a
// straight 8-direction line from q at all, irrespective of range —
// distinguishing ErrNoLineToTarget (nothing on any line) from
// ErrTargetOutOfRange (something on a line, but nothing reaches q).
func hasAttackerOnLine(b *Board, side Side, q Position) bool {
	for _, d := range AllDirections() {
		for _, cell := range Ray(q, d, b.Height, b.Width) {
			if u, ok := b.UnitAt(cell); ok && u.Side == side {
				return true
			}
		}
	}
	return false
}

// CanAttack reports whether side may legally declare q as an attack target:
// q holds an enemy unit, and some friendly-to-side unit has it in range.
func CanAttack(b *Board, side Side, q Position) bool {
	u, ok := b.UnitAt(q)
	if !ok || u.Side == side {
		return false
	}
	return hasRangedAttacker(b, side, q)
}

// AttackPower computes side's total attack power against the enemy unit at
// q: walk each of the 8 rays outward from q; friendly units contribute their
// effective Attack if in range, enemies and Mountains terminate the ray, and
// consecutive friendly Cavalry starting adjacent to q charge for 7 instead
// of 4 (up to 4 Cavalry), unless the target itself sits in a Pass or
// Fortress.
func AttackPower(b *Board, side Side, q Position) int {
	if _, ok := b.UnitAt(q); !ok {
		return 0
	}
	targetCell := b.TerrainAt(q)
	chargeEligible := targetCell.Kind != Pass && targetCell.Kind != Fortress

	total := 0
	for _, d := range AllDirections() {
		total += attackPowerAlongRay(b, side, q, d, chargeEligible)
	}
	return total
}

func attackPowerAlongRay(b *Board, side Side, q Position, d Direction, chargeEligible bool) int {
	sum := 0
	chainActive := chargeEligible
	chainCount := 0
	seenFriendly := false

	for _, cell := range Ray(q, d, b.Height, b.Width) {
		cellTerrain := b.TerrainAt(cell)
		if cellTerrain.Kind == Mountain {
			break
		}
		u, occupied := b.UnitAt(cell)
		if !occupied {
			chainActive = false // gap breaks the charge chain
			continue
		}
		if u.Side != side {
			break // enemy unit blocks the rest of this ray
		}

		isInitiator := !seenFriendly
		seenFriendly = true

		if isInitiator && b.Turn.HasJustRetreated(cell) {
			// A unit that just resolved a retreat may not itself
			// initiate its side's attack this turn, but it does not
			// block units farther along the ray from supporting
			// normally.
			chainActive = false
			continue
		}

		online := defenderOnline(b, side, cell)

		// An online charging Cavalry contributes regardless of its distance
		// to q — the charge is relayed down the line of stacked Cavalry, not
		// a ranged attack. Range only gates ordinary (non-charging)
		// contribution below.
		if u.Kind == Cavalry && online && chainActive && cellTerrain.Kind != Fortress && chainCount < MaxChargeCavalry {
			chainCount++
			sum += CavalryChargeAttack
			continue
		}

		dist := q.ChebyshevDistance(cell)
		if EffectiveRange(u, online) < dist {
			chainActive = false
			continue
		}

		// Chain ends here: either not Cavalry, chain already broken, the
		// charge cap was hit, this Cavalry is offline, or it sits in a Fortress (which
		// breaks the line for charge purposes — it neither charges nor
		// lets the ray continue contributing past it).
		sum += EffectiveAttack(u, online)
		if u.Kind == Cavalry && cellTerrain.Kind == Fortress {
			break
		}
		chainActive = false
	}
	return sum
}

// DefensePower computes the total defense power protecting the unit at q:
// its own effective Defense plus its terrain bonus (Pass +2, Fortress +4,
// applied only to the target itself), plus the effective Defense of every
// friendly-to-the-defender unit on an unblocked ray from q. Terrain bonuses
// never apply to a supporter.
func DefensePower(b *Board, q Position) (int, error) {
	target, ok := b.UnitAt(q)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoEnemyAtTarget, q)
	}
	defender := target.Side

	total := EffectiveDefense(target, defenderOnline(b, defender, q)) + TerrainDefenseBonus(b.TerrainAt(q).Kind)

	for _, d := range AllDirections() {
		for _, cell := range Ray(q, d, b.Height, b.Width) {
			if b.TerrainAt(cell).Kind == Mountain {
				break
			}
			u, occupied := b.UnitAt(cell)
			if !occupied {
				continue
			}
			if u.Side != defender {
				break // enemy (to the defender) blocks the rest of this ray
			}
			total += EffectiveDefense(u, defenderOnline(b, defender, cell))
		}
	}
	return total, nil
}

// defenderOnline reports p's online status for combat purposes (used by both
// AttackPower and DefensePower), honoring Config.RetreatingUnitsFullyOffline:
// when set, a unit that just resolved a retreat this turn contributes as if
// offline, not just as a non-initiator of its side's attack.
func defenderOnline(b *Board, side Side, p Position) bool {
	if b.Config.RetreatingUnitsFullyOffline && b.Turn.HasJustRetreated(p) {
		return false
	}
	return b.Online(side, p)
}

// ResolveAttack adjudicates side's attack against the enemy unit at q:
// computes attack/defense power and applies the outcome (Neutral: nothing;
// Retreat: q's occupant is marked pending-retreat on the board's TurnState;
// Capture: q's occupant is removed). Returns the computed result.
func ResolveAttack(b *Board, side Side, q Position) (AttackResult, error) {
	target, ok := b.UnitAt(q)
	if !ok {
		return AttackResult{}, fmt.Errorf("%w: %v", ErrNoEnemyAtTarget, q)
	}
	if target.Side == side {
		return AttackResult{}, fmt.Errorf("%w: %v is friendly", ErrNoEnemyAtTarget, q)
	}
	if !hasRangedAttacker(b, side, q) {
		if !hasAttackerOnLine(b, side, q) {
			return AttackResult{}, fmt.Errorf("%w: %v", ErrNoLineToTarget, q)
		}
		return AttackResult{}, fmt.Errorf("%w: %v", ErrTargetOutOfRange, q)
	}

	a := AttackPower(b, side, q)
	d, err := DefensePower(b, q)
	if err != nil {
		return AttackResult{}, err
	}

	result := AttackResult{Attack: a, Defense: d}
	switch {
	case a >= d+2:
		result.Outcome = Capture
		if _, err := b.Remove(q); err != nil {
			return AttackResult{}, err
		}
		b.RecomputeNetworks()
	case a == d+1:
		result.Outcome = Retreat
		b.Turn.addPendingRetreat(target.Side, q)
	default:
		result.Outcome = Neutral
	}
	return result, nil
}
