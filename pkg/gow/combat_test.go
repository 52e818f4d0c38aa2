package gow

import (
	"errors"
	"testing"
)

func combatTestBoard() *Board {
	cfg := DefaultConfig()
	cfg.NetworksEnabled = false // isolate combat math from the LOC solver
	return NewBoard(5, 5, cfg)
}

// TestChargeStacking: four North Cavalry in a row, all charging, against a
// South Infantry target on flat ground. 4*7 = 28 attack vs 6 defense is a
// capture (A >= D+2).
func TestChargeStacking(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 4}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	for c := 0; c <= 3; c++ {
		_ = b.Place(Position{0, c}, Unit{Kind: Cavalry, Side: North})
	}

	got := AttackPower(b, North, target)
	if got != 28 {
		t.Errorf("AttackPower = %d, want 28", got)
	}

	result, err := ResolveAttack(b, North, target)
	if err != nil {
		t.Fatalf("ResolveAttack: %v", err)
	}
	if result.Outcome != Capture {
		t.Errorf("outcome = %v, want Capture", result.Outcome)
	}
	if _, ok := b.UnitAt(target); ok {
		t.Error("captured target should be removed from the board")
	}
}

// TestChargeCapAtFourCavalry: a fifth Cavalry beyond the 4-Cavalry charge
// cap falls back to an ordinary ranged contribution, which at distance 5
// exceeds Cavalry's Range of 2 and so contributes nothing at all.
func TestChargeCapAtFourCavalry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NetworksEnabled = false
	b := NewBoard(6, 6, cfg)
	target := Position{0, 5}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	for c := 0; c <= 4; c++ {
		_ = b.Place(Position{0, c}, Unit{Kind: Cavalry, Side: North})
	}

	got := AttackPower(b, North, target)
	if got != 4*CavalryChargeAttack {
		t.Errorf("AttackPower = %d, want %d (only the 4 nearest Cavalry charge; the 5th is out of range)", got, 4*CavalryChargeAttack)
	}
}

// TestChargeBrokenByGap: a gap in the chain stops the charge from reaching
// units further down the ray.
func TestChargeBrokenByGap(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 4}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(Position{0, 3}, Unit{Kind: Cavalry, Side: North})
	// (0,2) left empty: the gap
	_ = b.Place(Position{0, 1}, Unit{Kind: Cavalry, Side: North})

	got := AttackPower(b, North, target)
	if got != CavalryChargeAttack {
		t.Errorf("AttackPower = %d, want %d (only the adjacent Cavalry charges)", got, CavalryChargeAttack)
	}
}

// TestChargeBrokenByNonCavalry: a friendly Infantry in the chain breaks the
// charge for everything behind it.
func TestChargeBrokenByNonCavalry(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 4}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(Position{0, 3}, Unit{Kind: Infantry, Side: North})
	_ = b.Place(Position{0, 2}, Unit{Kind: Cavalry, Side: North})

	got := AttackPower(b, North, target)
	if got != BaseStats(Infantry).Attack+BaseStats(Cavalry).Attack {
		t.Errorf("AttackPower = %d, want %d (no charge once the chain is broken)", got, BaseStats(Infantry).Attack+BaseStats(Cavalry).Attack)
	}
}

// TestChargeVoidedByTargetInFortress: a target sitting in a Fortress is
// never charge-eligible, even from an adjacent Cavalry.
func TestChargeVoidedByTargetInFortress(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 4}
	_ = b.SetTerrain(target, Cell{Kind: Fortress})
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(Position{0, 3}, Unit{Kind: Cavalry, Side: North})

	got := AttackPower(b, North, target)
	if got != BaseStats(Cavalry).Attack {
		t.Errorf("AttackPower = %d, want %d (plain Attack, no charge against a Fortress target)", got, BaseStats(Cavalry).Attack)
	}
}

// TestCavalryInFortressVoidsOwnChargeAndBlocksRay: a Cavalry occupying a
// Fortress neither charges itself nor lets the ray's contribution continue
// past it.
func TestCavalryInFortressVoidsOwnChargeAndBlocksRay(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 4}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.SetTerrain(Position{0, 3}, Cell{Kind: Fortress})
	_ = b.Place(Position{0, 3}, Unit{Kind: Cavalry, Side: North})
	_ = b.Place(Position{0, 2}, Unit{Kind: Cavalry, Side: North})

	got := AttackPower(b, North, target)
	if got != BaseStats(Cavalry).Attack {
		t.Errorf("AttackPower = %d, want %d (fortressed Cavalry contributes plain Attack, then the ray's contribution stops)", got, BaseStats(Cavalry).Attack)
	}
}

// TestRetreatOutcome: a single charging Cavalry (A=7) against a South
// Infantry on flat (D=6) yields exactly A=D+1, a Retreat.
func TestRetreatOutcome(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 1}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(Position{0, 0}, Unit{Kind: Cavalry, Side: North})

	result, err := ResolveAttack(b, North, target)
	if err != nil {
		t.Fatalf("ResolveAttack: %v", err)
	}
	if result.Attack != 7 || result.Defense != 6 {
		t.Fatalf("Attack=%d Defense=%d, want 7, 6", result.Attack, result.Defense)
	}
	if result.Outcome != Retreat {
		t.Errorf("outcome = %v, want Retreat", result.Outcome)
	}
	if _, ok := b.UnitAt(target); !ok {
		t.Error("a Retreat outcome should leave the unit on the board, pending retreat")
	}
	pending := b.Turn.PendingRetreats(South)
	if len(pending) != 1 || pending[0] != target {
		t.Errorf("pending retreats for South = %v, want [%v]", pending, target)
	}
}

// TestNeutralOutcomeLeavesBoardUnchanged: A=4, D=6 is neither a capture nor
// a retreat.
func TestNeutralOutcomeLeavesBoardUnchanged(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 1}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(Position{0, 0}, Unit{Kind: Infantry, Side: North})

	result, err := ResolveAttack(b, North, target)
	if err != nil {
		t.Fatalf("ResolveAttack: %v", err)
	}
	if result.Outcome != Neutral {
		t.Errorf("outcome = %v, want Neutral", result.Outcome)
	}
	if _, ok := b.UnitAt(target); !ok {
		t.Error("a Neutral outcome should not remove the target")
	}
	if len(b.Turn.PendingRetreats(South)) != 0 {
		t.Error("a Neutral outcome should not create a pending retreat")
	}
}

// TestPassSupportBonusAppliesOnlyToTarget: the +2 Pass bonus protects the
// target but not a supporter standing on the same terrain kind.
func TestPassSupportBonusAppliesOnlyToTarget(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 2}
	supporter := Position{0, 3}
	_ = b.SetTerrain(target, Cell{Kind: Pass})
	_ = b.SetTerrain(supporter, Cell{Kind: Pass})
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(supporter, Unit{Kind: Infantry, Side: South})

	got, err := DefensePower(b, target)
	if err != nil {
		t.Fatalf("DefensePower: %v", err)
	}
	want := BaseStats(Infantry).Defense + TerrainDefenseBonus(Pass) + BaseStats(Infantry).Defense
	if got != want {
		t.Errorf("DefensePower = %d, want %d (target's Pass bonus once, supporter's terrain ignored)", got, want)
	}
}

// TestRetreatedUnitCannotInitiateAttack: by default, a unit that just
// resolved a retreat may still support a line but cannot itself initiate its
// side's attack this turn.
func TestRetreatedUnitCannotInitiateAttack(t *testing.T) {
	b := combatTestBoard()
	attacker := Position{0, 0}
	_ = b.Place(attacker, Unit{Kind: Infantry, Side: North})
	b.Turn.retreatedThisTurn[attacker] = true

	target := Position{0, 1}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})

	if got := AttackPower(b, North, target); got != 0 {
		t.Errorf("AttackPower = %d, want 0: a just-retreated unit cannot initiate an attack", got)
	}
}

// TestRetreatedUnitStillSupportsAttackBehindAnInitiator: a just-retreated
// unit farther down the same ray than a non-retreated initiator still
// contributes its full attack, since only initiating is disallowed, not
// supporting.
func TestRetreatedUnitStillSupportsAttackBehindAnInitiator(t *testing.T) {
	b := combatTestBoard()
	retreated := Position{0, 0}
	initiator := Position{0, 1}
	_ = b.Place(retreated, Unit{Kind: Infantry, Side: North})
	_ = b.Place(initiator, Unit{Kind: Infantry, Side: North})
	b.Turn.retreatedThisTurn[retreated] = true

	target := Position{0, 2}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})

	want := BaseStats(Infantry).Attack * 2
	if got := AttackPower(b, North, target); got != want {
		t.Errorf("AttackPower = %d, want %d: the retreated unit supports once a non-retreated unit has initiated", got, want)
	}
}

// TestRetreatedUnitStillSupportsDefenseByDefault: with
// RetreatingUnitsFullyOffline left at its default (false), a just-retreated
// unit still contributes to a defense line.
func TestRetreatedUnitStillSupportsDefenseByDefault(t *testing.T) {
	b := combatTestBoard()
	target := Position{0, 1}
	supporter := Position{0, 2}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(supporter, Unit{Kind: Infantry, Side: South})
	b.Turn.retreatedThisTurn[supporter] = true

	got, err := DefensePower(b, target)
	if err != nil {
		t.Fatalf("DefensePower: %v", err)
	}
	want := BaseStats(Infantry).Defense * 2
	if got != want {
		t.Errorf("DefensePower = %d, want %d: retreated unit should still support by default", got, want)
	}
}

// TestRetreatingUnitsFullyOfflineFlagExcludesSupport: with the stricter flag
// on, a just-retreated unit contributes nothing to a defense line either.
func TestRetreatingUnitsFullyOfflineFlagExcludesSupport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NetworksEnabled = false
	cfg.RetreatingUnitsFullyOffline = true
	b := NewBoard(5, 5, cfg)

	target := Position{0, 1}
	supporter := Position{0, 2}
	_ = b.Place(target, Unit{Kind: Infantry, Side: South})
	_ = b.Place(supporter, Unit{Kind: Infantry, Side: South})
	b.Turn.retreatedThisTurn[supporter] = true

	got, err := DefensePower(b, target)
	if err != nil {
		t.Fatalf("DefensePower: %v", err)
	}
	want := BaseStats(Infantry).Defense
	if got != want {
		t.Errorf("DefensePower = %d, want %d: the flag should fully exclude the retreated supporter", got, want)
	}
}

// TestResolveAttackRejectsFriendlyTarget and out-of-range targets.
func TestResolveAttackRejectsFriendlyTarget(t *testing.T) {
	b := combatTestBoard()
	p := Position{0, 0}
	_ = b.Place(p, Unit{Kind: Infantry, Side: North})
	if _, err := ResolveAttack(b, North, p); err == nil {
		t.Error("attacking a friendly-occupied cell should fail")
	}
}

func TestResolveAttackRejectsWithNoLineAtAll(t *testing.T) {
	b := combatTestBoard()
	_ = b.Place(Position{0, 4}, Unit{Kind: Infantry, Side: South})
	// no North unit anywhere on the board, let alone on a line to the target
	_, err := ResolveAttack(b, North, Position{0, 4})
	if !errors.Is(err, ErrNoLineToTarget) {
		t.Errorf("err = %v, want ErrNoLineToTarget", err)
	}
}

func TestResolveAttackRejectsOutOfRangeTarget(t *testing.T) {
	b := combatTestBoard()
	// Infantry has Range 2; place it 3 cells from the target, on the same
	// line, so it is on a line to the target but cannot reach it.
	_ = b.Place(Position{0, 0}, Unit{Kind: Infantry, Side: North})
	_ = b.Place(Position{0, 3}, Unit{Kind: Infantry, Side: South})
	_, err := ResolveAttack(b, North, Position{0, 3})
	if !errors.Is(err, ErrTargetOutOfRange) {
		t.Errorf("err = %v, want ErrTargetOutOfRange", err)
	}
}

func TestResolveAttackRejectsEmptyTarget(t *testing.T) {
	b := combatTestBoard()
	_ = b.Place(Position{0, 0}, Unit{Kind: Infantry, Side: North})
	if _, err := ResolveAttack(b, North, Position{0, 1}); err == nil {
		t.Error("attacking an empty cell should fail")
	}
}
