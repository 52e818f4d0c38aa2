package gow

// TerrainKind classifies a cell's static terrain.
type TerrainKind int

const (
	Flat TerrainKind = iota
	Mountain
	Pass
	Fortress
	ArsenalTerrain
)

func (t TerrainKind) String() string {
	switch t {
	case Flat:
		return "flat"
	case Mountain:
		return "mountain"
	case Pass:
		return "pass"
	case Fortress:
		return "fortress"
	case ArsenalTerrain:
		return "arsenal"
	default:
		return "unknown"
	}
}

// terrainDefenseBonus is the defense bonus a terrain kind grants to the
// occupying target of an attack. Supporters never receive this bonus.
var terrainDefenseBonus = map[TerrainKind]int{
	Flat:           0,
	Mountain:       0,
	Pass:           2,
	Fortress:       4,
	ArsenalTerrain: 0,
}

// TerrainDefenseBonus returns the defense bonus the given terrain grants to
// the unit it hosts, when that unit is the target of an attack.
func TerrainDefenseBonus(t TerrainKind) int {
	return terrainDefenseBonus[t]
}

// Cell is the static terrain state of a single board position: its kind, and
// (for an Arsenal) the side that owns it. Owner is meaningless for any other
// kind.
type Cell struct {
	Kind  TerrainKind
	Owner Side
}

// BlocksLOC reports whether this terrain kind blocks LOC rays outright,
// independent of occupancy (Mountain only — enemy units are the other kind
// of blocker, handled by the network solver since they depend on who is
// asking).
func (c Cell) BlocksLOC() bool {
	return c.Kind == Mountain
}

// Passable reports whether a unit may ever occupy this cell (Mountain is the
// only impassable terrain).
func (c Cell) Passable() bool {
	return c.Kind != Mountain
}
