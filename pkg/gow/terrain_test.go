package gow

import "testing"

func TestTerrainDefenseBonus(t *testing.T) {
	cases := []struct {
		kind TerrainKind
		want int
	}{
		{Flat, 0},
		{Mountain, 0},
		{Pass, 2},
		{Fortress, 4},
		{ArsenalTerrain, 0},
	}
	for _, c := range cases {
		if got := TerrainDefenseBonus(c.kind); got != c.want {
			t.Errorf("TerrainDefenseBonus(%v) = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestPassable(t *testing.T) {
	if (Cell{Kind: Mountain}).Passable() {
		t.Error("Mountain should be impassable")
	}
	for _, k := range []TerrainKind{Flat, Pass, Fortress, ArsenalTerrain} {
		if !(Cell{Kind: k}).Passable() {
			t.Errorf("%v should be passable", k)
		}
	}
}

func TestBlocksLOC(t *testing.T) {
	if !(Cell{Kind: Mountain}).BlocksLOC() {
		t.Error("Mountain should block LOC")
	}
	for _, k := range []TerrainKind{Flat, Pass, Fortress, ArsenalTerrain} {
		if (Cell{Kind: k}).BlocksLOC() {
			t.Errorf("%v should not block LOC by itself", k)
		}
	}
}
