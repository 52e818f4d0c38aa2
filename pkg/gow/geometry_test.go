package gow

import "testing"

func TestChebyshevDistance(t *testing.T) {
	cases := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 0}, 3},
		{Position{0, 0}, Position{0, 3}, 3},
		{Position{0, 0}, Position{3, 3}, 3},
		{Position{0, 0}, Position{2, 5}, 5},
		{Position{4, 4}, Position{1, 2}, 3},
	}
	for _, c := range cases {
		if got := c.a.ChebyshevDistance(c.b); got != c.want {
			t.Errorf("%v.ChebyshevDistance(%v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestDirectionToStraightLines(t *testing.T) {
	p := Position{Row: 5, Col: 5}
	cases := []struct {
		q    Position
		want Direction
	}{
		{Position{2, 5}, DirNorth},
		{Position{2, 8}, DirNorthEast},
		{Position{5, 8}, DirEast},
		{Position{8, 8}, DirSouthEast},
		{Position{8, 5}, DirSouth},
		{Position{8, 2}, DirSouthWest},
		{Position{5, 2}, DirWest},
		{Position{2, 2}, DirNorthWest},
	}
	for _, c := range cases {
		got, ok := DirectionTo(p, c.q)
		if !ok {
			t.Fatalf("DirectionTo(%v, %v) reported no direction", p, c.q)
		}
		if got != c.want {
			t.Errorf("DirectionTo(%v, %v) = %v, want %v", p, c.q, got, c.want)
		}
	}
}

func TestDirectionToAmbiguousOffsetIsIllegal(t *testing.T) {
	p := Position{Row: 5, Col: 5}
	q := Position{Row: 4, Col: 7} // |dr|=1, |dc|=2: not on any of the 8 rays
	if _, ok := DirectionTo(p, q); ok {
		t.Errorf("DirectionTo(%v, %v) should report no straight line", p, q)
	}
	if _, ok := DirectionTo(p, p); ok {
		t.Errorf("DirectionTo(p, p) should report no direction for identical cells")
	}
}

func TestRayOrderAndBounds(t *testing.T) {
	p := Position{Row: 0, Col: 0}
	got := Ray(p, DirEast, 5, 5)
	want := []Position{{0, 1}, {0, 2}, {0, 3}, {0, 4}}
	if len(got) != len(want) {
		t.Fatalf("Ray length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ray[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFormatAndParsePositionRoundTrip(t *testing.T) {
	cases := []struct {
		p Position
		s string
	}{
		{Position{0, 0}, "A1"},
		{Position{0, 1}, "B1"},
		{Position{0, 25}, "Z1"},
		{Position{0, 26}, "AA1"},
		{Position{19, 24}, "Y20"},
	}
	for _, c := range cases {
		if got := FormatPosition(c.p); got != c.s {
			t.Errorf("FormatPosition(%v) = %q, want %q", c.p, got, c.s)
		}
		got, err := ParsePosition(c.s)
		if err != nil {
			t.Fatalf("ParsePosition(%q): %v", c.s, err)
		}
		if got != c.p {
			t.Errorf("ParsePosition(%q) = %v, want %v", c.s, got, c.p)
		}
	}
}

func TestParsePositionRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "1A", "A", "A0", "AA", "1"} {
		if _, err := ParsePosition(s); err == nil {
			t.Errorf("ParsePosition(%q) should have failed", s)
		}
	}
}

func TestNeighbors8ClampsAtEdges(t *testing.T) {
	corner := Neighbors8(Position{0, 0}, 5, 5)
	if len(corner) != 3 {
		t.Errorf("corner cell should have 3 neighbors, got %d", len(corner))
	}
	center := Neighbors8(Position{2, 2}, 5, 5)
	if len(center) != 8 {
		t.Errorf("center cell should have 8 neighbors, got %d", len(center))
	}
}
