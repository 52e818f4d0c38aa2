package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aldenb/gameofwar/internal/config"
	"github.com/aldenb/gameofwar/internal/logger"
	"github.com/aldenb/gameofwar/pkg/gow"
)

// runResult summarizes the outcome of a single scripted self-play game.
type runResult struct {
	Winner  string `json:"winner"`
	Turns   int    `json:"turns"`
	Stalled bool   `json:"stalled"`
}

func main() {
	logger.Init()

	var (
		numGames int
		workers  int
		maxTurns int
		jsonOut  bool
	)
	flag.IntVar(&numGames, "n", 1, "Number of games to run")
	flag.IntVar(&workers, "workers", 1, "Concurrency (parallel games)")
	flag.IntVar(&maxTurns, "max-turns", 200, "Turn cap before a game is called stalled")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.Parse()

	cfg := config.Load()

	results := make([]runResult, numGames)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < numGames; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			l := logger.Get().With().Int("game", idx+1).Logger()
			results[idx] = playOneGame(cfg, maxTurns, l)
			l.Info().Str("winner", results[idx].Winner).Int("turns", results[idx].Turns).Msg("game finished")
		}(i)
	}
	wg.Wait()

	if jsonOut {
		printJSON(results)
	} else {
		printSummary(results)
	}
}

// playOneGame sets up a symmetric starting position and drives it with a
// deterministic scripted strategy for both sides: advance whichever unmoved
// unit gains the most ground toward the opponent's arsenal, attack the first
// enemy found in range, otherwise pass. This has no search or evaluation; it exists to
// exercise the full engine (movement, combat, retreats, victory detection)
// end to end without a human or AI driving it.
func playOneGame(cfg *config.Config, maxTurns int, l zerolog.Logger) runResult {
	b := setupBoard(cfg)

	for turn := 0; turn < maxTurns; turn++ {
		if b.GameStatus() != gow.Ongoing {
			break
		}
		playHalfTurn(b, l)
		if b.GameStatus() != gow.Ongoing {
			break
		}
		playHalfTurn(b, l)
	}

	status := b.CheckVictory()
	switch status {
	case gow.NorthWins:
		return runResult{Winner: "north", Turns: b.Turn.TurnNumber}
	case gow.SouthWins:
		return runResult{Winner: "south", Turns: b.Turn.TurnNumber}
	case gow.Draw:
		return runResult{Winner: "draw", Turns: b.Turn.TurnNumber}
	default:
		return runResult{Winner: "", Turns: b.Turn.TurnNumber, Stalled: true}
	}
}

// setupBoard builds a small symmetric opening position: each side has one
// Arsenal, a Relay beside it, and a line of Infantry and Cavalry facing the
// opponent across open ground.
func setupBoard(cfg *config.Config) *gow.Board {
	gcfg := gow.DefaultConfig()
	gcfg.NetworksEnabled = cfg.NetworksEnabled
	gcfg.RelayAdjacencyRebroadcast = cfg.RelayAdjacencyRebroadcast
	gcfg.RetreatingUnitsFullyOffline = cfg.RetreatingUnitsFullyOffline

	height, width := cfg.BoardHeight, cfg.BoardWidth
	if height < 6 {
		height = 6
	}
	if width < 6 {
		width = 6
	}
	b := gow.NewBoard(height, width, gcfg)

	_ = b.SetTerrain(gow.Position{Row: 0, Col: 0}, gow.Cell{Kind: gow.ArsenalTerrain, Owner: gow.North})
	_ = b.Place(gow.Position{Row: 0, Col: 1}, gow.Unit{Kind: gow.Relay, Side: gow.North})
	_ = b.Place(gow.Position{Row: 1, Col: 0}, gow.Unit{Kind: gow.Infantry, Side: gow.North})
	_ = b.Place(gow.Position{Row: 1, Col: 1}, gow.Unit{Kind: gow.Cavalry, Side: gow.North})
	_ = b.Place(gow.Position{Row: 1, Col: 2}, gow.Unit{Kind: gow.Cannon, Side: gow.North})

	_ = b.SetTerrain(gow.Position{Row: height - 1, Col: width - 1}, gow.Cell{Kind: gow.ArsenalTerrain, Owner: gow.South})
	_ = b.Place(gow.Position{Row: height - 1, Col: width - 2}, gow.Unit{Kind: gow.Relay, Side: gow.South})
	_ = b.Place(gow.Position{Row: height - 2, Col: width - 1}, gow.Unit{Kind: gow.Infantry, Side: gow.South})
	_ = b.Place(gow.Position{Row: height - 2, Col: width - 2}, gow.Unit{Kind: gow.Cavalry, Side: gow.South})
	_ = b.Place(gow.Position{Row: height - 2, Col: width - 3}, gow.Unit{Kind: gow.Cannon, Side: gow.South})

	b.RecomputeNetworks()
	b.CheckVictory()
	return b
}

// playHalfTurn runs one side's entire turn: spend moves advancing toward
// the opponent's side of the board until the budget or legal moves run out,
// then attack the first in-range enemy found if any, else pass, then end the
// turn.
func playHalfTurn(b *gow.Board, l zerolog.Logger) {
	side := b.Turn.SideToMove

	for len(b.Turn.MovesThisTurn()) < 5 && b.Turn.Phase == gow.MovementPhase {
		if len(b.Turn.PendingRetreats(side)) > 0 {
			break
		}
		from, to, ok := bestAdvance(b, side)
		if !ok {
			break
		}
		if _, err := b.Turn.MakeMove(b, from, to); err != nil {
			l.Debug().Err(err).Msg("scripted move rejected")
			break
		}
	}

	if b.Turn.Phase == gow.MovementPhase {
		if err := b.Turn.SwitchToBattle(); err != nil {
			l.Debug().Err(err).Msg("switch_to_battle rejected")
		}
	}

	if b.Turn.Phase == gow.BattlePhase && b.Turn.AttacksThisTurn() == 0 {
		if target, ok := bestTarget(b, side); ok {
			if _, err := b.Turn.MakeAttack(b, target); err != nil {
				l.Debug().Err(err).Msg("scripted attack rejected")
				_ = b.Turn.PassAttack()
			}
		} else {
			_ = b.Turn.PassAttack()
		}
	}

	if b.Turn.Phase == gow.BattlePhase && b.Turn.AttacksThisTurn() == 1 {
		if err := b.Turn.EndTurn(b); err != nil {
			l.Debug().Err(err).Msg("end_turn rejected")
		}
	}
}

// bestAdvance picks the unmoved, mobile unit of side whose legal destination
// reduces its Chebyshev distance to the opponent's arsenal the most.
func bestAdvance(b *gow.Board, side gow.Side) (gow.Position, gow.Position, bool) {
	target := opponentArsenal(b, side)

	bestFrom, bestTo := gow.Position{}, gow.Position{}
	bestGain := -1
	found := false

	moved := map[gow.Position]bool{}
	for _, p := range b.Turn.MovesThisTurn() {
		moved[p] = true
	}

	for _, p := range b.UnitsOf(side) {
		if moved[p] {
			continue
		}
		dests, err := gow.LegalDestinations(b, p)
		if err != nil || len(dests) == 0 {
			continue
		}
		curDist := p.ChebyshevDistance(target)
		for _, d := range dests {
			gain := curDist - d.ChebyshevDistance(target)
			if gain > bestGain {
				bestGain, bestFrom, bestTo, found = gain, p, d, true
			}
		}
	}
	return bestFrom, bestTo, found
}

// bestTarget picks the first enemy unit that side may legally attack.
func bestTarget(b *gow.Board, side gow.Side) (gow.Position, bool) {
	for _, p := range b.UnitsOf(side.Opponent()) {
		if gow.CanAttack(b, side, p) {
			return p, true
		}
	}
	return gow.Position{}, false
}

func opponentArsenal(b *gow.Board, side gow.Side) gow.Position {
	owner := side.Opponent()
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			p := gow.Position{Row: r, Col: c}
			cell := b.TerrainAt(p)
			if cell.Kind == gow.ArsenalTerrain && cell.Owner == owner {
				return p
			}
		}
	}
	return gow.Position{Row: b.Height / 2, Col: b.Width / 2}
}

func printSummary(results []runResult) {
	wins := map[string]int{}
	stalled := 0
	for _, r := range results {
		if r.Stalled {
			stalled++
			continue
		}
		wins[r.Winner]++
	}

	fmt.Printf("\nResults (%d games):\n", len(results))
	keys := make([]string, 0, len(wins))
	for k := range wins {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		label := k
		if label == "" {
			label = "draw"
		}
		fmt.Printf("  %-6s: %d\n", label, wins[k])
	}
	if stalled > 0 {
		fmt.Printf("  stalled (hit turn cap): %d\n", stalled)
	}
}

func printJSON(results []runResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(results)
}
