package engine

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// GameRecord is a finished or interrupted game in a storable form.
type GameRecord struct {
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"` // UCI notation
	SAN      string    `json:"san"`   // Numbered movetext
	Result   string    `json:"result"`
	Played   time.Time `json:"played"`
}

// Game drives play between two parameter sets, or between a user and the
// engine. Each color searches with its own Params.
type Game struct {
	White, Black *Params
	Limits       SearchLimits
	MaxPlies     int // 0 = play until the game ends

	engine  *Engine
	start   board.Board
	board   board.Board
	history []board.Move
}

// NewGame starts a game from the initial position.
func NewGame(e *Engine, white, black *Params) *Game {
	return NewGameFrom(e, board.NewBoard(), white, black)
}

// NewGameFrom starts a game from b.
func NewGameFrom(e *Engine, b board.Board, white, black *Params) *Game {
	return &Game{
		White:  white,
		Black:  black,
		engine: e,
		start:  b,
		board:  b,
	}
}

// Board returns a copy of the current position.
func (g *Game) Board() board.Board {
	return g.board
}

// History returns the moves played so far.
func (g *Game) History() []board.Move {
	return g.history
}

// Params returns the parameters of the side to move.
func (g *Game) Params() *Params {
	if g.board.Turn() == board.White {
		return g.White
	}
	return g.Black
}

// Move plays a user move for the side to move.
func (g *Game) Move(m board.Move) error {
	if !g.board.Play(m) {
		return fmt.Errorf("%w: %s", board.ErrIllegalMove, g.board.MoveString(m))
	}
	g.history = append(g.history, m)
	return nil
}

// Step lets the engine play for the side to move. It returns false when the
// game is over or the ply limit is reached.
func (g *Game) Step() bool {
	if g.MaxPlies > 0 && len(g.history) >= g.MaxPlies {
		return false
	}

	turn := g.board.Turn()
	log.Printf("playing for: %v", turn)
	res := g.engine.Search(&g.board, g.Params(), g.Limits)
	if !res.OK {
		return false
	}
	log.Printf("move %s score %d depth %d nodes %d",
		g.board.MoveString(res.Move), res.Score, res.Depth, res.Nodes)

	if !g.board.Play(res.Move) {
		panic("engine: search returned illegal move " + res.Move.String())
	}
	g.history = append(g.history, res.Move)
	return true
}

// Run steps until the game ends and returns its status.
func (g *Game) Run() board.Status {
	for g.Step() {
	}
	return g.Status()
}

// Status reports whether the side to move is mated or stalemated.
func (g *Game) Status() board.Status {
	return g.board.Status()
}

// Result returns the PGN result token.
func (g *Game) Result() string {
	switch g.Status() {
	case board.Checkmate:
		if g.board.Turn() == board.White {
			return "0-1"
		}
		return "1-0"
	case board.Stalemate:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Record returns the game in storable form.
func (g *Game) Record() GameRecord {
	moves := make([]string, len(g.history))
	b := g.start
	for i, m := range g.history {
		moves[i] = b.MoveString(m)
		b.Apply(m)
	}
	return GameRecord{
		StartFEN: g.start.FEN(),
		Moves:    moves,
		SAN:      Movetext(g.start, g.history),
		Result:   g.Result(),
		Played:   time.Now(),
	}
}

// Movetext formats moves played from start as numbered SAN.
func Movetext(start board.Board, moves []board.Move) string {
	sans := board.MovesToSAN(start, moves)
	var sb strings.Builder
	num := 1
	black := start.Turn() == board.Black
	for i, san := range sans {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case !black:
			fmt.Fprintf(&sb, "%d. ", num)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", num)
		}
		sb.WriteString(san)
		if black {
			num++
		}
		black = !black
	}
	return sb.String()
}

func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString(g.board.String())
	fmt.Fprintf(&sb, "\nwhite heuristic:    %d\n", Evaluate(&g.board, g.White))
	fmt.Fprintf(&sb, "black heuristic:    %d\n", Evaluate(&g.board, g.Black))
	fmt.Fprintf(&sb, "material:           %d\n", EvaluateMaterial(&g.board, g.White))
	return sb.String()
}
