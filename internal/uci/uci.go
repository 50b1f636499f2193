// Package uci implements the Universal Chess Interface protocol on top of
// the engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
)

// DefaultHashMB is the initial cache budget.
const DefaultHashMB = 64

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	params   *engine.Params
	position board.Board
	ply      int
	parallel bool

	// Profiles are read from here when set.
	store *storage.Storage

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serializes writes to out

	// Search state
	searchDone chan struct{}

	// CPU profiling
	profileFile *os.File
}

// New creates a UCI handler reading commands from in and replying on out.
func New(eng *engine.Engine, p *engine.Params, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		params:   p,
		position: board.NewBoard(),
		in:       in,
		out:      out,
	}
}

// SetStorage enables the Profile option.
func (u *UCI) SetStorage(s *storage.Storage) {
	u.store = s
}

func (u *UCI) send(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Run reads commands until "quit" or the end of input. At the end of input
// a running search is allowed to finish.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.send("readyok")
		case "ucinewgame":
			u.wait()
			u.handleNewGame()
		case "position":
			u.wait()
			u.handlePosition(args)
		case "go":
			u.wait()
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			u.stopProfile()
			return nil
		case "setoption":
			u.wait()
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.send("%s\nFen: %s", u.position.String(), u.position.FEN())
		case "eval":
			u.send("info string eval %d material %d",
				engine.Evaluate(&u.position, u.params), engine.EvaluateMaterial(&u.position, u.params))
		case "perft":
			u.wait()
			u.handlePerft(args)
		default:
			u.send("info string unknown command: %s", cmd)
		}
	}

	u.wait()
	u.stopProfile()
	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.send("id name ChessCore")
	u.send("id author ChessCore Team")
	u.send("")
	u.send("option name Hash type spin default %d min 1 max 4096", DefaultHashMB)
	u.send("option name Depth type spin default %d min 1 max %d", u.params.Depth, engine.MaxDepth)
	u.send("option name PresortDepth type spin default %d min 0 max %d", u.params.PresortDepth, engine.MaxDepth)
	u.send("option name MaterialOnly type check default %v", u.params.MaterialOnly)
	u.send("option name Parallel type check default false")
	u.send("option name Profile type string default <empty>")
	u.send("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.position = board.NewBoard()
	u.ply = 0
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i + 1
			break
		}
	}
	setupEnd := min(moveStart, len(args))
	if setupEnd > 0 && args[setupEnd-1] == "moves" {
		setupEnd--
	}

	var pos board.Board
	switch args[0] {
	case "startpos":
		pos = board.NewBoard()
	case "fen":
		fenStr := strings.Join(args[1:setupEnd], " ")
		var err error
		pos, err = board.ParseFEN(fenStr)
		if err != nil {
			u.send("info string Invalid FEN: %v", err)
			return
		}
	default:
		return
	}

	ply := 0
	for _, moveStr := range args[moveStart:] {
		m, err := board.ParseMove(moveStr, &pos)
		if err != nil {
			u.send("info string Invalid move: %s", moveStr)
			return
		}
		pos.Apply(m)
		ply++
	}

	u.position = pos
	u.ply = ply
}

// GoOptions holds the arguments of a "go" command.
type GoOptions struct {
	Depth     int
	MoveTime  time.Duration
	Infinite  bool
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
}

// parseGoOptions parses the arguments of the "go" command.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	ms := func(i int) time.Duration {
		n, _ := strconv.Atoi(args[i])
		return time.Duration(n) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		hasValue := i+1 < len(args)
		switch args[i] {
		case "infinite":
			opts.Infinite = true
			continue
		case "depth":
			if hasValue {
				opts.Depth, _ = strconv.Atoi(args[i+1])
			}
		case "movetime":
			if hasValue {
				opts.MoveTime = ms(i + 1)
			}
		case "wtime":
			if hasValue {
				opts.WTime = ms(i + 1)
			}
		case "btime":
			if hasValue {
				opts.BTime = ms(i + 1)
			}
		case "winc":
			if hasValue {
				opts.WInc = ms(i + 1)
			}
		case "binc":
			if hasValue {
				opts.BInc = ms(i + 1)
			}
		case "movestogo":
			if hasValue {
				opts.MovesToGo, _ = strconv.Atoi(args[i+1])
			}
		default:
			continue
		}
		i++
	}

	return opts
}

// limits converts go options to engine limits through the time manager.
func (u *UCI) limits(opts GoOptions) engine.SearchLimits {
	tl := engine.TimeLimits{
		Time:      [2]time.Duration{opts.WTime, opts.BTime},
		Inc:       [2]time.Duration{opts.WInc, opts.BInc},
		MovesToGo: opts.MovesToGo,
		MoveTime:  opts.MoveTime,
		Depth:     opts.Depth,
		Infinite:  opts.Infinite,
	}
	if opts.Infinite && tl.Depth == 0 {
		tl.Depth = engine.MaxDepth
	}

	tm := engine.NewTimeManager()
	tm.Init(tl, u.position.Turn(), u.ply)
	limits := tm.Limits(tl, u.parallel)
	if !opts.Infinite && limits.MoveTime > 0 && tl.Depth == 0 {
		// A clock bounds the search, not the configured depth.
		limits.Depth = engine.MaxDepth
	}
	return limits
}

// handleGo starts a search in the background and replies with bestmove.
func (u *UCI) handleGo(args []string) {
	limits := u.limits(parseGoOptions(args))
	pos := u.position

	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(&pos, info)
	}

	results := u.engine.Start(pos, u.params, limits)
	u.searchDone = make(chan struct{})
	go func() {
		defer close(u.searchDone)

		res := <-results
		if !res.OK {
			u.send("bestmove 0000")
			return
		}
		u.send("bestmove %s", pos.MoveString(res.Move))
	}()
}

// ScoreString formats a score for an info line.
func ScoreString(score, depth int) string {
	if !engine.IsMate(score) {
		return fmt.Sprintf("cp %d", score)
	}
	moves := (engine.MatePlies(score, depth) + 1) / 2
	if score < 0 {
		moves = -moves
	}
	return fmt.Sprintf("mate %d", moves)
}

// sendInfo reports a completed depth. Scores are from the side to move's
// point of view.
func (u *UCI) sendInfo(pos *board.Board, info engine.SearchInfo) {
	score := info.Score
	if pos.Turn() == board.Black {
		score = -score
	}

	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		"score " + ScoreString(score, info.Depth),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}
	if info.Move != board.NoMove {
		parts = append(parts, "pv "+pos.MoveString(info.Move))
	}

	u.send("info %s", strings.Join(parts, " "))
}

// wait blocks until a running search has finished.
func (u *UCI) wait() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
	}
}

func (u *UCI) handleStop() {
	if u.searchDone != nil {
		u.engine.Stop()
		u.wait()
	}
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			u.send("info string Invalid hash size: %s", value)
			return
		}
		u.engine = engine.NewEngine(engine.CacheEntriesForMB(mb))
	case "depth":
		u.setParam(func(p *engine.Params) error {
			d, err := strconv.Atoi(value)
			p.Depth = d
			return err
		})
	case "presortdepth":
		u.setParam(func(p *engine.Params) error {
			d, err := strconv.Atoi(value)
			p.PresortDepth = d
			return err
		})
	case "materialonly":
		u.params = u.params.Clone()
		u.params.MaterialOnly = strings.ToLower(value) == "true"
	case "parallel":
		u.parallel = strings.ToLower(value) == "true"
	case "profile":
		if u.store == nil {
			u.send("info string Profiles need a database")
			return
		}
		p, err := u.store.LoadParams(value)
		if err != nil {
			u.send("info string Failed to load profile: %v", err)
			return
		}
		u.params = p
		u.engine.Clear()
		u.send("info string Profile %s loaded", value)
	case "cpuprofile":
		u.stopProfile()
		if value != "" && value != "stop" {
			u.startProfile(value)
		}
	}
}

// setParam applies set to a copy of the current params and keeps it if the
// result is valid.
func (u *UCI) setParam(set func(*engine.Params) error) {
	p := u.params.Clone()
	if err := set(p); err != nil {
		u.send("info string Invalid value: %v", err)
		return
	}
	if err := p.Validate(); err != nil {
		u.send("info string %v", err)
		return
	}
	u.params = p
}

func (u *UCI) startProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		u.send("info string Failed to create profile: %v", err)
		return
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		u.send("info string Failed to start profile: %v", err)
		return
	}
	u.profileFile = f
	u.send("info string CPU profiling to %s", path)
}

func (u *UCI) stopProfile() {
	if u.profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	u.profileFile.Close()
	u.profileFile = nil
	u.send("info string CPU profile saved")
}

// handlePerft runs a perft test, printing the count below each root move.
func (u *UCI) handlePerft(args []string) {
	depth := 4
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	start := time.Now()
	var nodes uint64
	moves := u.position.LegalMoves()
	for _, m := range moves.Slice() {
		child := u.position.Child(m)
		n := u.engine.Perft(&child, depth-1)
		u.send("%s: %d", u.position.MoveString(m), n)
		nodes += n
	}
	elapsed := time.Since(start)

	u.send("")
	u.send("Nodes searched: %d", nodes)
	u.send("Time: %v", elapsed)
}
