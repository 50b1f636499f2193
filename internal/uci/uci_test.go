package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
)

func run(t *testing.T, script string) []string {
	t.Helper()
	var out bytes.Buffer
	p := engine.DefaultParams()
	p.Depth = 2
	u := New(engine.NewEngine(1<<14), p, strings.NewReader(script), &out)
	if err := u.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func lastBestMove(t *testing.T, lines []string) string {
	t.Helper()
	for i := len(lines) - 1; i >= 0; i-- {
		if rest, ok := strings.CutPrefix(lines[i], "bestmove "); ok {
			return rest
		}
	}
	t.Fatalf("no bestmove in output:\n%s", strings.Join(lines, "\n"))
	return ""
}

func TestHandshake(t *testing.T) {
	lines := run(t, "uci\nisready\nquit\n")
	if lines[0] != "id name ChessCore" {
		t.Errorf("first line %q", lines[0])
	}
	if lines[len(lines)-2] != "uciok" || lines[len(lines)-1] != "readyok" {
		t.Errorf("handshake ended with %q", lines[len(lines)-2:])
	}
}

func TestGoReturnsBestMove(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "mate in one",
			script: "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 2\n",
			want:   "a1a8",
		},
		{
			name:   "black mates after moves",
			script: "position fen r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1 moves g8h8 g1h1\ngo depth 2\n",
			want:   "a8a1",
		},
		{
			name:   "promotion suffix",
			script: "position fen 7k/P7/8/8/8/8/8/K7 w - - 0 1\ngo depth 1\n",
			want:   "a7a8q",
		},
		{
			name:   "no legal move",
			script: "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\ngo depth 2\n",
			want:   "0000",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := run(t, tc.script)
			if got := lastBestMove(t, lines); got != tc.want {
				t.Errorf("bestmove %s, want %s\n%s", got, tc.want, strings.Join(lines, "\n"))
			}
		})
	}
}

func TestInfoReportsMate(t *testing.T) {
	lines := run(t, "position fen r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1\ngo depth 3\n")
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "info depth 2") && strings.Contains(l, "score mate 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("no mate info line:\n%s", strings.Join(lines, "\n"))
	}
}

func TestStartposMoves(t *testing.T) {
	lines := run(t, "position startpos moves e2e4 e7e5 g1f3\nd\n")
	want := "Fen: rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 0 1"
	if lines[len(lines)-1] != want {
		t.Errorf("got %q, want %q", lines[len(lines)-1], want)
	}
}

func TestInvalidInput(t *testing.T) {
	lines := run(t, "position startpos moves e2e5\nposition fen nonsense\nfoo\n")
	want := []string{
		"info string Invalid move: e2e5",
		"info string Invalid FEN",
		"info string unknown command: foo",
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], w)
		}
	}
}

func TestPerft(t *testing.T) {
	lines := run(t, "perft 2\n")
	if len(lines) != 20+3 {
		t.Errorf("got %d lines, want one per root move plus summary", len(lines))
	}
	if lines[21] != "Nodes searched: 400" {
		t.Errorf("summary %q", lines[21])
	}
}

func TestSetOption(t *testing.T) {
	lines := run(t, "setoption name Depth value 0\nsetoption name Profile value x\n")
	if !strings.Contains(lines[0], "invalid params") {
		t.Errorf("depth 0 accepted: %q", lines[0])
	}
	if lines[1] != "info string Profiles need a database" {
		t.Errorf("got %q", lines[1])
	}
}

func TestProfileFromStorage(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	p := engine.DefaultParams()
	p.Depth = 1
	if err := store.SaveParams("fast", p); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	u := New(engine.NewEngine(1<<12), engine.DefaultParams(), strings.NewReader(
		"setoption name Profile value fast\ngo\n"), &out)
	u.SetStorage(store)
	if err := u.Run(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "info string Profile fast loaded" {
		t.Errorf("got %q", lines[0])
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "info depth 2") {
			t.Errorf("searched beyond the profile depth: %q", l)
		}
	}
	lastBestMove(t, lines)
}

func TestScoreString(t *testing.T) {
	tests := []struct {
		score, depth int
		want         string
	}{
		{35, 4, "cp 35"},
		{engine.MateScore + 1, 2, "mate 1"},
		{-(engine.MateScore + 1), 4, "mate -2"},
	}
	for _, tc := range tests {
		if got := ScoreString(tc.score, tc.depth); got != tc.want {
			t.Errorf("ScoreString(%d, %d) = %q, want %q", tc.score, tc.depth, got, tc.want)
		}
	}
}
