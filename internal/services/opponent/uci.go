package opponent

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// UCIMover obtains moves from an external UCI engine binary (such as
// Stockfish). A fresh engine process is launched per request; the cost
// is negligible next to the search itself and avoids holding a child
// process across the server's lifetime.
type UCIMover struct {
	path       string
	skillLevel int // engine-defined scale; <0 leaves the engine default
}

// NewUCIMover creates a mover running the engine at the given path
func NewUCIMover(path string, skillLevel int) *UCIMover {
	return &UCIMover{path: path, skillLevel: skillLevel}
}

var _ Mover = (*UCIMover)(nil)

// BestMove runs the engine on the position for the given budget and
// returns its chosen move in coordinate notation. The engine answering
// "bestmove (none)" yields an empty token.
func (m *UCIMover) BestMove(ctx context.Context, fen string, budget time.Duration) (string, error) {
	cmd := exec.CommandContext(ctx, m.path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("engine stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("engine stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("starting engine %s: %w", m.path, err)
	}
	defer func() {
		_, _ = fmt.Fprintln(stdin, "quit")
		_ = stdin.Close()
		_ = cmd.Wait()
	}()

	scanner := bufio.NewScanner(stdout)
	send := func(line string) error {
		_, err := fmt.Fprintln(stdin, line)
		return err
	}
	waitFor := func(prefix string) (string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading engine output: %w", err)
		}
		return "", fmt.Errorf("engine exited before %q", prefix)
	}

	if err := send("uci"); err != nil {
		return "", err
	}
	if _, err := waitFor("uciok"); err != nil {
		return "", err
	}

	if m.skillLevel >= 0 {
		if err := send(fmt.Sprintf("setoption name Skill Level value %d", m.skillLevel)); err != nil {
			return "", err
		}
	}

	if err := send("isready"); err != nil {
		return "", err
	}
	if _, err := waitFor("readyok"); err != nil {
		return "", err
	}

	if err := send("position fen " + fen); err != nil {
		return "", err
	}
	if err := send(fmt.Sprintf("go movetime %d", budget.Milliseconds())); err != nil {
		return "", err
	}

	line, err := waitFor("bestmove")
	if err != nil {
		return "", err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "(none)" {
		return "", nil
	}
	return fields[1], nil
}
