package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mcoot/chessroom-go/internal/api/response"
	"github.com/mcoot/chessroom-go/internal/chess"
)

// Output formats command results for the terminal
type Output struct {
	format string
}

// NewOutput creates an Output for the given format ("text" or "json")
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print renders a result value in the configured format
func (o *Output) Print(v any) {
	if o.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(v)
		return
	}

	switch val := v.(type) {
	case *response.Room:
		o.printRoom(val)
	case *response.MoveResult:
		fmt.Printf("Recorded: %s\n", val.Move)
		o.printRoom(val.Room)
	case *response.JoinResult:
		if val.Spectator {
			fmt.Println("Both seats are taken; you are spectating.")
		} else {
			fmt.Printf("You are seated as %s.\n", val.Seat)
		}
	case *response.Health:
		fmt.Printf("Server status: %s\n", val.Status)
	default:
		fmt.Printf("%+v\n", v)
	}
}

// PrintMessage prints a plain message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"message": msg})
		return
	}
	fmt.Println(msg)
}

func (o *Output) printRoom(room *response.Room) {
	fmt.Printf("Room %s [%s]\n", room.Code, room.Status)
	fmt.Println(renderBoard(room.Position))
	if room.Status == "ended" {
		fmt.Printf("Result: %s\n", strings.ReplaceAll(room.Outcome, "_", " "))
	} else {
		fmt.Printf("Turn: %s\n", room.Turn)
	}
	if len(room.Moves) > 0 {
		fmt.Printf("Moves: %s\n", strings.Join(room.Moves, " "))
	}
	for seat, participant := range room.Seats {
		fmt.Printf("  %s: %s\n", seat, participant)
	}
}

// renderBoard draws the position as an ASCII diagram, white at the bottom.
func renderBoard(fen string) string {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return fen
	}

	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			piece := pos.Board[rank*8+file]
			sb.WriteByte(' ')
			sb.WriteByte(pieceGlyph(piece))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h")
	return sb.String()
}

func pieceGlyph(p chess.Piece) byte {
	if p == 0 {
		return '.'
	}
	letters := map[chess.PieceKind]byte{
		chess.Pawn: 'p', chess.Knight: 'n', chess.Bishop: 'b',
		chess.Rook: 'r', chess.Queen: 'q', chess.King: 'k',
	}
	glyph := letters[p.Kind()]
	if p.PieceColor() == chess.White {
		glyph -= 'a' - 'A'
	}
	return glyph
}
