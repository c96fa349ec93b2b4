package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialFEN is the standard chess starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Castling right bits
const (
	castleWhiteKing  uint8 = 1 << iota // white O-O
	castleWhiteQueen                   // white O-O-O
	castleBlackKing                    // black O-O
	castleBlackQueen                   // black O-O-O
)

const noSquare = -1

// Position is a full board state. Squares are indexed 0..63 with a1=0,
// b1=1, ..., h8=63 (file = sq%8, rank = sq/8).
type Position struct {
	Board          [64]Piece
	Turn           Color
	Castling       uint8
	EnPassant      int8 // capture target square, or noSquare
	HalfmoveClock  int
	FullmoveNumber int
}

func square(file, rank int) int8 {
	return int8(rank*8 + file)
}

func fileOf(sq int8) int { return int(sq) % 8 }
func rankOf(sq int8) int { return int(sq) / 8 }

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// SquareName returns the algebraic name ("e4") of a square index.
func SquareName(sq int8) string {
	return string([]byte{byte('a' + fileOf(sq)), byte('1' + rankOf(sq))})
}

func parseSquare(s string) (int8, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return noSquare, false
	}
	return square(int(s[0]-'a'), int(s[1]-'1')), true
}

// ParseFEN reconstructs a position from Forsyth-Edwards notation.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen must have 6 fields, got %d", len(fields))
	}

	p := &Position{EnPassant: noSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen board must have 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := piecesByFENLetter[ch]
			if !ok || file > 7 {
				return nil, fmt.Errorf("bad fen rank %q", rankStr)
			}
			p.Board[square(file, rank)] = piece
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("bad fen rank %q", rankStr)
		}
	}

	switch fields[1] {
	case "w":
		p.Turn = White
	case "b":
		p.Turn = Black
	default:
		return nil, fmt.Errorf("bad fen turn %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.Castling |= castleWhiteKing
			case 'Q':
				p.Castling |= castleWhiteQueen
			case 'k':
				p.Castling |= castleBlackKing
			case 'q':
				p.Castling |= castleBlackQueen
			default:
				return nil, fmt.Errorf("bad fen castling %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, ok := parseSquare(fields[3])
		if !ok {
			return nil, fmt.Errorf("bad fen en passant square %q", fields[3])
		}
		p.EnPassant = sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("bad fen halfmove clock %q", fields[4])
	}
	p.HalfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("bad fen fullmove number %q", fields[5])
	}
	p.FullmoveNumber = fullmove

	return p, nil
}

// FEN serializes the position to Forsyth-Edwards notation.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[square(file, rank)]
			if piece == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(fenPieceLetters[piece])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.Castling == 0 {
		sb.WriteByte('-')
	} else {
		if p.Castling&castleWhiteKing != 0 {
			sb.WriteByte('K')
		}
		if p.Castling&castleWhiteQueen != 0 {
			sb.WriteByte('Q')
		}
		if p.Castling&castleBlackKing != 0 {
			sb.WriteByte('k')
		}
		if p.Castling&castleBlackQueen != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EnPassant == noSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(SquareName(p.EnPassant))
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

// RepetitionKey returns the part of the position relevant for threefold
// repetition: piece placement, side to move, castling rights and en
// passant target, excluding the move clocks.
func (p *Position) RepetitionKey() string {
	fen := p.FEN()
	fields := strings.Fields(fen)
	return strings.Join(fields[:4], " ")
}

func (p *Position) kingSquare(c Color) int8 {
	target := makePiece(c, King)
	for sq := int8(0); sq < 64; sq++ {
		if p.Board[sq] == target {
			return sq
		}
	}
	return noSquare
}

func (p *Position) clone() *Position {
	cp := *p
	return &cp
}
