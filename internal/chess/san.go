package chess

import (
	"errors"
	"regexp"
	"strings"
)

// Errors distinguishing "could not read a move" from "read a move that
// is not legal here". Callers map these to their own error taxonomy.
var (
	ErrNotation = errors.New("unrecognizable or ambiguous move notation")
	ErrIllegal  = errors.New("move is not legal in this position")
)

var (
	sanPattern = regexp.MustCompile(`^([KQRBN])?([a-h])?([1-8])?(x)?([a-h][1-8])(?:=?([QRBN]))?$`)
	uciPattern = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([qrbn])?$`)
)

var promotionKinds = map[string]PieceKind{
	"Q": Queen, "R": Rook, "B": Bishop, "N": Knight,
	"q": Queen, "r": Rook, "b": Bishop, "n": Knight,
}

// ParseMove resolves a move token against the position's legal moves.
// Accepted forms are standard algebraic notation ("Nf3", "exd5", "O-O",
// "e8=Q") and coordinate notation ("e2e4", "e7e8q"). Check and mate
// suffixes are ignored. A token matching no syntactic form, or matching
// more than one legal move, fails with ErrNotation; a well-formed token
// matching no legal move fails with ErrIllegal.
func (p *Position) ParseMove(token string) (Move, error) {
	token = stripSuffixes(token)
	if token == "" {
		return Move{}, ErrNotation
	}

	legal := p.LegalMoves()

	// Castling
	if token == "O-O" || token == "O-O-O" {
		toFile := 6
		if token == "O-O-O" {
			toFile = 2
		}
		for _, m := range legal {
			if p.Board[m.From].Kind() == King && abs(fileOf(m.To)-fileOf(m.From)) == 2 && fileOf(m.To) == toFile {
				return m, nil
			}
		}
		return Move{}, ErrIllegal
	}

	// Coordinate notation
	if groups := uciPattern.FindStringSubmatch(token); groups != nil {
		from, _ := parseSquare(groups[1])
		to, _ := parseSquare(groups[2])
		promo := promotionKinds[groups[3]]
		for _, m := range legal {
			if m.From == from && m.To == to && m.Promotion == promo {
				return m, nil
			}
		}
		return Move{}, ErrIllegal
	}

	// Standard algebraic notation
	groups := sanPattern.FindStringSubmatch(token)
	if groups == nil {
		return Move{}, ErrNotation
	}

	kind := Pawn
	if groups[1] != "" {
		kind = PieceKind(map[string]PieceKind{"K": King, "Q": Queen, "R": Rook, "B": Bishop, "N": Knight}[groups[1]])
	}
	to, _ := parseSquare(groups[5])
	promo := promotionKinds[groups[6]]
	isCapture := groups[4] == "x"

	var candidates []Move
	for _, m := range legal {
		if p.Board[m.From].Kind() != kind || m.To != to || m.Promotion != promo {
			continue
		}
		if groups[2] != "" && fileOf(m.From) != int(groups[2][0]-'a') {
			continue
		}
		if groups[3] != "" && rankOf(m.From) != int(groups[3][0]-'1') {
			continue
		}
		if isCapture && !p.isCapture(m) {
			continue
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return Move{}, ErrIllegal
	default:
		return Move{}, ErrNotation
	}
}

func (p *Position) isCapture(m Move) bool {
	if p.Board[m.To] != 0 {
		return true
	}
	return p.Board[m.From].Kind() == Pawn && m.To == p.EnPassant
}

// SAN renders a legal move in canonical standard algebraic notation,
// including disambiguation and check/mate suffixes.
func (p *Position) SAN(m Move) string {
	var sb strings.Builder
	piece := p.Board[m.From]

	if piece.Kind() == King && abs(fileOf(m.To)-fileOf(m.From)) == 2 {
		if fileOf(m.To) == 6 {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		capture := p.isCapture(m)

		if piece.Kind() == Pawn {
			if capture {
				sb.WriteByte(byte('a' + fileOf(m.From)))
				sb.WriteByte('x')
			}
		} else {
			sb.WriteString(piece.Kind().letter())
			sb.WriteString(p.disambiguation(m))
			if capture {
				sb.WriteByte('x')
			}
		}

		sb.WriteString(SquareName(m.To))

		if m.Promotion != NoPiece {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion.letter())
		}
	}

	next := p.Apply(m)
	if next.InCheck(next.Turn) {
		if len(next.LegalMoves()) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// disambiguation returns the minimal origin qualifier needed when more
// than one piece of the same kind can reach the destination.
func (p *Position) disambiguation(m Move) string {
	kind := p.Board[m.From].Kind()

	var sameFile, sameRank, others bool
	for _, other := range p.LegalMoves() {
		if other.From == m.From || other.To != m.To || p.Board[other.From].Kind() != kind {
			continue
		}
		others = true
		if fileOf(other.From) == fileOf(m.From) {
			sameFile = true
		}
		if rankOf(other.From) == rankOf(m.From) {
			sameRank = true
		}
	}

	switch {
	case !others:
		return ""
	case !sameFile:
		return string(byte('a' + fileOf(m.From)))
	case !sameRank:
		return string(byte('1' + rankOf(m.From)))
	default:
		return SquareName(m.From)
	}
}

func stripSuffixes(token string) string {
	token = strings.TrimSpace(token)
	token = strings.TrimSuffix(token, " e.p.")
	return strings.TrimRight(token, "+#!?")
}
