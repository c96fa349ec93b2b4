package chess

// Move is a single move described by its origin and destination squares,
// plus the promoted-to kind for pawn promotions. Castling is expressed as
// the two-square king move.
type Move struct {
	From      int8
	To        int8
	Promotion PieceKind
}

// UCI returns the move in coordinate notation (e.g. "e2e4", "e7e8q").
func (m Move) UCI() string {
	s := SquareName(m.From) + SquareName(m.To)
	if m.Promotion != NoPiece {
		s += map[PieceKind]string{Knight: "n", Bishop: "b", Rook: "r", Queen: "q"}[m.Promotion]
	}
	return s
}

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	bishopRays    = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookRays      = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// squareAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) squareAttacked(sq int8, by Color) bool {
	file, rank := fileOf(sq), rankOf(sq)

	// Pawn attacks: a white pawn attacks diagonally upward, so look one
	// rank below the target for white attackers (and vice versa).
	pawnRank := rank - 1
	if by == Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if onBoard(file+df, pawnRank) && p.Board[square(file+df, pawnRank)] == makePiece(by, Pawn) {
			return true
		}
	}

	for _, off := range knightOffsets {
		f, r := file+off[0], rank+off[1]
		if onBoard(f, r) && p.Board[square(f, r)] == makePiece(by, Knight) {
			return true
		}
	}

	for _, off := range kingOffsets {
		f, r := file+off[0], rank+off[1]
		if onBoard(f, r) && p.Board[square(f, r)] == makePiece(by, King) {
			return true
		}
	}

	for _, ray := range bishopRays {
		for f, r := file+ray[0], rank+ray[1]; onBoard(f, r); f, r = f+ray[0], r+ray[1] {
			piece := p.Board[square(f, r)]
			if piece == 0 {
				continue
			}
			if piece.IsColor(by) && (piece.Kind() == Bishop || piece.Kind() == Queen) {
				return true
			}
			break
		}
	}

	for _, ray := range rookRays {
		for f, r := file+ray[0], rank+ray[1]; onBoard(f, r); f, r = f+ray[0], r+ray[1] {
			piece := p.Board[square(f, r)]
			if piece == 0 {
				continue
			}
			if piece.IsColor(by) && (piece.Kind() == Rook || piece.Kind() == Queen) {
				return true
			}
			break
		}
	}

	return false
}

// InCheck reports whether the given color's king is attacked.
func (p *Position) InCheck(c Color) bool {
	king := p.kingSquare(c)
	return king != noSquare && p.squareAttacked(king, c.Other())
}

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() []Move {
	var legal []Move
	for _, m := range p.pseudoLegalMoves() {
		next := p.Apply(m)
		if !next.InCheck(p.Turn) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p *Position) pseudoLegalMoves() []Move {
	var moves []Move
	us := p.Turn

	for sq := int8(0); sq < 64; sq++ {
		piece := p.Board[sq]
		if !piece.IsColor(us) {
			continue
		}
		switch piece.Kind() {
		case Pawn:
			moves = append(moves, p.pawnMoves(sq)...)
		case Knight:
			moves = append(moves, p.stepMoves(sq, knightOffsets[:])...)
		case King:
			moves = append(moves, p.stepMoves(sq, kingOffsets[:])...)
			moves = append(moves, p.castlingMoves(sq)...)
		case Bishop:
			moves = append(moves, p.slideMoves(sq, bishopRays[:])...)
		case Rook:
			moves = append(moves, p.slideMoves(sq, rookRays[:])...)
		case Queen:
			moves = append(moves, p.slideMoves(sq, bishopRays[:])...)
			moves = append(moves, p.slideMoves(sq, rookRays[:])...)
		}
	}
	return moves
}

func (p *Position) stepMoves(from int8, offsets [][2]int) []Move {
	var moves []Move
	file, rank := fileOf(from), rankOf(from)
	for _, off := range offsets {
		f, r := file+off[0], rank+off[1]
		if !onBoard(f, r) {
			continue
		}
		to := square(f, r)
		if !p.Board[to].IsColor(p.Turn) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (p *Position) slideMoves(from int8, rays [][2]int) []Move {
	var moves []Move
	file, rank := fileOf(from), rankOf(from)
	for _, ray := range rays {
		for f, r := file+ray[0], rank+ray[1]; onBoard(f, r); f, r = f+ray[0], r+ray[1] {
			to := square(f, r)
			piece := p.Board[to]
			if piece.IsColor(p.Turn) {
				break
			}
			moves = append(moves, Move{From: from, To: to})
			if piece != 0 {
				break
			}
		}
	}
	return moves
}

func (p *Position) pawnMoves(from int8) []Move {
	var moves []Move
	file, rank := fileOf(from), rankOf(from)

	dir := 1
	startRank, promoRank := 1, 7
	if p.Turn == Black {
		dir = -1
		startRank, promoRank = 6, 0
	}

	appendMove := func(to int8) {
		if rankOf(to) == promoRank {
			for _, kind := range []PieceKind{Queen, Rook, Bishop, Knight} {
				moves = append(moves, Move{From: from, To: to, Promotion: kind})
			}
		} else {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	// Pushes
	if onBoard(file, rank+dir) {
		oneAhead := square(file, rank+dir)
		if p.Board[oneAhead] == 0 {
			appendMove(oneAhead)
			if rank == startRank {
				twoAhead := square(file, rank+2*dir)
				if p.Board[twoAhead] == 0 {
					moves = append(moves, Move{From: from, To: twoAhead})
				}
			}
		}
	}

	// Captures, including en passant
	for _, df := range []int{-1, 1} {
		f, r := file+df, rank+dir
		if !onBoard(f, r) {
			continue
		}
		to := square(f, r)
		if p.Board[to].IsColor(p.Turn.Other()) || to == p.EnPassant {
			appendMove(to)
		}
	}

	return moves
}

func (p *Position) castlingMoves(from int8) []Move {
	var moves []Move
	us := p.Turn

	rank := 0
	kingBit, queenBit := castleWhiteKing, castleWhiteQueen
	if us == Black {
		rank = 7
		kingBit, queenBit = castleBlackKing, castleBlackQueen
	}

	if from != square(4, rank) || p.InCheck(us) {
		return nil
	}

	// Kingside: f and g files empty, neither attacked, rook on h.
	if p.Castling&kingBit != 0 &&
		p.Board[square(5, rank)] == 0 && p.Board[square(6, rank)] == 0 &&
		p.Board[square(7, rank)] == makePiece(us, Rook) &&
		!p.squareAttacked(square(5, rank), us.Other()) &&
		!p.squareAttacked(square(6, rank), us.Other()) {
		moves = append(moves, Move{From: from, To: square(6, rank)})
	}

	// Queenside: b, c and d files empty; c and d not attacked; rook on a.
	if p.Castling&queenBit != 0 &&
		p.Board[square(1, rank)] == 0 && p.Board[square(2, rank)] == 0 && p.Board[square(3, rank)] == 0 &&
		p.Board[square(0, rank)] == makePiece(us, Rook) &&
		!p.squareAttacked(square(2, rank), us.Other()) &&
		!p.squareAttacked(square(3, rank), us.Other()) {
		moves = append(moves, Move{From: from, To: square(2, rank)})
	}

	return moves
}

// Apply plays a move and returns the resulting position. The receiver is
// never mutated. The move is assumed to be legal (or at least
// pseudo-legal when used for legality filtering).
func (p *Position) Apply(m Move) *Position {
	next := p.clone()
	piece := next.Board[m.From]
	captured := next.Board[m.To] != 0

	// En passant capture removes the pawn behind the target square
	if piece.Kind() == Pawn && m.To == next.EnPassant && next.Board[m.To] == 0 {
		capturedSq := square(fileOf(m.To), rankOf(m.From))
		next.Board[capturedSq] = 0
		captured = true
	}

	next.Board[m.To] = piece
	next.Board[m.From] = 0

	// Castling moves the rook alongside the king
	if piece.Kind() == King && abs(fileOf(m.To)-fileOf(m.From)) == 2 {
		rank := rankOf(m.From)
		if fileOf(m.To) == 6 { // kingside
			next.Board[square(5, rank)] = next.Board[square(7, rank)]
			next.Board[square(7, rank)] = 0
		} else { // queenside
			next.Board[square(3, rank)] = next.Board[square(0, rank)]
			next.Board[square(0, rank)] = 0
		}
	}

	if m.Promotion != NoPiece {
		next.Board[m.To] = makePiece(p.Turn, m.Promotion)
	}

	// Castling rights lapse when the king or a rook moves, or a rook is
	// captured on its home square.
	for _, sq := range []int8{m.From, m.To} {
		switch sq {
		case square(4, 0):
			next.Castling &^= castleWhiteKing | castleWhiteQueen
		case square(7, 0):
			next.Castling &^= castleWhiteKing
		case square(0, 0):
			next.Castling &^= castleWhiteQueen
		case square(4, 7):
			next.Castling &^= castleBlackKing | castleBlackQueen
		case square(7, 7):
			next.Castling &^= castleBlackKing
		case square(0, 7):
			next.Castling &^= castleBlackQueen
		}
	}

	// A double pawn push opens an en passant target for one move
	next.EnPassant = noSquare
	if piece.Kind() == Pawn && abs(rankOf(m.To)-rankOf(m.From)) == 2 {
		next.EnPassant = square(fileOf(m.From), (rankOf(m.From)+rankOf(m.To))/2)
	}

	if piece.Kind() == Pawn || captured {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if p.Turn == Black {
		next.FullmoveNumber++
	}
	next.Turn = p.Turn.Other()

	return next
}

// InsufficientMaterial reports whether neither side can possibly deliver
// checkmate: bare kings, king + single minor piece, or king + bishop
// versus king + bishop with both bishops on the same square color.
func (p *Position) InsufficientMaterial() bool {
	var minors []int8
	for sq := int8(0); sq < 64; sq++ {
		switch p.Board[sq].Kind() {
		case NoPiece, King:
		case Bishop, Knight:
			minors = append(minors, sq)
		default:
			return false
		}
	}

	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b := p.Board[minors[0]], p.Board[minors[1]]
		if a.Kind() == Bishop && b.Kind() == Bishop && a.PieceColor() != b.PieceColor() {
			return squareShade(minors[0]) == squareShade(minors[1])
		}
	}
	return false
}

func squareShade(sq int8) int {
	return (fileOf(sq) + rankOf(sq)) % 2
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
