package chess

// Color identifies one of the two armies. White moves first.
type Color int8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is the kind of a piece irrespective of color
type PieceKind int8

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// letter returns the SAN letter for the kind (empty for pawns).
func (k PieceKind) letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// Piece is a colored piece on the board. Zero means an empty square;
// positive values are white pieces, negative values black.
type Piece int8

func makePiece(c Color, k PieceKind) Piece {
	if c == White {
		return Piece(k)
	}
	return -Piece(k)
}

// Kind returns the piece's kind, or NoPiece for an empty square.
func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

// PieceColor returns the piece's color. Only meaningful for non-empty pieces.
func (p Piece) PieceColor() Color {
	if p < 0 {
		return Black
	}
	return White
}

// IsColor reports whether the square holds a piece of the given color.
func (p Piece) IsColor(c Color) bool {
	return p != 0 && p.PieceColor() == c
}

var fenPieceLetters = map[Piece]byte{
	makePiece(White, Pawn): 'P', makePiece(White, Knight): 'N',
	makePiece(White, Bishop): 'B', makePiece(White, Rook): 'R',
	makePiece(White, Queen): 'Q', makePiece(White, King): 'K',
	makePiece(Black, Pawn): 'p', makePiece(Black, Knight): 'n',
	makePiece(Black, Bishop): 'b', makePiece(Black, Rook): 'r',
	makePiece(Black, Queen): 'q', makePiece(Black, King): 'k',
}

var piecesByFENLetter = func() map[byte]Piece {
	m := make(map[byte]Piece, len(fenPieceLetters))
	for p, b := range fenPieceLetters {
		m[b] = p
	}
	return m
}()
