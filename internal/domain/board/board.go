package board

// Size is the fixed caro board dimension. Coordinates are zero-based,
// so valid indices run from 0 to Size-1 on both axes.
const Size = 15

// Coordinate is a point on the board.
type Coordinate struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Validate reports whether (x, y) lies on the board.
func Validate(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}
