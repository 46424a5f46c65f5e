package events

// CellTapPayload carries the board index of a tapped cell
type CellTapPayload struct {
	Index int // 0..8 row-major
}
