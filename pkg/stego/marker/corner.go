package marker

// Corner identifies one of the four frame corners. The numeric value is
// the 2-bit corner code embedded in the marker pattern plane.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists all four corners in embedding order.
var Corners = []Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// Code returns the 2-bit corner code.
func (c Corner) Code() uint8 {
	return uint8(c)
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Label returns the two-letter abbreviation drawn into the marker face.
func (c Corner) Label() string {
	switch c {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomLeft:
		return "BL"
	case BottomRight:
		return "BR"
	default:
		return "??"
	}
}
