package core

import "fmt"

// Axis identifies one of the three coordinate axes
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}
