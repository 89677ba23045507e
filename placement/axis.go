package placement

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis is one of the six signed unit axes, used as the forward axis of
// template objects.
type Axis int

const (
	PosX Axis = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

var axisNames = [...]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (a Axis) String() string {
	if a < PosX || a > NegZ {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Vec returns the unit vector of axis a.
func (a Axis) Vec() r3.Vec {
	switch a {
	case PosX:
		return r3.Vec{X: 1}
	case NegX:
		return r3.Vec{X: -1}
	case PosY:
		return r3.Vec{Y: 1}
	case NegY:
		return r3.Vec{Y: -1}
	case PosZ:
		return r3.Vec{Z: 1}
	case NegZ:
		return r3.Vec{Z: -1}
	}
	return r3.Vec{}
}

// ParseAxis reads an axis name like "+X", "-z" or "Y" (meaning "+Y").
func ParseAxis(s string) (Axis, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if len(name) == 1 {
		name = "+" + name
	}
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return PosX, fmt.Errorf("unknown axis %q", s)
}
