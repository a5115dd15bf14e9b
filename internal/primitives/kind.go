package primitives

import "fmt"

// ComponentKind is the closed set of component variants.
type ComponentKind string

const (
	KindComponent ComponentKind = "component"
	KindRegion    ComponentKind = "region"
	KindCortical  ComponentKind = "cortical"
)

// Valid reports whether k is one of the known variants.
func (k ComponentKind) Valid() bool {
	switch k {
	case KindComponent, KindRegion, KindCortical:
		return true
	}
	return false
}

// AreaType classifies cortical areas.
type AreaType string

const (
	AreaMotor       AreaType = "motor"
	AreaSensory     AreaType = "sensory"
	AreaAssociation AreaType = "association"
)

// DefaultLayers is the layer count of a cortical area when none is given.
const DefaultLayers = 6

// ParseAreaType maps a string to an AreaType.
func ParseAreaType(s string) (AreaType, error) {
	a := AreaType(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown area type %q (want motor, sensory or association)", s)
	}
	return a, nil
}

func (a AreaType) Valid() bool {
	switch a {
	case AreaMotor, AreaSensory, AreaAssociation:
		return true
	}
	return false
}
