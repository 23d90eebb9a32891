package domain

// TransportMode selects how legs between destinations are routed.
type TransportMode string

const (
	ModeWalking TransportMode = "walking"
	ModeDriving TransportMode = "driving"
)

// Valid reports whether the mode is one the routing provider understands.
func (m TransportMode) Valid() bool {
	return m == ModeWalking || m == ModeDriving
}
