package model

// AllocationKind tells whether a park value was taken as-is or computed.
type AllocationKind int

const (
	// Fixed values come from the park capacity (offline, uncontrollable or guard fallback).
	Fixed AllocationKind = iota
	// Dynamic values result from the proportional distribution of remaining energy.
	Dynamic
)

// String returns a human-readable representation of the allocation kind.
func (k AllocationKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name in JSON and YAML exports.
func (k AllocationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AllocationResult is the setpoint computed for one park.
type AllocationResult struct {
	Park    string         `json:"park" yaml:"park"`
	Kind    AllocationKind `json:"kind" yaml:"kind"`
	ValueMW float64        `json:"value_mw" yaml:"value_mw"`
}
