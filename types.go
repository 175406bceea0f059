package goshape

// Representation selects how the record/encoder binding realizes an object shape.
type Representation int

const (
	OpenMap     Representation = iota // Properties may be partially present; extra keys allowed.
	FixedRecord                       // Every declared property always holds a concrete value.
)

// String returns the wire name of the representation.
func (r Representation) String() string {
	switch r {
	case FixedRecord:
		return "fixed-record"
	default:
		return "open-map"
	}
}

// ParseRepresentation accepts "fixed-record"/"record"/"struct" and "open-map"/"map"/"" names.
func ParseRepresentation(s string) (Representation, bool) {
	switch s {
	case "fixed-record", "record", "struct":
		return FixedRecord, true
	case "open-map", "map", "":
		return OpenMap, true
	default:
		return OpenMap, false
	}
}
