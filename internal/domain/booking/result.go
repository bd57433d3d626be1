package booking

// Kind classifies the outcome of an allocation engine operation. Tests and
// diagnostics branch on Kind; the language model only ever sees Text.
type Kind string

const (
	// KindOK is a successful operation.
	KindOK Kind = "ok"
	// KindNotFound means the named equipment or booking does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalidSlot means the requested interval could not be parsed or
	// is not ordered start < end.
	KindInvalidSlot Kind = "invalid_slot"
	// KindNoUnits means every unit of the equipment is checked out.
	KindNoUnits Kind = "no_units"
	// KindConflict means an active booking overlaps the requested interval.
	KindConflict Kind = "conflict"
	// KindAlreadyFinal means the booking is already cancelled or returned.
	KindAlreadyFinal Kind = "already_final"
	// KindEmpty is a successful listing that matched nothing.
	KindEmpty Kind = "empty"
	// KindInternal is an unexpected failure, reported generically.
	KindInternal Kind = "internal_error"
)

// Result is the outcome of an allocation engine operation. Text is always a
// complete human-readable description suitable for relaying to the user
// verbatim; no operation ever surfaces a raw error.
type Result struct {
	Kind Kind
	Text string
}
