package assemble

// State is a step of the assembly state machine.
type State int

const (
	StateLoading State = iota
	StateIndexed
	StateEntriesResolved
	StateProjected
	StateReported
	StateEmitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateIndexed:
		return "indexed"
	case StateEntriesResolved:
		return "entries-resolved"
	case StateProjected:
		return "projected"
	case StateReported:
		return "reported"
	case StateEmitted:
		return "emitted"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
