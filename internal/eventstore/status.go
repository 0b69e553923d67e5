package eventstore

// Status is the execution state of a unit within one iteration.
type Status int32

const (
	// Pending indicates the unit is waiting for its producers.
	Pending Status = iota
	// Running indicates a worker is executing the unit.
	Running
	// Done indicates the unit completed and published all its products.
	Done
	// Failed indicates the unit's handler returned an error.
	Failed
	// Skipped indicates the unit never ran because the iteration was aborted.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}
