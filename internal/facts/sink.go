package facts

// Sink receives the fact streams of one run. Dimension rows arrive once,
// fact rows arrive in per-turn batches. Implementations are not required
// to be safe for concurrent use.
type Sink interface {
	MapPoints(rows []MapPointRow) error
	Items(rows []ItemRow) error
	Robots(rows []RobotRow) error
	Steps(rows []StepRow) error
	Memory(rows []MemoryRow) error
	MapStates(rows []MapStateRow) error
	Close() error
}

// Recorder is an in-memory Sink, used by tests and the live viewer.
type Recorder struct {
	MapPointRows []MapPointRow
	ItemRows     []ItemRow
	RobotRows    []RobotRow
	StepRows     []StepRow
	MemoryRows   []MemoryRow
	MapStateRows []MapStateRow
	Closed       bool

	// KeepMapStates controls whether ground-truth rows are retained.
	// They dominate the volume of a run.
	KeepMapStates bool
}

// NewRecorder returns a Recorder that keeps every stream.
func NewRecorder() *Recorder {
	return &Recorder{KeepMapStates: true}
}

func (r *Recorder) MapPoints(rows []MapPointRow) error {
	r.MapPointRows = append(r.MapPointRows, rows...)
	return nil
}

func (r *Recorder) Items(rows []ItemRow) error {
	r.ItemRows = append(r.ItemRows, rows...)
	return nil
}

func (r *Recorder) Robots(rows []RobotRow) error {
	r.RobotRows = append(r.RobotRows, rows...)
	return nil
}

func (r *Recorder) Steps(rows []StepRow) error {
	r.StepRows = append(r.StepRows, rows...)
	return nil
}

func (r *Recorder) Memory(rows []MemoryRow) error {
	r.MemoryRows = append(r.MemoryRows, rows...)
	return nil
}

func (r *Recorder) MapStates(rows []MapStateRow) error {
	if r.KeepMapStates {
		r.MapStateRows = append(r.MapStateRows, rows...)
	}
	return nil
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) MapPoints([]MapPointRow) error { return nil }
func (discard) Items([]ItemRow) error         { return nil }
func (discard) Robots([]RobotRow) error       { return nil }
func (discard) Steps([]StepRow) error         { return nil }
func (discard) Memory([]MemoryRow) error      { return nil }
func (discard) MapStates([]MapStateRow) error { return nil }
func (discard) Close() error                  { return nil }
