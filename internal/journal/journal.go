package journal

// Journal is a nested undo log. Every state mutation performed during a call
// records a compensating closure; a failed call reverts its frame, which also
// unwinds any committed inner frames opened by reentrant calls, so the whole
// outermost call applies either all of its effects or none of them.
type Journal struct {
	undos []func()
}

// Frame marks the journal depth at the start of a call
type Frame int

// New creates an empty journal
func New() *Journal {
	return &Journal{}
}

// Begin opens a new frame and returns its marker
func (j *Journal) Begin() Frame {
	return Frame(len(j.undos))
}

// Record appends an undo closure to the current frame
func (j *Journal) Record(undo func()) {
	j.undos = append(j.undos, undo)
}

// Commit closes a frame. Undos recorded inside an inner frame are retained so
// an enclosing frame can still revert them; committing the outermost frame
// discards the log.
func (j *Journal) Commit(f Frame) {
	if f == 0 {
		j.undos = j.undos[:0]
	}
}

// Revert runs the undo closures recorded since the frame opened, newest first,
// and truncates the log back to the frame marker.
func (j *Journal) Revert(f Frame) {
	for i := len(j.undos) - 1; i >= int(f); i-- {
		j.undos[i]()
	}
	j.undos = j.undos[:f]
}

// Depth returns the number of recorded undos, used by tests and integrity checks
func (j *Journal) Depth() int {
	return len(j.undos)
}
