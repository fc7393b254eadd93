package observable

// captureFrame records the source-property reads of one derivation
// evaluation.
type captureFrame struct {
	reads []string
	seen  map[string]bool
}

// record adds a source read, deduplicating repeats within the frame.
func (f *captureFrame) record(name string) {
	if f.seen[name] {
		return
	}
	f.seen[name] = true
	f.reads = append(f.reads, name)
}

// tracker is the store's capture context. Frames form a stack so a computed
// definition that triggers another evaluation captures into its own frame
// rather than a shared list.
type tracker struct {
	frames []*captureFrame
}

// begin pushes a fresh frame and returns it.
func (t *tracker) begin() *captureFrame {
	frame := &captureFrame{seen: make(map[string]bool)}
	t.frames = append(t.frames, frame)
	return frame
}

// end pops the current frame.
func (t *tracker) end() {
	if n := len(t.frames); n > 0 {
		t.frames = t.frames[:n-1]
	}
}

// record notes a source read in the active frame, if any.
func (t *tracker) record(name string) {
	if n := len(t.frames); n > 0 {
		t.frames[n-1].record(name)
	}
}

// active reports whether a capture is in progress.
func (t *tracker) active() bool {
	return len(t.frames) > 0
}
