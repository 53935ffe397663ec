// Package frame holds the per-viewer redraw and close flags.
//
// One Flags value is owned by a viewer and shared by pointer with the
// input router and the geometry registry. All access happens on the
// render thread, so there is no locking.
package frame

// Flags tracks whether the next loop iteration must redraw and whether the
// window has been asked to close.
type Flags struct {
	redraw bool
	close  bool
}

// RequestRedraw marks the current frame stale.
func (f *Flags) RequestRedraw() { f.redraw = true }

// RedrawRequested reports whether a redraw is pending.
func (f *Flags) RedrawRequested() bool { return f.redraw }

// ClearRedraw is called by the render loop after a frame is presented.
func (f *Flags) ClearRedraw() { f.redraw = false }

// RequestClose asks the render loop to terminate. It cannot be undone.
func (f *Flags) RequestClose() { f.close = true }

// CloseRequested reports whether the loop should stop.
func (f *Flags) CloseRequested() bool { return f.close }
