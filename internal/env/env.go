// Package env carries the environment handle bundle shared with every tool:
// opaque references to the document model, the view, the view controls and
// the host window. The manager never inspects these; it only hands them to
// tools, which re-fetch the bundle on demand rather than caching it.
package env

// Handles is the per-session environment bundle. Fields are opaque to the
// dispatch core; tools assert them to the concrete collaborator types the
// surrounding application provides.
type Handles struct {
	// Model is the document/data model being edited.
	Model any

	// View is the rendering/view subsystem.
	View any

	// Controls is the view's input-capture control surface.
	Controls any

	// Window is the host window.
	Window any
}

// IsZero reports whether no environment has been set.
func (h Handles) IsZero() bool {
	return h.Model == nil && h.View == nil && h.Controls == nil && h.Window == nil
}
