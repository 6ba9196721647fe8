package theme

import "sync"

// Stylesheet element ids for the highlight pair. Exactly one of the two is
// enabled after any controller operation.
const (
	StylesheetLight = "highlight-light"
	StylesheetDark  = "highlight-dark"
)

// Document is the rendered page state the controller mutates: the dark marker
// on the root element and the disabled flags of the highlight stylesheet pair.
type Document interface {
	SetDarkMarker(on bool)
	SetStylesheetDisabled(id string, disabled bool)
}

// DocumentState is the default thread-safe Document implementation backing
// server-side page rendering.
type DocumentState struct {
	mu       sync.RWMutex
	dark     bool
	disabled map[string]bool
}

// NewDocumentState creates a DocumentState in the default-theme configuration:
// no dark marker, light stylesheet enabled, dark stylesheet disabled.
func NewDocumentState() *DocumentState {
	return &DocumentState{
		disabled: map[string]bool{StylesheetLight: false, StylesheetDark: true},
	}
}

// SetDarkMarker adds or removes the dark marker on the root element.
func (d *DocumentState) SetDarkMarker(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dark = on
}

// SetStylesheetDisabled flips the disabled flag of a stylesheet by element id.
// Unknown ids are ignored.
func (d *DocumentState) SetStylesheetDisabled(id string, disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.disabled[id]; !ok {
		return
	}
	d.disabled[id] = disabled
}

// Snapshot returns a consistent copy of the document state for rendering.
func (d *DocumentState) Snapshot() DocumentSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DocumentSnapshot{
		DarkMarker:    d.dark,
		LightDisabled: d.disabled[StylesheetLight],
		DarkDisabled:  d.disabled[StylesheetDark],
	}
}

// DocumentSnapshot is a point-in-time view of the document state.
type DocumentSnapshot struct {
	DarkMarker    bool // dark marker class present on the root element
	LightDisabled bool // highlight-light stylesheet disabled flag
	DarkDisabled  bool // highlight-dark stylesheet disabled flag
}
