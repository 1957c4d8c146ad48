package trigger

import "fmt"

// Control is the element the user activates.
type Control interface {
	OnActivate(fn func())
}

// Surface displays an image reference.
type Surface interface {
	SetImage(ref string)
}

// Indicator is the loading overlay.
type Indicator interface {
	Show()
	Hide()
}

// Registry looks up host elements by id.
type Registry interface {
	Lookup(id string) (any, bool)
}

// Elements is a map-backed Registry.
type Elements map[string]any

func (e Elements) Lookup(id string) (any, bool) {
	v, ok := e[id]
	return v, ok
}

// IDs names the three elements the trigger is attached to.
type IDs struct {
	Control   string
	Surface   string
	Indicator string
}

// DefaultIDs returns the element ids used by the bundled hosts.
func DefaultIDs() IDs {
	return IDs{
		Control:   "generate-btn",
		Surface:   "output-image",
		Indicator: "loading-overlay",
	}
}

// Handles is the resolved set of elements.
type Handles struct {
	Control   Control
	Surface   Surface
	Indicator Indicator
}

// HandleError reports an element that is absent or of the wrong kind.
type HandleError struct {
	ID     string
	Reason string
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("element %q %s", e.ID, e.Reason)
}

// Resolve looks up the three elements once. It fails on the first element
// that is missing or does not implement the required interface.
func Resolve(r Registry, ids IDs) (Handles, error) {
	var h Handles

	raw, err := lookup(r, ids.Control)
	if err != nil {
		return Handles{}, err
	}
	c, ok := raw.(Control)
	if !ok {
		return Handles{}, &HandleError{ID: ids.Control, Reason: "is not an activatable control"}
	}
	h.Control = c

	if raw, err = lookup(r, ids.Surface); err != nil {
		return Handles{}, err
	}
	s, ok := raw.(Surface)
	if !ok {
		return Handles{}, &HandleError{ID: ids.Surface, Reason: "cannot display an image"}
	}
	h.Surface = s

	if raw, err = lookup(r, ids.Indicator); err != nil {
		return Handles{}, err
	}
	ind, ok := raw.(Indicator)
	if !ok {
		return Handles{}, &HandleError{ID: ids.Indicator, Reason: "is not a toggleable indicator"}
	}
	h.Indicator = ind

	return h, nil
}

func lookup(r Registry, id string) (any, error) {
	v, ok := r.Lookup(id)
	if !ok || v == nil {
		return nil, &HandleError{ID: id, Reason: "not found"}
	}
	return v, nil
}
