package trigger

import "sync"

// Button is an in-memory Control. Press invokes every registered handler.
type Button struct {
	mu       sync.Mutex
	handlers []func()
}

func (b *Button) OnActivate(fn func()) {
	b.mu.Lock()
	b.handlers = append(b.handlers, fn)
	b.mu.Unlock()
}

// Press activates the button.
func (b *Button) Press() {
	b.mu.Lock()
	hs := make([]func(), len(b.handlers))
	copy(hs, b.handlers)
	b.mu.Unlock()

	for _, fn := range hs {
		fn()
	}
}

// Image is an in-memory Surface, safe for concurrent readers.
type Image struct {
	mu   sync.RWMutex
	ref  string
	sets int
}

// NewImage returns an Image initially showing ref.
func NewImage(ref string) *Image {
	return &Image{ref: ref}
}

func (i *Image) SetImage(ref string) {
	i.mu.Lock()
	i.ref = ref
	i.sets++
	i.mu.Unlock()
}

// Ref returns the displayed image reference.
func (i *Image) Ref() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.ref
}

// Sets counts SetImage calls.
func (i *Image) Sets() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.sets
}

// Overlay is an in-memory Indicator, safe for concurrent readers.
type Overlay struct {
	mu      sync.RWMutex
	visible bool
	shows   int
	hides   int
}

func (o *Overlay) Show() {
	o.mu.Lock()
	o.visible = true
	o.shows++
	o.mu.Unlock()
}

func (o *Overlay) Hide() {
	o.mu.Lock()
	o.visible = false
	o.hides++
	o.mu.Unlock()
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.visible
}

// Counts returns how often the overlay was shown and hidden.
func (o *Overlay) Counts() (shows, hides int) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.shows, o.hides
}

// Page bundles one in-memory element of each kind under the given ids.
type Page struct {
	Button  *Button
	Image   *Image
	Overlay *Overlay
}

// NewPage creates a page whose image starts on placeholder.
func NewPage(placeholder string) *Page {
	return &Page{
		Button:  &Button{},
		Image:   NewImage(placeholder),
		Overlay: &Overlay{},
	}
}

// Elements exposes the page as a Registry.
func (p *Page) Elements(ids IDs) Elements {
	return Elements{
		ids.Control:   p.Button,
		ids.Surface:   p.Image,
		ids.Indicator: p.Overlay,
	}
}
