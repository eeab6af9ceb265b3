// Package rendertest provides a recording Renderer for workflow and preview
// tests.
package rendertest

import "sync"

// Recorder implements render.Renderer and records every mutation so tests
// can assert on the exact sequence of DOM operations.
type Recorder struct {
	mu sync.Mutex

	// Widths maps selectors to the width Width() reports; unknown
	// selectors report DefaultWidth.
	Widths       map[string]int
	DefaultWidth int

	// Values maps selectors to the form value Value() reports.
	Values map[string]string

	HTML     map[string]string   // last SetHTML per selector
	Styles   map[string]string   // last SetStyle per selector, "prop:value"
	Shown    []string            // ShowModal calls in order
	Handlers map[string]func()   // active click handlers
	OnCount  map[string]int      // OnClick invocations per selector
	OffCount map[string]int      // OffClick invocations per selector
}

// New creates an empty recorder with a 500px default width.
func New() *Recorder {
	return &Recorder{
		Widths:       make(map[string]int),
		DefaultWidth: 500,
		Values:       make(map[string]string),
		HTML:         make(map[string]string),
		Styles:       make(map[string]string),
		Handlers:     make(map[string]func()),
		OnCount:      make(map[string]int),
		OffCount:     make(map[string]int),
	}
}

func (r *Recorder) Width(selector string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.Widths[selector]; ok {
		return w
	}
	return r.DefaultWidth
}

func (r *Recorder) Value(selector string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Values[selector]
}

func (r *Recorder) SetHTML(selector, html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.HTML[selector] = html
}

func (r *Recorder) SetStyle(selector, property, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Styles[selector] = property + ":" + value
}

func (r *Recorder) ShowModal(selector string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Shown = append(r.Shown, selector)
}

func (r *Recorder) OnClick(selector string, handler func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Handlers[selector] = handler
	r.OnCount[selector]++
}

func (r *Recorder) OffClick(selector string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Handlers, selector)
	r.OffCount[selector]++
}

// Click simulates a user click on the selected element.
func (r *Recorder) Click(selector string) bool {
	r.mu.Lock()
	handler, ok := r.Handlers[selector]
	r.mu.Unlock()
	if ok {
		handler()
	}
	return ok
}
