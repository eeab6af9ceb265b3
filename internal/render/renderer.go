// Package render defines the DOM mutation capability set the review core
// drives. The core treats it as opaque; concrete toolkits live outside.
package render

// Renderer is the capability set consumed by the review workflow and the
// document preview. Selectors follow the host toolkit's query syntax.
type Renderer interface {
	// Width returns the rendered width of the selected element in pixels.
	Width(selector string) int

	// Value returns the current value of the selected form field.
	Value(selector string) string

	// SetHTML replaces the inner HTML of the selected container.
	SetHTML(selector, html string)

	// SetStyle sets one inline style property on the selected element.
	SetStyle(selector, property, value string)

	// ShowModal reveals the selected modal. Safe to invoke repeatedly.
	ShowModal(selector string)

	// OnClick attaches a click handler to the selected element.
	OnClick(selector string, handler func())

	// OffClick detaches any click handler previously attached to the
	// selected element.
	OffClick(selector string)
}
