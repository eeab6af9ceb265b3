// Package preview fills the shared supporting-document modal for both the
// employee and admin views.
package preview

import (
	"fmt"
	"math"

	"github.com/billedapp/billflow/internal/render"
)

// Width factors used by the two views.
const (
	EmployeeFactor = 0.5
	AdminFactor    = 0.8
)

const missingDocumentHTML = `<div style='text-align: center;' class="bill-proof-container">
  <p>Aucun justificatif disponible ou format de fichier non supporté</p>
</div>`

const documentHTMLFormat = `<div style='text-align: center;' class="bill-proof-container">
  <img width=%d src=%s alt="Bill" onerror="this.style.display='none'; this.nextElementSibling.style.display='block';" />
  <p style="display: none;">Impossible d'afficher le justificatif</p>
</div>`

// Preview populates a modal body with a bill's supporting document.
type Preview struct {
	renderer render.Renderer
	factor   float64
}

// New creates a preview with the given width factor (EmployeeFactor or
// AdminFactor depending on the calling view).
func New(r render.Renderer, factor float64) *Preview {
	return &Preview{renderer: r, factor: factor}
}

// Render fills the modal body with the document image sized proportionally
// to the modal width, or with a fallback message when no document URL is
// available, then reveals the modal. Repeated invocation is safe.
func (p *Preview) Render(modalSelector, billURL string) {
	body := modalSelector + " .modal-body"

	if billURL == "" || billURL == "null" {
		p.renderer.SetHTML(body, missingDocumentHTML)
	} else {
		imgWidth := int(math.Floor(float64(p.renderer.Width(modalSelector)) * p.factor))
		p.renderer.SetHTML(body, fmt.Sprintf(documentHTMLFormat, imgWidth, billURL))
	}

	p.renderer.ShowModal(modalSelector)
}
