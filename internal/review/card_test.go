package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billedapp/billflow/internal/domain/entity"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		firstName string
		lastName  string
	}{
		{"dotted local part", "jean.dupont@test.fr", "jean", "dupont"},
		{"no dot", "admin@test.fr", "", "admin"},
		{"only first dot splits", "jean.pierre.dupont@test.fr", "jean", "pierre.dupont"},
		{"empty email", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.email)
			assert.Equal(t, tt.firstName, first)
			assert.Equal(t, tt.lastName, last)
		})
	}
}

func TestCard(t *testing.T) {
	html := Card(entity.Bill{
		ID:     "47qAXb6fIm2zOKkLzMro",
		Email:  "jean.dupont@test.fr",
		Name:   "Vol Paris Londres",
		Type:   "Transports",
		Amount: 348,
		Date:   "2004-04-04",
	})

	assert.Contains(t, html, "id='open-bill47qAXb6fIm2zOKkLzMro'")
	assert.Contains(t, html, "jean dupont")
	assert.Contains(t, html, "Vol Paris Londres")
	assert.Contains(t, html, "348 €")
	assert.Contains(t, html, "4 Avr. 04")
	assert.Contains(t, html, "Transports")
}

func TestCard_KeepsRawUnparsableDate(t *testing.T) {
	html := Card(entity.Bill{ID: "x", Email: "a@test.fr", Date: "2004-04-32"})

	assert.Contains(t, html, "2004-04-32")
}

func TestCards(t *testing.T) {
	assert.Equal(t, "", Cards(nil))
	assert.Equal(t, "", Cards([]entity.Bill{}))

	html := Cards([]entity.Bill{
		{ID: "1", Email: "a@test.fr"},
		{ID: "2", Email: "b@test.fr"},
	})
	assert.Contains(t, html, "open-bill1")
	assert.Contains(t, html, "open-bill2")
}

func TestDetailForm(t *testing.T) {
	html := DetailForm(entity.Bill{
		ID:                 "b1",
		Email:              "jean.dupont@test.fr",
		Name:               "Hotel Lyon",
		Type:               "Hôtel et logement",
		Amount:             120,
		Date:               "2003-03-03",
		CommentaryEmployee: "séminaire",
		FileURL:            "https://example.test/receipt.jpg",
	})

	assert.Contains(t, html, "Hotel Lyon")
	assert.Contains(t, html, "Hôtel et logement")
	assert.Contains(t, html, "3 Mar. 03")
	assert.Contains(t, html, "120 €")
	assert.Contains(t, html, "séminaire")
	assert.Contains(t, html, `data-bill-url="https://example.test/receipt.jpg"`)
	assert.Contains(t, html, `id="commentary2"`)
	assert.Contains(t, html, `id="btn-accept-bill"`)
	assert.Contains(t, html, `id="btn-refuse-bill"`)
}
