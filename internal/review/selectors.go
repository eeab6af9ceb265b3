package review

import (
	"fmt"

	"github.com/billedapp/billflow/internal/domain/entity"
)

// Dashboard element selectors and the two card background colors.
const (
	detailPanelSelector  = ".dashboard-right-container div"
	navbarSelector       = ".vertical-navbar"
	eyeIconSelector      = "#icon-eye-d"
	acceptButtonSelector = "#btn-accept-bill"
	refuseButtonSelector = "#btn-refuse-bill"
	commentFieldSelector = "#commentary2"
	adminModalSelector   = "#modaleFileAdmin1"

	defaultCardBackground  = "#0D5AE5"
	selectedCardBackground = "#2A2B35"
)

// statusIndexes numbers the dashboard buckets top to bottom.
var statusIndexes = map[entity.Status]int{
	entity.StatusPending:  1,
	entity.StatusAccepted: 2,
	entity.StatusRefused:  3,
}

func cardSelector(billID string) string {
	return "#open-bill" + billID
}

func arrowSelector(status entity.Status) string {
	return fmt.Sprintf("#arrow-icon%d", statusIndexes[status])
}

func containerSelector(status entity.Status) string {
	return fmt.Sprintf("#status-bills-container%d", statusIndexes[status])
}
