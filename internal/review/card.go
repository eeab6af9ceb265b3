package review

import (
	"fmt"
	"strings"

	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/format"
)

// SplitName derives the submitter's display name from the email local-part.
// A "." separates first and last name; without one, the whole local-part is
// the last name and the first name stays empty. This is a display
// convention, not identity resolution.
func SplitName(email string) (firstName, lastName string) {
	localPart := strings.Split(email, "@")[0]
	if strings.Contains(localPart, ".") {
		parts := strings.SplitN(localPart, ".", 2)
		return parts[0], parts[1]
	}
	return "", localPart
}

// Card builds the dashboard card markup for one bill.
func Card(bill entity.Bill) string {
	firstName, lastName := SplitName(bill.Email)

	date := bill.Date
	if formatted, err := format.FormatDate(bill.Date); err == nil {
		date = formatted
	}

	return fmt.Sprintf(`
    <div class='bill-card' id='open-bill%s' data-testid='open-bill%s'>
      <div class='bill-card-name-container'>
        <div class='bill-card-name'> %s %s </div>
        <span class='bill-card-grey'> ... </span>
      </div>
      <div class='name-price-container'>
        <span> %s </span>
        <span> %g € </span>
      </div>
      <div class='date-type-container'>
        <span> %s </span>
        <span> %s </span>
      </div>
    </div>
  `, bill.ID, bill.ID, firstName, lastName, bill.Name, bill.Amount, date, bill.Type)
}

// Cards concatenates the card markup for a bucket, empty for no bills.
func Cards(bills []entity.Bill) string {
	if len(bills) == 0 {
		return ""
	}

	var b strings.Builder
	for _, bill := range bills {
		b.WriteString(Card(bill))
	}
	return b.String()
}

// bigBilledIconHTML restores the dashboard's idle right panel.
const bigBilledIconHTML = `
        <div id="big-billed-icon" data-testid="big-billed-icon"></div>
      `

// DetailForm builds the review form markup for the selected bill.
func DetailForm(bill entity.Bill) string {
	date := bill.Date
	if formatted, err := format.FormatDate(bill.Date); err == nil {
		date = formatted
	}

	return fmt.Sprintf(`
    <div class="dashboard-form" data-testid="dashboard-form">
      <div class="dashboard-form-row">
        <span> Type : %s </span>
        <span> Nom : %s </span>
      </div>
      <div class="dashboard-form-row">
        <span> Date : %s </span>
        <span> Montant : %g € </span>
      </div>
      <div class="dashboard-form-row">
        <span> Commentaire : %s </span>
        <div id="icon-eye-d" data-testid="icon-eye-d" data-bill-url="%s"></div>
      </div>
      <textarea id="commentary2" data-testid="commentary2"></textarea>
      <div class="dashboard-form-actions">
        <button id="btn-accept-bill" data-testid="btn-accept-bill-d"> Accepter </button>
        <button id="btn-refuse-bill" data-testid="btn-refuse-bill-d"> Refuser </button>
      </div>
    </div>
  `, bill.Type, bill.Name, date, bill.Amount, bill.CommentaryEmployee, bill.FileURL)
}
