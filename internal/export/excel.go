// Package export renders bill snapshots to Excel workbooks for accounting
// handoff.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/format"
)

const sheetName = "Notes de frais"

var headers = []string{"Employé", "Nom", "Type", "Date", "Montant (€)", "TVA", "Pct", "Statut", "Commentaire admin"}

// ExcelExporter builds one workbook per export request.
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates an Excel exporter.
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// Export renders the bills into a single-sheet workbook, one row per bill in
// input order, dates and statuses in their display forms. Rows whose date
// does not parse keep the raw value, same as the dashboard.
func (e *ExcelExporter) Export(bills []entity.Bill) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		e.setCell(f, cell, header)
	}

	for i, bill := range bills {
		date := bill.Date
		if formatted, err := format.FormatDate(bill.Date); err == nil {
			date = formatted
		}

		row := []interface{}{
			bill.Email,
			bill.Name,
			bill.Type,
			date,
			bill.Amount,
			bill.VAT,
			bill.PCT,
			format.FormatStatus(bill.Status),
			bill.CommentAdmin,
		}

		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			e.setCell(f, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	e.logger.Info("Exported bills workbook",
		zap.Int("bill_count", len(bills)))

	return buf, nil
}

func (e *ExcelExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
