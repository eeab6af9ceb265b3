package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/domain/entity"
)

func TestExport(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	buf, err := exporter.Export([]entity.Bill{
		{
			Email:        "jean.dupont@test.fr",
			Name:         "Vol Paris Londres",
			Type:         "Transports",
			Amount:       348,
			VAT:          "70",
			PCT:          20,
			Date:         "2004-04-04",
			Status:       entity.StatusAccepted,
			CommentAdmin: "ok",
		},
		{
			Email:  "b@test.fr",
			Name:   "Hotel",
			Amount: 120,
			Date:   "not a date",
			Status: entity.StatusPending,
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0])

	assert.Equal(t, "jean.dupont@test.fr", rows[1][0])
	assert.Equal(t, "Vol Paris Londres", rows[1][1])
	assert.Equal(t, "4 Avr. 04", rows[1][3])
	assert.Equal(t, "348", rows[1][4])
	assert.Equal(t, "Accepté", rows[1][7])
	assert.Equal(t, "ok", rows[1][8])

	// Unparsable dates stay raw rather than dropping the row.
	assert.Equal(t, "not a date", rows[2][3])
	assert.Equal(t, "En attente", rows[2][7])
}

func TestExport_Empty(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	buf, err := exporter.Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, headers, rows[0])
}
