package order

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExport(t *testing.T) {
	exporter := NewExcelExporter()

	o := &Order{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		BranchID:  uuid.New(),
		Status:    StatusDelivered,
		Total:     decimal.RequireFromString("38.00"),
		CreatedAt: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		Details: []OrderDetail{
			{Quantity: 2},
			{Quantity: 4},
		},
	}

	data, err := exporter.Export([]*Order{o})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Orders"}, f.GetSheetList())

	header, err := f.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Order ID", header)

	id, err := f.GetCellValue("Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, o.ID.String(), id)

	status, err := f.GetCellValue("Orders", "D2")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, status)

	items, err := f.GetCellValue("Orders", "E2")
	require.NoError(t, err)
	assert.Equal(t, "6", items)

	total, err := f.GetCellValue("Orders", "F2")
	require.NoError(t, err)
	assert.Equal(t, "38.00", total)
}

func TestExcelExportEmpty(t *testing.T) {
	data, err := NewExcelExporter().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
