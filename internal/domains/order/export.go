package order

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Exporter renders orders into a downloadable spreadsheet.
type Exporter interface {
	Export(orders []*Order) ([]byte, error)
}

type excelExporter struct{}

func NewExcelExporter() Exporter {
	return &excelExporter{}
}

const exportSheet = "Orders"

func (e *excelExporter) Export(orders []*Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Order ID", "User ID", "Branch ID", "Status", "Items", "Total", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, o := range orders {
		items := 0
		for _, d := range o.Details {
			items += d.Quantity
		}

		values := []interface{}{
			o.ID.String(),
			o.UserID.String(),
			o.BranchID.String(),
			o.Status,
			items,
			o.Total.StringFixed(2),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write order row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}

	return buf.Bytes(), nil
}
