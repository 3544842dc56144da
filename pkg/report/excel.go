package report

import (
	"bytes"
	"fmt"

	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "02/01/2006"

// SalesWorkbook renders the sales history as an Excel workbook with one row
// per sale. Column order and headers match the report the business already
// circulates, so they stay in Spanish.
func SalesWorkbook(sales []entity.Sale) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ventas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Fecha", "Cliente", "Factura", "Monto"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, sale := range sales {
		row := i + 2
		setRow(f, sheet, row,
			sale.Date.Format(dateLayout),
			sale.CustomerName,
			sale.InvoiceID.String(),
			float64(sale.Amount)/100,
		)
	}

	f.SetColWidth(sheet, "A", "D", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

// ExpensesWorkbook renders the expense history as an Excel workbook
func ExpensesWorkbook(expenses []entity.Expense) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Gastos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Fecha", "Descripción", "Categoría", "Monto", "Recibo"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, expense := range expenses {
		row := i + 2
		receipt := ""
		if expense.ReceiptName != nil {
			receipt = *expense.ReceiptName
		}
		setRow(f, sheet, row,
			expense.Date.Format(dateLayout),
			expense.Description,
			expense.Category,
			float64(expense.Amount)/100,
			receipt,
		)
	}

	f.SetColWidth(sheet, "A", "E", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, value)
	}
}
