package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
)

var statusLabels = map[enum.InvoiceStatus]string{
	enum.InvoiceStatusPending:   "Pendiente",
	enum.InvoiceStatusPaid:      "Pagada",
	enum.InvoiceStatusDelivered: "Entregada",
}

var unitLabels = map[enum.UnitType]string{
	enum.UnitTypeUnit:   "Unidad",
	enum.UnitTypeBag:    "Bolsa",
	enum.UnitTypeBox:    "Caja",
	enum.UnitTypePallet: "Tarima",
}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish month name for a zero-based month index
func MonthName(m int) string {
	if m < 0 || m > 11 {
		return ""
	}
	return monthNames[m]
}

func letterhead(pdf *fpdf.Fpdf, tr func(string) string, company CompanyInfo) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, tr(company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	for _, line := range []string{company.Address, company.Phone, company.Email} {
		if line != "" {
			pdf.CellFormat(0, 4.5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

func reportTitle(pdf *fpdf.Fpdf, tr func(string) string, title, filterLine string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, tr(title), "", 1, "L", false, 0, "")
	if filterLine != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, tr(filterLine), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, headers, aligns []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

func totalFooter(pdf *fpdf.Fpdf, widths []float64, total int64) {
	var labelWidth float64
	for _, w := range widths[:len(widths)-1] {
		labelWidth += w
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelWidth, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[len(widths)-1], 8, FormatMoney(total), "1", 1, "R", false, 0, "")
}

// SalesReportPDF renders the filtered sales history as a printable report
// with the company letterhead, the applied filters and a grand total.
func SalesReportPDF(company CompanyInfo, filterLine string, sales []entity.Sale) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	letterhead(pdf, tr, company)
	reportTitle(pdf, tr, "REPORTE DE VENTAS", filterLine)

	widths := []float64{30, 80, 40, 30}
	aligns := []string{"L", "L", "L", "R"}
	tableHeader(pdf, tr, widths, []string{"Fecha", "Cliente", "Factura", "Monto"}, aligns)

	var total int64
	for _, sale := range sales {
		total += sale.Amount
		cells := []string{
			sale.Date.Format("02/01/2006"),
			sale.CustomerName,
			shortID(sale.InvoiceID.String()),
			FormatMoney(sale.Amount),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6.5, tr(cell), "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	totalFooter(pdf, widths, total)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return &buf, nil
}

// ExpensesReportPDF renders the filtered expense history as a printable
// report with the company letterhead, the applied filters and a grand total.
func ExpensesReportPDF(company CompanyInfo, filterLine string, expenses []entity.Expense) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	letterhead(pdf, tr, company)
	reportTitle(pdf, tr, "REPORTE DE GASTOS", filterLine)

	widths := []float64{25, 80, 45, 30}
	aligns := []string{"L", "L", "L", "R"}
	tableHeader(pdf, tr, widths, []string{"Fecha", "Descripción", "Categoría", "Monto"}, aligns)

	var total int64
	for _, expense := range expenses {
		total += expense.Amount
		cells := []string{
			expense.Date.Format("02/01/2006"),
			expense.Description,
			expense.Category,
			FormatMoney(expense.Amount),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6.5, tr(cell), "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	totalFooter(pdf, widths, total)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return &buf, nil
}

// shortID keeps the first uuid segment, which is enough to match the invoice
// in the admin panel listing
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// InvoicePDF renders a printable invoice document. The layout mirrors the
// paper ticket the business hands to customers: letterhead, invoice metadata,
// customer block, item table and grand total.
func InvoicePDF(company CompanyInfo, invoice *entity.Invoice) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	letterhead(pdf, tr, company)

	// Invoice metadata
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, "FACTURA", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Folio: %s", invoice.ID.String())), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Fecha: %s", invoice.CreatedAt.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Estado: %s", statusLabels[invoice.Status])), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(invoice.CustomerName), "", 1, "L", false, 0, "")
	for _, field := range []*string{invoice.CustomerPhone, invoice.CustomerEmail, invoice.CustomerAddress} {
		if field != nil && *field != "" {
			pdf.CellFormat(0, 5, tr(*field), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)

	// Item table
	widths := []float64{75, 20, 25, 30, 30}
	headers := []string{"Producto", "Cant.", "Unidad", "Precio Unit.", "Total"}
	aligns := []string{"L", "R", "L", "R", "R"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range invoice.Items {
		cells := []string{
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			unitLabels[item.UnitType],
			FormatMoney(item.UnitPrice),
			FormatMoney(item.Total),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6.5, tr(cell), "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Grand total
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, FormatMoney(invoice.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, tr("Gracias por su compra"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return &buf, nil
}
