// Package report builds the downloadable artifacts of the admin panel:
// Excel workbooks for the sales and expense histories and PDF documents for
// invoices. Amounts arrive as cents and are rendered as decimal currency.
package report

import "fmt"

// CompanyInfo is the letterhead printed on generated documents
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// FormatMoney renders cents as a currency string, e.g. 150000 -> "$1500.00"
func FormatMoney(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
