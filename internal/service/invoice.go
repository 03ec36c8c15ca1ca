package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/mkadlec/shutterbook/internal/config"
	"github.com/mkadlec/shutterbook/internal/domain"
)

// InvoiceWriter renders order invoices as PDF files. The supplier block
// comes from the business profile in the config; the customer block prefers
// the linked client record and falls back to the order's contact snapshot.
type InvoiceWriter struct {
	business  config.BusinessConfig
	outputDir string
	prefix    string
	currency  string
}

// NewInvoiceWriter creates an invoice writer from config
func NewInvoiceWriter(cfg *config.Config) *InvoiceWriter {
	return &InvoiceWriter{
		business:  cfg.Business,
		outputDir: cfg.Invoice.OutputDir,
		prefix:    cfg.Invoice.NumberPrefix,
		currency:  cfg.Currency,
	}
}

// InvoiceNumber builds the invoice number for an order, e.g. INV-2026-3f2a91bc
func (w *InvoiceWriter) InvoiceNumber(order *domain.Order) string {
	id := strings.Split(order.ID.String(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", w.prefix, order.Date.Year(), id)
}

// Render writes the invoice PDF for the order into the output directory and
// returns the file path. client may be nil for orders whose client record
// was removed; the order snapshot covers the customer block then.
func (w *InvoiceWriter) Render(order *domain.Order, client *domain.Client) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	number := w.InvoiceNumber(order)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Invoice %s", number))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, "Supplier")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for _, line := range w.supplierLines() {
		pdf.Cell(40, 6, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, "Customer")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for _, line := range customerLines(order, client) {
		pdf.Cell(40, 6, line)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, "Session")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, order.Name)
	pdf.Ln(5)
	pdf.Cell(40, 6, order.Date.Format("2 January 2006 15:04"))
	pdf.Ln(5)
	if order.Location != "" {
		pdf.Cell(40, 6, order.Location)
		pdf.Ln(5)
	}
	pdf.Cell(40, 6, fmt.Sprintf("Duration: %s", order.FormattedDuration()))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(60, 8, "Item")
	pdf.Cell(40, 8, "Amount")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)

	pdf.Cell(60, 6, "Price")
	pdf.Cell(40, 6, w.money(order.Price))
	pdf.Ln(6)
	if order.Deposit > 0 {
		label := "Deposit"
		if order.DepositPaid {
			label = "Deposit (paid)"
		}
		pdf.Cell(60, 6, label)
		pdf.Cell(40, 6, w.money(order.Deposit))
		pdf.Ln(6)
	}

	due := order.Price
	if order.DepositPaid {
		due = order.RemainingAmount()
	}
	if order.FinalPaid {
		due = 0
	}
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(60, 8, "Amount due")
	pdf.Cell(40, 8, w.money(due))
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(40, 6, fmt.Sprintf("Issued %s", time.Now().Format("2 January 2006")))

	path := filepath.Join(w.outputDir, number+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}
	return path, nil
}

func (w *InvoiceWriter) supplierLines() []string {
	lines := []string{}
	if w.business.Name != "" {
		lines = append(lines, w.business.Name)
	}
	if w.business.Address != "" {
		lines = append(lines, w.business.Address)
	}
	if w.business.TaxID != "" {
		lines = append(lines, fmt.Sprintf("Tax ID: %s", w.business.TaxID))
	}
	if w.business.Email != "" {
		lines = append(lines, w.business.Email)
	}
	if w.business.Phone != "" {
		lines = append(lines, w.business.Phone)
	}
	if len(lines) == 0 {
		lines = append(lines, "(business profile not configured)")
	}
	return lines
}

func customerLines(order *domain.Order, client *domain.Client) []string {
	name := order.ClientName
	email := order.ClientEmail
	phone := order.ClientPhone
	taxID := order.ClientTaxID
	address := order.ClientAddress
	if client != nil {
		name = client.Name
		email = client.Email
		phone = client.Phone
		taxID = client.TaxID
		address = client.Address
	}

	lines := []string{}
	if name != "" {
		lines = append(lines, name)
	}
	if address != "" {
		lines = append(lines, address)
	}
	if taxID != "" {
		lines = append(lines, fmt.Sprintf("Tax ID: %s", taxID))
	}
	if email != "" {
		lines = append(lines, email)
	}
	if phone != "" {
		lines = append(lines, phone)
	}
	if len(lines) == 0 {
		lines = append(lines, "(no customer details)")
	}
	return lines
}

func (w *InvoiceWriter) money(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, w.currency)
}
