// Package pdf renders bill invoices and manager reports as A4 documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"ibms-backend/internal/core"
)

const (
	pageLeft   = 15.0
	pageRight  = 195.0
	pageBottom = 280.0
)

type document struct {
	pdf *gofpdf.Fpdf
	y   float64
}

func newDocument() *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &document{pdf: pdf, y: 20}
}

// ensureRoom starts a new page when the next block would run off the sheet.
func (d *document) ensureRoom(height float64) {
	if d.y+height > pageBottom {
		d.pdf.AddPage()
		d.y = 20
	}
}

func (d *document) title(text string) {
	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.Text(pageLeft, d.y, text)
	d.y += 12
}

func (d *document) heading(text string) {
	d.ensureRoom(10)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.Text(pageLeft, d.y, text)
	d.y += 7
}

func (d *document) line(text string) {
	d.ensureRoom(6)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.Text(pageLeft, d.y, text)
	d.y += 5.5
}

func (d *document) rule() {
	d.ensureRoom(4)
	d.pdf.SetDrawColor(120, 120, 120)
	d.pdf.Line(pageLeft, d.y, pageRight, d.y)
	d.y += 4
}

func (d *document) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInvoice produces the printable invoice for a bill.
func RenderInvoice(details *core.BillDetails) ([]byte, error) {
	d := newDocument()

	d.title(fmt.Sprintf("Invoice #%d", details.Bill.ID))
	d.line(fmt.Sprintf("Date: %s", details.Bill.Date.Format("2006-01-02 15:04")))
	d.line(fmt.Sprintf("Customer: %s", details.Customer.Name))
	if details.Customer.Email != "" {
		d.line(fmt.Sprintf("Email: %s", details.Customer.Email))
	}
	if details.Customer.Phone != "" {
		d.line(fmt.Sprintf("Phone: %s", details.Customer.Phone))
	}
	d.y += 3
	d.rule()

	d.heading("Items")
	for _, item := range details.Items {
		d.line(fmt.Sprintf("%-40s  %3d x %10s  =  %10s",
			item.Name, item.Quantity,
			item.Price.StringFixed(2), item.LineTotal().StringFixed(2)))
	}
	d.rule()

	d.ensureRoom(8)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.Text(pageLeft, d.y, fmt.Sprintf("Total: %s", details.Bill.Total.StringFixed(2)))

	return d.output()
}
