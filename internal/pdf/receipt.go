package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator - interface so services can mock receipt generation in tests.
type Generator interface {
	GenerateReceipt(data ReceiptData) (string, error)
}

type ReceiptData struct {
	BookingID   string
	DriverName  string
	SpotLabel   string
	Start       time.Time
	End         time.Time
	DurationHrs float64
	TotalCost   float64
	OverstayFee float64
	Filename    string // without path; generated when empty
}

// ReceiptGenerator writes booking receipts under RootDir/receipts.
type ReceiptGenerator struct {
	RootDir string
}

func NewReceiptGenerator(rootDir string) *ReceiptGenerator {
	return &ReceiptGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *ReceiptGenerator) GenerateReceipt(data ReceiptData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("receipt_%s.pdf", data.BookingID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("ParkEzy receipt %s", data.BookingID), false)
	pdf.SetAuthor("ParkEzy", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "PARKING RECEIPT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("Booking %s  /  %s", data.BookingID, data.Start.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	g.sectionTitle(pdf, "Session")
	g.kvLine(pdf, "Driver", data.DriverName)
	g.kvLine(pdf, "Spot", data.SpotLabel)
	g.kvLine(pdf, "From", data.Start.Format("02 Jan 2006 15:04"))
	g.kvLine(pdf, "To", data.End.Format("02 Jan 2006 15:04"))
	g.kvLine(pdf, "Duration", fmt.Sprintf("%.2f h", data.DurationHrs))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Charges")
	if data.OverstayFee > 0 {
		g.kvLine(pdf, "Overstay fee", fmt.Sprintf("INR %.2f", data.OverstayFee))
	}
	g.kvLine(pdf, "Total", fmt.Sprintf("INR %.2f", data.TotalCost))
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Thank you for parking with ParkEzy.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write receipt pdf: %w", err)
	}
	return absPath, nil
}

func (g *ReceiptGenerator) ensureTarget(filename string) (string, error) {
	dir := filepath.Join(g.RootDir, "receipts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}
	return filepath.Join(dir, filepath.Base(filename)), nil
}

func (g *ReceiptGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReceiptGenerator) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *ReceiptGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(20, y, 190, y)
	pdf.SetXY(x, y+2)
}
