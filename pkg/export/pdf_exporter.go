package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 15.0
	bottomMargin = 15.0
	rowHeight    = 8.0
)

// column widths: subject, max mark, earned mark, grade
var reportColumns = []struct {
	title string
	width float64
	align string
}{
	{"Subject", 80, "L"},
	{"Max Mark", 33, "C"},
	{"Earned Mark", 34, "C"},
	{"Grade", 33, "R"},
}

// ReportHeader is printed at the top of every card. FontPath names a UTF-8
// TrueType font; without one the core Arial font limits text to cp1252.
type ReportHeader struct {
	SchoolName string
	Title      string
	FontPath   string
}

const (
	coreFamily = "Arial"
	utf8Family = "ReportSans"
)

// face is the font family in use and the text encoder that goes with it.
type face struct {
	family string
	tr     func(string) string
}

// ReportRow is one subject line, already formatted.
type ReportRow struct {
	Subject string
	MaxMark string
	Mark    string
	Grade   string
}

// ReportCard is one student's result for one exam.
type ReportCard struct {
	Name           string
	FatherName     string
	RegisterNumber string
	ClassName      string
	ExamType       string
	Rows           []ReportRow
	TotalMax       string
	TotalEarned    string
	Percentage     string
	Passed         bool
}

// ReportCardPDF draws report cards onto A4 portrait pages.
type ReportCardPDF struct {
	header ReportHeader
}

// NewReportCardPDF constructs a report card renderer.
func NewReportCardPDF(header ReportHeader) *ReportCardPDF {
	return &ReportCardPDF{header: header}
}

// Render draws every card starting on its own page. Tables longer than a page
// continue on the next one with the column header repeated.
func (r *ReportCardPDF) Render(cards []ReportCard) ([]byte, error) {
	pdf, err := r.build(cards)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ReportCardPDF) build(cards []ReportCard) (*gofpdf.Fpdf, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("pdf requires at least one report card")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetTitle(r.header.Title, true)
	f := r.loadFace(pdf)

	for _, card := range cards {
		pdf.AddPage()
		r.drawHeading(pdf, f)
		r.drawStudent(pdf, f, card)
		r.drawTableHeader(pdf, f)

		pdf.SetFont(f.family, "", 10)
		for _, row := range card.Rows {
			r.ensureRoom(pdf, f)
			pdf.SetFont(f.family, "", 10)
			cells := []string{f.tr(row.Subject), row.MaxMark, row.Mark, row.Grade}
			for i, col := range reportColumns {
				pdf.CellFormat(col.width, rowHeight, cells[i], "1", 0, col.align, false, 0, "")
			}
			pdf.Ln(-1)
		}

		r.ensureRoom(pdf, f)
		pdf.SetFont(f.family, "B", 10)
		pdf.SetFillColor(230, 240, 236)
		totals := []string{"Total", card.TotalMax, card.TotalEarned, card.Percentage}
		for i, col := range reportColumns {
			pdf.CellFormat(col.width, rowHeight, totals[i], "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(rowHeight + 4)

		r.drawBadge(pdf, f, card.Passed)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

// loadFace registers the configured UTF-8 font, falling back to core Arial.
func (r *ReportCardPDF) loadFace(pdf *gofpdf.Fpdf) face {
	if r.header.FontPath == "" {
		return face{family: coreFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	}
	pdf.AddUTF8Font(utf8Family, "", r.header.FontPath)
	pdf.AddUTF8Font(utf8Family, "B", r.header.FontPath)
	return face{family: utf8Family, tr: func(s string) string { return s }}
}

func (r *ReportCardPDF) drawHeading(pdf *gofpdf.Fpdf, f face) {
	pdf.SetTextColor(6, 78, 59)
	pdf.SetFont(f.family, "B", 16)
	pdf.CellFormat(0, 9, f.tr(strings.ToUpper(r.header.SchoolName)), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(f.family, "", 12)
	pdf.CellFormat(0, 7, f.tr(r.header.Title), "B", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *ReportCardPDF) drawStudent(pdf *gofpdf.Fpdf, f face, card ReportCard) {
	half := 90.0
	pdf.SetFont(f.family, "B", 13)
	pdf.CellFormat(half, 7, f.tr(card.Name), "", 0, "L", false, 0, "")
	pdf.SetFont(f.family, "B", 10)
	pdf.CellFormat(half, 7, f.tr(card.ExamType), "", 1, "R", false, 0, "")

	pdf.SetFont(f.family, "", 10)
	father := ""
	if card.FatherName != "" {
		father = "Father: " + card.FatherName
	}
	pdf.CellFormat(half, 6, f.tr(father), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, f.tr("Class: "+card.ClassName), "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 6, f.tr("Reg: "+card.RegisterNumber), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (r *ReportCardPDF) drawTableHeader(pdf *gofpdf.Fpdf, f face) {
	pdf.SetFont(f.family, "B", 10)
	pdf.SetFillColor(6, 78, 59)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// ensureRoom starts a new page with the table header when the next row would not fit.
func (r *ReportCardPDF) ensureRoom(pdf *gofpdf.Fpdf, f face) {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+rowHeight <= pageHeight-bottomMargin {
		return
	}
	pdf.AddPage()
	r.drawTableHeader(pdf, f)
}

func (r *ReportCardPDF) drawBadge(pdf *gofpdf.Fpdf, f face, passed bool) {
	label := "FAILED"
	pdf.SetFillColor(185, 28, 28)
	if passed {
		label = "PASSED"
		pdf.SetFillColor(21, 128, 61)
	}
	if _, pageHeight := pdf.GetPageSize(); pdf.GetY()+10 > pageHeight-bottomMargin {
		pdf.AddPage()
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(f.family, "B", 12)
	pdf.SetX((210 - 50) / 2)
	pdf.CellFormat(50, 10, "RESULT: "+label, "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
