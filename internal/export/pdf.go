package export

import (
	"bytes"
	"fmt"

	"festive-births-svc/internal/dashboard"

	"github.com/go-pdf/fpdf"
)

// Dashboard PDF file details
const (
	PDFContentType        = "application/pdf"
	DashboardPDFFilename  = "dashboard_report.pdf"
	dashboardPDFPageWidth = 210.0
)

// DashboardPDF renders the dashboard on A4 portrait pages
func DashboardPDF(res *dashboard.Result, reportUser string, style *Stylesheet) ([]byte, string, error) {
	if style == nil {
		return nil, "", ErrStylesheetNotFound
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.Margin)
	pdf.SetTitle(res.Filters.ReportTitle(), true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w := &pdfWriter{pdf: pdf, style: style, tr: tr, width: dashboardPDFPageWidth - 2*style.Margin}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-style.Margin + 3)
		pdf.SetFont(style.FontFamily, "I", style.BodySize-1)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	w.title(res.Filters.ReportTitle())
	w.line(fmt.Sprintf("Generated by %s on %s", reportUser, res.GeneratedAt.Format("02 January 2006")))
	if res.Filters.ReportDate != "" {
		w.line("Report date: " + res.Filters.ReportDate)
	}
	pdf.Ln(4)

	w.heading("Key Figures")
	w.table([]string{"Total Births", "Total Males", "Total Females", "NIL Reports"}, [][]string{{
		itoa(res.TotalBirths), itoa(res.TotalMales), itoa(res.TotalFemales), itoa(res.TotalNilReports),
	}}, true)

	w.heading(res.Summary.Title)
	rows := countRows(res.Summary.Rows)
	rows = append(rows, []string{res.Summary.Footer,
		itoa(res.Summary.Totals.Male), itoa(res.Summary.Totals.Female), itoa(res.Summary.Totals.Total)})
	w.table([]string{res.Summary.Header, "Male", "Female", "Total"}, rows)

	w.heading("Mother Age Groups")
	w.table([]string{"Age Group", "Male", "Female", "Total"}, countRows(res.AgeGroups))

	w.heading("Birth Modes")
	w.table([]string{"Birth Mode", "Male", "Female", "Total"}, countRows(res.BirthModes))

	w.heading("Time Slots")
	w.table([]string{"Time Slot", "Male", "Female", "Total"}, countRows(res.TimeSlots))

	w.heading("Facility Types")
	w.table([]string{"Facility Type", "Male", "Female", "Total"}, countRows(res.FacilityTypes))

	w.heading("Teenage Pregnancy")
	teen := make([][]string, 0, len(res.TeenagePregnancy)+1)
	for _, r := range res.TeenagePregnancy {
		teen = append(teen, []string{r.Facility, itoa(r.Group10To14), itoa(r.Group15To19)})
	}
	teen = append(teen, []string{"Total", itoa(res.TeenageTotals.Total10To14), itoa(res.TeenageTotals.Total15To19)})
	w.table([]string{"Facility", "10-14 yrs", "15-19 yrs"}, teen)

	if res.HasMultipleBirths() {
		w.heading("Multiple Births")
		multi := make([][]string, 0, len(res.MultipleBirths))
		for _, r := range res.MultipleBirths {
			multi = append(multi, []string{r.Facility, itoa(r.Twins), itoa(r.Triplets), itoa(r.Quadruplets), itoa(r.Quintuplets), itoa(r.Other)})
		}
		w.table([]string{"Facility", "Twins", "Triplets", "Quadruplets", "Quintuplets", "Other"}, multi)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), DashboardPDFFilename, nil
}

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	style *Stylesheet
	tr    func(string) string
	width float64
}

func (w *pdfWriter) title(s string) {
	r, g, b := rgb(w.style.AccentColor)
	w.pdf.SetTextColor(r, g, b)
	w.pdf.SetFont(w.style.FontFamily, "B", w.style.TitleSize)
	w.pdf.CellFormat(0, w.style.TitleSize/2+2, w.tr(s), "", 1, "C", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) line(s string) {
	w.pdf.SetFont(w.style.FontFamily, "", w.style.BodySize)
	w.pdf.CellFormat(0, w.style.RowHeight, w.tr(s), "", 1, "C", false, 0, "")
}

func (w *pdfWriter) heading(s string) {
	w.pdf.Ln(2)
	r, g, b := rgb(w.style.AccentColor)
	w.pdf.SetTextColor(r, g, b)
	w.pdf.SetFont(w.style.FontFamily, "B", w.style.HeadingSize)
	w.pdf.CellFormat(0, w.style.RowHeight+1, w.tr(s), "B", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(1)
}

// table gives the first column half the width and splits the rest evenly.
// With even set every column gets the same width.
func (w *pdfWriter) table(headers []string, rows [][]string, even ...bool) {
	cols := make([]float64, len(headers))
	if len(headers) == 1 || (len(even) > 0 && even[0]) {
		for i := range cols {
			cols[i] = w.width / float64(len(headers))
		}
	} else {
		cols[0] = w.width / 2
		for i := 1; i < len(headers); i++ {
			cols[i] = (w.width / 2) / float64(len(headers)-1)
		}
	}

	fr, fg, fb := rgb(w.style.HeaderFill)
	tr, tg, tb := rgb(w.style.HeaderText)
	w.pdf.SetFillColor(fr, fg, fb)
	w.pdf.SetTextColor(tr, tg, tb)
	w.pdf.SetFont(w.style.FontFamily, "B", w.style.BodySize)
	for i, h := range headers {
		w.pdf.CellFormat(cols[i], w.style.RowHeight, w.tr(h), "1", 0, "C", true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFont(w.style.FontFamily, "", w.style.BodySize)
	if len(rows) == 0 {
		w.pdf.CellFormat(w.width, w.style.RowHeight, "No data", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for i, v := range row {
			if i >= len(cols) {
				break
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			w.pdf.CellFormat(cols[i], w.style.RowHeight, w.tr(v), "1", 0, align, false, 0, "")
		}
		w.pdf.Ln(-1)
	}
}

func countRows(rows []dashboard.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		label := r.Label
		if label == "" {
			label = "Not recorded"
		}
		out = append(out, []string{label, itoa(r.Male), itoa(r.Female), itoa(r.Total)})
	}
	return out
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
