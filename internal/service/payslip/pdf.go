// PDF rendering of composed payslip pages. One logical Page becomes one or
// more physical sheets: rows are never split across a sheet boundary, and the
// totals/signature footer is emitted as a single atomic block.

package payslip

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
)

const (
	rowH     = 6.0
	titleH   = 7.0
	footerH  = 64.0 // deduction header + totals + signature block, kept together
	headerH  = 34.0
	noticeH  = 8.0
	descColW = 74.0
	numColW  = 24.0
	noteColW = 26.0
)

// RenderPDF writes the page sequence to w as a single document.
func RenderPDF(pages []payslip.Page, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AliasNbPages("{nb}")

	r := &renderer{pdf: pdf}
	for i := range pages {
		r.renderPage(&pages[i])
	}

	return pdf.Output(w)
}

type renderer struct {
	pdf  *fpdf.Fpdf
	page *payslip.Page
}

func (r *renderer) renderPage(page *payslip.Page) {
	r.page = page
	r.newSheet()

	if page.Kind == payslip.PageKindDiagnostic {
		r.renderDiagnostic(page)
		return
	}

	for i := range page.Sections {
		r.renderSection(&page.Sections[i])
	}

	if page.Kind == payslip.PageKindJobDetail {
		r.renderJobFooter(page)
		return
	}

	r.renderSummaryFooter(page)
}

// newSheet starts a physical sheet and draws the identity header.
func (r *renderer) newSheet() {
	pdf := r.pdf
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	page := r.page

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.Rect(marginL, marginT, contentW, 9, "F")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1)
	pdf.CellFormat(contentW-4, 7, page.Header.CompanyName, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 7, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 12
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginL, y)
	title := "SLIP GAJI"
	switch page.Kind {
	case payslip.PageKindJobDetail:
		title = "SLIP GAJI - PECAHAN KERJA"
	case payslip.PageKindDiagnostic:
		title = "SLIP GAJI - RALAT"
	}
	pdf.CellFormat(contentW/2, 6, title, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("%s %d", MonthName(page.Header.Month), page.Header.Year), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(marginL)
	pdf.CellFormat(contentW/2, 5, "Nama: "+page.Header.EmployeeName, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "No. K/P: "+page.Header.ICNo, "", 1, "R", false, 0, "")
	pdf.SetX(marginL)
	pdf.CellFormat(contentW/2, 5, "Kerja: "+page.Header.JobName, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Bahagian: "+page.Header.Section, "", 1, "R", false, 0, "")
	pdf.Ln(2)
}

// ensureRoom breaks to a continuation sheet before emitting a block of
// height h. Keep-with-next for every row comes from calling this first.
func (r *renderer) ensureRoom(h float64) {
	_, pageH := r.pdf.GetPageSize()
	_, _, _, marginB := r.pdf.GetMargins()
	if r.pdf.GetY()+h > pageH-marginB {
		r.newSheet()
	}
}

func (r *renderer) renderSection(s *payslip.Section) {
	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginL

	r.ensureRoom(titleH + rowH)
	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(marginL)
	pdf.CellFormat(contentW, titleH, s.Title, "1", 1, "L", true, 0, "")

	for i := range s.Blocks {
		r.renderBlock(&s.Blocks[i], len(s.Blocks) > 1 || s.Blocks[i].JobName != "")
	}

	r.ensureRoom(rowH)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(marginL)
	pdf.CellFormat(contentW-numColW, rowH, "Jumlah "+s.Title, "1", 0, "R", false, 0, "")
	pdf.CellFormat(numColW, rowH, FormatAmount(s.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(1.5)
}

func (r *renderer) renderBlock(b *payslip.JobBlock, showHeader bool) {
	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginL

	if showHeader && b.JobName != "" {
		r.ensureRoom(rowH * 2)
		head := b.JobName
		if b.StaffID != "" {
			head += "  (" + b.StaffID + ")"
		}
		pdf.SetFont("Helvetica", "BI", 8)
		pdf.SetX(marginL)
		pdf.CellFormat(contentW-numColW, rowH, head, "1", 0, "L", false, 0, "")
		pdf.CellFormat(numColW, rowH, "["+FormatAmount(b.Subtotal)+"]", "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range b.Rows {
		r.ensureRoom(rowH)
		pdf.SetX(marginL)
		pdf.CellFormat(descColW, rowH, row.Description, "1", 0, "L", false, 0, "")
		rate := ""
		if !row.Rate.IsZero() {
			rate = FormatAmount(row.Rate)
			if row.RateUnit != "" {
				rate += " / " + string(row.RateUnit)
			}
		}
		pdf.CellFormat(numColW+10, rowH, rate, "1", 0, "R", false, 0, "")
		qty := ""
		if !row.Quantity.IsZero() {
			qty = FormatQuantity(row.Quantity)
		}
		pdf.CellFormat(numColW-6, rowH, qty, "1", 0, "R", false, 0, "")
		pdf.CellFormat(noteColW, rowH, row.Note, "1", 0, "C", false, 0, "")
		pdf.CellFormat(contentW-descColW-numColW-10-(numColW-6)-noteColW, rowH, FormatAmount(row.Amount), "1", 1, "R", false, 0, "")
	}
}

// renderSummaryFooter draws statutory deductions, advances, net figures and
// the signature block as one atomic unit.
func (r *renderer) renderSummaryFooter(page *payslip.Page) {
	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginL

	needed := footerH + float64(len(page.Deductions)+len(page.Advances))*rowH
	r.ensureRoom(needed)

	if len(page.Deductions) > 0 {
		pdf.SetFillColor(235, 235, 235)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetX(marginL)
		pdf.CellFormat(contentW-numColW*2, titleH, "Potongan Berkanun", "1", 0, "L", true, 0, "")
		pdf.CellFormat(numColW, titleH, "Majikan", "1", 0, "C", true, 0, "")
		pdf.CellFormat(numColW, titleH, "Pekerja", "1", 1, "C", true, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, d := range page.Deductions {
			pdf.SetX(marginL)
			pdf.CellFormat(contentW-numColW*2, rowH, d.Label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(numColW, rowH, FormatAmount(d.Employer), "1", 0, "R", false, 0, "")
			pdf.CellFormat(numColW, rowH, "("+FormatAmount(d.Employee)+")", "1", 1, "R", false, 0, "")
		}
	}

	r.totalLine("Gaji Kasar", FormatAmount(page.Totals.GrossPay), false)
	if !page.Totals.AverageBaseRate.IsZero() {
		r.totalLine("Purata Kadar Pokok", FormatAmount(page.Totals.AverageBaseRate), false)
	}
	r.totalLine("Jumlah Potongan Pekerja", "("+FormatAmount(page.Totals.DeductionTotal)+")", false)
	r.totalLine("Gaji Bersih", FormatAmount(page.Totals.NetPay), false)

	pdf.SetFont("Helvetica", "", 8)
	for _, a := range page.Advances {
		pdf.SetX(marginL)
		pdf.CellFormat(contentW-numColW, rowH, a.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(numColW, rowH, "("+FormatAmount(a.Amount)+")", "1", 1, "R", false, 0, "")
	}

	r.totalLine("BAYARAN AKHIR (RM)", FormatAmount(page.Totals.FinalPayment), true)
	r.signatureBlock()
}

func (r *renderer) renderJobFooter(page *payslip.Page) {
	r.ensureRoom(rowH*2 + noticeH)
	r.totalLine("Jumlah Gaji Kerja Ini", FormatAmount(page.Totals.GrossPay), true)

	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetX(marginL)
	pdf.CellFormat(0, noticeH, page.Notice, "", 1, "L", false, 0, "")
}

func (r *renderer) renderDiagnostic(page *payslip.Page) {
	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	d := page.Diagnostic

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginL)
	pdf.CellFormat(0, 8, "Slip gaji tidak dapat dijana", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(marginL)
	pdf.CellFormat(0, 6, "Pekerja: "+d.EmployeeName, "", 1, "L", false, 0, "")
	pdf.SetX(marginL)
	pdf.CellFormat(0, 6, "Kerja: "+d.JobType, "", 1, "L", false, 0, "")
	pdf.SetX(marginL)
	pdf.MultiCell(0, 6, "Ralat: "+d.Message, "", "L", false)
}

func (r *renderer) totalLine(label, value string, emphasized bool) {
	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginL

	if emphasized {
		pdf.SetFont("Helvetica", "B", 10)
	} else {
		pdf.SetFont("Helvetica", "B", 9)
	}
	pdf.SetX(marginL)
	pdf.CellFormat(contentW-numColW, rowH, label, "1", 0, "R", false, 0, "")
	pdf.CellFormat(numColW, rowH, value, "1", 1, "R", false, 0, "")
}

func (r *renderer) signatureBlock() {
	pdf := r.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginL

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 8)
	half := contentW / 2
	pdf.SetX(marginL)
	pdf.CellFormat(half-10, 5, "____________________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(half-10, 5, "____________________________", "", 1, "R", false, 0, "")
	pdf.SetX(marginL)
	pdf.CellFormat(half-10, 5, "Tandatangan Pekerja", "", 0, "L", false, 0, "")
	pdf.CellFormat(half-10, 5, "Tandatangan Majikan", "", 1, "R", false, 0, "")
}
