package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

type ScheduleRow struct {
	Date      string
	StartTime string
	EndTime   string
	Subject   string
	Status    string
}

// BuildSchedulePDF writes a student's schedule rows into a simple table PDF
// and returns the file name.
func BuildSchedulePDF(studentLabel, from, to string, rows []ScheduleRow) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Schedule: %s (%s ~ %s)", studentLabel, from, to))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{30, 25, 25, 70, 30}
	headers := []string{"Date", "Start", "End", "Subject", "Status"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		cells := []string{row.Date, row.StartTime, row.EndTime, tr(row.Subject), row.Status}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	fileName := fmt.Sprintf("schedule_%s_%s.pdf", from, to)
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", fmt.Errorf("error saving pdf: %w", err)
	}
	return fileName, nil
}
