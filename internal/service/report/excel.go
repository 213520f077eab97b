package report

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

type AttendanceRow struct {
	StudentID  int
	FullName   string
	Date       string
	AttendTime string
	LeaveTime  string
	Status     string
}

// AddAttendanceToExcel appends the day's attendance rows to fileName,
// creating the workbook with a header row when it does not exist yet.
func AddAttendanceToExcel(rows []AttendanceRow, fileName string) error {
	var f *excelize.File
	sheet := "Sheet1"

	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		f = excelize.NewFile()
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"학생ID", "이름", "날짜", "등원 시간", "하원 시간", "상태"}
		for i, header := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(sheet, cell, header)
		}
	} else {
		f, err = excelize.OpenFile(fileName)
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
	}

	// Find the next empty row.
	rowNum := 2
	for {
		cell, _ := f.GetCellValue(sheet, fmt.Sprintf("A%d", rowNum))
		if cell == "" {
			break
		}
		rowNum++
	}

	for _, entry := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.StudentID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.Date)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.AttendTime)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.LeaveTime)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.Status)
		rowNum++
	}

	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}
