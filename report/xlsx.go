package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the summary as a workbook with a summary sheet and one
// sheet per estimator.
func WriteXLSX(w io.Writer, sum *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "summary"
	f.SetSheetName("Sheet1", summarySheet)

	_ = f.SetCellValue(summarySheet, "A1", "Heating Curve Extraction Report")
	_ = f.SetCellValue(summarySheet, "A3", "Scenario")
	_ = f.SetCellValue(summarySheet, "B3", sum.Scenario)
	_ = f.SetCellValue(summarySheet, "A4", "Noise profile")
	_ = f.SetCellValue(summarySheet, "B4", sum.Profile)
	_ = f.SetCellValue(summarySheet, "A5", "Samples")
	_ = f.SetCellValue(summarySheet, "B5", sum.Samples)
	_ = f.SetCellValue(summarySheet, "A6", "Samples with flow readings")
	_ = f.SetCellValue(summarySheet, "B6", sum.ValidSamples)
	if !sum.Generated.IsZero() {
		_ = f.SetCellValue(summarySheet, "A7", "Generated")
		_ = f.SetCellValue(summarySheet, "B7", sum.Generated.Format(time.RFC3339))
	}

	row := 9
	for _, failed := range sum.Failed {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), failed.Estimator)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), "failed: "+failed.Reason)
		row++
	}

	for i := range sum.Parameters {
		p := &sum.Parameters[i]
		if _, err := f.NewSheet(p.Estimator); err != nil {
			return err
		}
		sheet := p.Estimator

		_ = f.SetCellValue(sheet, "A1", "Parameter")
		_ = f.SetCellValue(sheet, "B1", "Extracted")

		if rep := sum.reportFor(p.Estimator); rep != nil {
			_ = f.SetCellValue(sheet, "C1", "Truth")
			_ = f.SetCellValue(sheet, "D1", "Error")
			_ = f.SetCellValue(sheet, "E1", "Tolerance")
			_ = f.SetCellValue(sheet, "F1", "Pass")
			for j, field := range rep.Fields {
				r := j + 2
				_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), field.Name)
				_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), field.Extracted)
				_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), field.Truth)
				_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), field.Error)
				_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), field.Tolerance)
				_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", r), field.Pass)
			}
			r := len(rep.Fields) + 2
			for _, name := range rep.Skipped {
				_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), name)
				_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), "unresolved")
				r++
			}
		} else {
			setParam := func(r int, name string, v float64, resolved bool) {
				_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), name)
				if resolved && !math.IsNaN(v) {
					_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), v)
				} else {
					_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), "unresolved")
				}
			}
			setParam(2, "slope", p.K, true)
			setParam(3, "t_room_day", p.DayTarget, true)
			setParam(4, "t_room_night", p.NightTarget, p.NightResolved)
			setParam(5, "t_vorlauf_max", p.UpperLimit.Value, p.UpperLimit.Found)
			setParam(6, "t_vorlauf_min", p.LowerLimit.Value, p.LowerLimit.Found)
		}
	}

	return f.Write(w)
}
