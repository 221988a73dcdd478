package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the summary as a single-page A4 PDF.
func WritePDF(w io.Writer, sum *Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Heating Curve Extraction Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Scenario: %s", sum.Scenario))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Noise profile: %s", sum.Profile))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Samples: %d (%d with flow readings)", sum.Samples, sum.ValidSamples))
	pdf.Ln(5)
	if !sum.Generated.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", sum.Generated.Format(time.RFC3339)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	for i := range sum.Parameters {
		p := &sum.Parameters[i]

		pdf.SetFont("Arial", "B", 11)
		title := fmt.Sprintf("Estimator: %s", p.Estimator)
		if p.Partial {
			title += " (partial)"
		}
		pdf.Cell(0, 7, title)
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(40, 6, "Parameter", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, "Extracted", "1", 0, "R", false, 0, "")
		if sum.Graded() {
			pdf.CellFormat(30, 6, "Truth", "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, "Error", "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, "Verdict", "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		if rep := sum.reportFor(p.Estimator); rep != nil {
			for _, f := range rep.Fields {
				verdict := "ok"
				if !f.Pass {
					verdict = "FAIL"
				}
				pdf.CellFormat(40, 6, f.Name, "1", 0, "L", false, 0, "")
				pdf.CellFormat(30, 6, trimFloat(f.Extracted), "1", 0, "R", false, 0, "")
				pdf.CellFormat(30, 6, trimFloat(f.Truth), "1", 0, "R", false, 0, "")
				pdf.CellFormat(30, 6, trimFloat(f.Error), "1", 0, "R", false, 0, "")
				pdf.CellFormat(25, 6, verdict, "1", 0, "C", false, 0, "")
				pdf.Ln(-1)
			}
			for _, name := range rep.Skipped {
				pdf.CellFormat(40, 6, name, "1", 0, "L", false, 0, "")
				pdf.CellFormat(30, 6, "unresolved", "1", 0, "R", false, 0, "")
				pdf.CellFormat(30, 6, "-", "1", 0, "R", false, 0, "")
				pdf.CellFormat(30, 6, "-", "1", 0, "R", false, 0, "")
				pdf.CellFormat(25, 6, "skipped", "1", 0, "C", false, 0, "")
				pdf.Ln(-1)
			}
		} else {
			rows := []struct {
				name  string
				value string
			}{
				{"slope", trimFloat(p.K)},
				{"t_room_day", trimFloat(p.DayTarget)},
				{"t_room_night", fmtValue(p.NightTarget, p.NightResolved)},
				{"t_vorlauf_max", fmtValue(p.UpperLimit.Value, p.UpperLimit.Found)},
				{"t_vorlauf_min", fmtValue(p.LowerLimit.Value, p.LowerLimit.Found)},
			}
			for _, row := range rows {
				pdf.CellFormat(40, 6, row.name, "1", 0, "L", false, 0, "")
				pdf.CellFormat(30, 6, row.value, "1", 0, "R", false, 0, "")
				pdf.Ln(-1)
			}
		}

		pdf.Ln(2)
		pdf.Cell(0, 5, fmt.Sprintf("Fit quality: r2=%.4f inliers=%.1f%% slope spread=%s",
			p.Day.RSquared, p.Day.InlierRatio*100, trimFloat(p.SlopeSpread)))
		pdf.Ln(5)
		if p.BaseAssumed {
			pdf.Cell(0, 5, "Base temperature assumed equal to the day room target.")
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	if len(sum.Failed) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, "Failed estimators")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for _, f := range sum.Failed {
			pdf.Cell(0, 5, fmt.Sprintf("%s: %s", f.Estimator, f.Reason))
			pdf.Ln(5)
		}
	}

	return pdf.Output(w)
}
