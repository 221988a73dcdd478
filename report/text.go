package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// trimFloat formats a value with three decimals and no trailing zeros.
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}

	return s
}

// WriteText renders the summary as an aligned plain-text table.
//
// Graded summaries show per-field errors and a PASS/FAIL verdict per
// estimator; ungraded ones list the extracted values only.
func WriteText(w io.Writer, sum *Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Scenario: %s\n", sum.Scenario)
	fmt.Fprintf(&b, "Noise profile: %s\n", sum.Profile)
	fmt.Fprintf(&b, "Samples: %d (%d with flow readings)\n\n", sum.Samples, sum.ValidSamples)

	for i := range sum.Parameters {
		p := &sum.Parameters[i]

		fmt.Fprintf(&b, "Estimator: %s", p.Estimator)
		if p.Partial {
			b.WriteString(" (partial)")
		}
		b.WriteString("\n")

		tw := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
		if rep := sum.reportFor(p.Estimator); rep != nil {
			fmt.Fprintln(tw, "  parameter\textracted\ttruth\terror\ttolerance\tverdict")
			for _, f := range rep.Fields {
				verdict := "ok"
				if !f.Pass {
					verdict = "FAIL"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
					f.Name, trimFloat(f.Extracted), trimFloat(f.Truth),
					trimFloat(f.Error), trimFloat(f.Tolerance), verdict)
			}
			for _, name := range rep.Skipped {
				fmt.Fprintf(tw, "  %s\tunresolved\t-\t-\t-\tskipped\n", name)
			}
		} else {
			fmt.Fprintln(tw, "  parameter\textracted")
			fmt.Fprintf(tw, "  slope\t%s\n", trimFloat(p.K))
			fmt.Fprintf(tw, "  t_room_day\t%s\n", trimFloat(p.DayTarget))
			fmt.Fprintf(tw, "  t_room_night\t%s\n", fmtValue(p.NightTarget, p.NightResolved))
			fmt.Fprintf(tw, "  t_vorlauf_max\t%s\n", fmtValue(p.UpperLimit.Value, p.UpperLimit.Found))
			fmt.Fprintf(tw, "  t_vorlauf_min\t%s\n", fmtValue(p.LowerLimit.Value, p.LowerLimit.Found))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(&b, "  fit quality: r2=%.4f inliers=%.1f%% spread=%s\n",
			p.Day.RSquared, p.Day.InlierRatio*100, trimFloat(p.SlopeSpread))
		if p.BaseAssumed {
			b.WriteString("  base temperature assumed equal to the day room target\n")
		}
		if rep := sum.reportFor(p.Estimator); rep != nil {
			if rep.Pass {
				b.WriteString("  verdict: PASS\n")
			} else {
				b.WriteString("  verdict: FAIL\n")
			}
		}
		b.WriteString("\n")
	}

	for _, f := range sum.Failed {
		fmt.Fprintf(&b, "Estimator: %s FAILED: %s\n", f.Estimator, f.Reason)
	}

	_, err := io.WriteString(w, b.String())

	return err
}
