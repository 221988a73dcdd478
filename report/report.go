package report

import (
	"math"
	"time"

	"github.com/arloliu/heizkurve/fit"
	"github.com/arloliu/heizkurve/validate"
)

// Failure describes an estimator that produced no parameters.
type Failure struct {
	Estimator string
	Reason    string
}

// Summary bundles everything one rendered report needs. Reports is aligned
// with Parameters per estimator; it is empty when no ground truth was
// available for grading.
type Summary struct {
	Scenario  string
	Profile   string
	Generated time.Time

	Samples      int
	ValidSamples int

	Parameters []fit.Parameters
	Reports    []validate.Report
	Failed     []Failure
}

// Graded reports whether the summary carries ground-truth gradings.
func (s *Summary) Graded() bool {
	return len(s.Reports) > 0
}

// reportFor returns the grading for one estimator, or nil.
func (s *Summary) reportFor(estimator string) *validate.Report {
	for i := range s.Reports {
		if s.Reports[i].Estimator == estimator {
			return &s.Reports[i]
		}
	}

	return nil
}

// fmtValue renders a parameter value, showing unresolved ones distinctly.
func fmtValue(v float64, resolved bool) string {
	if !resolved || math.IsNaN(v) {
		return "unresolved"
	}

	return trimFloat(v)
}
