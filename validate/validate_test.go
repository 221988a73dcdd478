package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heizkurve/curve"
	"github.com/arloliu/heizkurve/detect"
	"github.com/arloliu/heizkurve/fit"
)

func defaultTolerances() Tolerances {
	return Tolerances{
		Slope:       0.1,
		DayTarget:   1.0,
		NightTarget: 1.0,
		UpperLimit:  2.0,
		LowerLimit:  2.0,
	}
}

func TestCompareAllWithinTolerance(t *testing.T) {
	truth := curve.DefaultConfig()
	p := fit.Parameters{
		Estimator:     "ransac",
		K:             1.43,
		DayTarget:     19.6,
		NightTarget:   16.5,
		NightResolved: true,
		UpperLimit:    detect.Limit{Value: 74.2, Found: true},
		LowerLimit:    detect.Limit{Value: 25.9, Found: true},
	}

	rep := Compare(p, truth, defaultTolerances())
	require.True(t, rep.Pass)
	require.Len(t, rep.Fields, 5)
	require.Empty(t, rep.Skipped)

	for _, f := range rep.Fields {
		require.True(t, f.Pass, f.Name)
		require.LessOrEqual(t, f.Error, f.Tolerance, f.Name)
	}
}

func TestCompareFailsOutOfTolerance(t *testing.T) {
	truth := curve.DefaultConfig()
	p := fit.Parameters{
		Estimator:     "ols",
		K:             1.8, // error 0.4 against tolerance 0.1
		DayTarget:     19.9,
		NightTarget:   16.1,
		NightResolved: true,
	}

	rep := Compare(p, truth, defaultTolerances())
	require.False(t, rep.Pass)

	var slopeField *FieldResult
	for i := range rep.Fields {
		if rep.Fields[i].Name == "slope" {
			slopeField = &rep.Fields[i]
		}
	}
	require.NotNil(t, slopeField)
	require.False(t, slopeField.Pass)
	require.InDelta(t, 0.4, slopeField.Error, 1e-9)
}

func TestCompareSkipsUnresolvedFields(t *testing.T) {
	truth := curve.DefaultConfig()
	p := fit.Parameters{
		Estimator:   "ols",
		K:           1.4,
		DayTarget:   20.0,
		NightTarget: math.NaN(),
		Partial:     true,
	}

	rep := Compare(p, truth, defaultTolerances())

	// Unresolved fields are reported distinctly and never graded.
	require.ElementsMatch(t, []string{"t_room_night", "t_vorlauf_max", "t_vorlauf_min"}, rep.Skipped)
	require.Len(t, rep.Fields, 2)
	require.True(t, rep.Pass)

	for _, f := range rep.Fields {
		require.False(t, math.IsNaN(f.Error), f.Name)
	}
}
