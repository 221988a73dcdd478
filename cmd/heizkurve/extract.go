package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/heizkurve"
	"github.com/arloliu/heizkurve/report"
	"github.com/arloliu/heizkurve/series"
	"github.com/arloliu/heizkurve/snapshot"
	"github.com/arloliu/heizkurve/validate"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <input>",
		Short: "Recover heating-curve parameters from an observation file",
		Long: `Run the extraction pipeline (plateau detection, day/night mode
separation, robust regression) on a CSV or snapshot observation file.

With --scenario the results are additionally graded against the
scenario's ground-truth curve using its tolerance block.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}
	cmd.Flags().String("scenario", "", "Scenario YAML file with ground truth and tolerances")
	cmd.Flags().Int64("seed", 42, "Random seed for the consensus estimator")
	cmd.Flags().Bool("labeled", false, "Trust the file's is_night labels instead of unsupervised separation")
	cmd.Flags().Float64("base", 0, "Known base temperature (default: assume the day room target)")
	cmd.Flags().String("report", "", "Also write a report file (.txt, .pdf or .xlsx)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	s, err := readSeries(args[0])
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	opts := []heizkurve.Option{heizkurve.WithSeed(seed)}
	if labeled, _ := cmd.Flags().GetBool("labeled"); labeled {
		opts = append(opts, heizkurve.WithLabeledModes())
	}
	if cmd.Flags().Changed("base") {
		base, _ := cmd.Flags().GetFloat64("base")
		opts = append(opts, heizkurve.WithBaseTemperature(base))
	}

	result, err := heizkurve.Extract(s, opts...)
	if err != nil {
		return err
	}

	sum := &report.Summary{
		Scenario:     args[0],
		Generated:    time.Now(),
		Samples:      s.Len(),
		ValidSamples: s.ValidCount(),
		Parameters:   result.Parameters,
	}
	for _, f := range result.Failed {
		sum.Failed = append(sum.Failed, report.Failure{Estimator: f.Estimator, Reason: f.Reason})
	}

	if scenarioPath, _ := cmd.Flags().GetString("scenario"); scenarioPath != "" {
		if err := gradeAgainstScenario(sum, scenarioPath); err != nil {
			return err
		}
	}

	if err := report.WriteText(os.Stdout, sum); err != nil {
		return err
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReportFile(sum, reportPath); err != nil {
			return err
		}
		fmt.Printf("Wrote report to %s\n", reportPath)
	}

	return nil
}

// readSeries loads a CSV or snapshot observation file by extension.
func readSeries(path string) (*series.Series, error) {
	if strings.HasSuffix(path, ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return series.ReadCSV(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return snapshot.Decode(data)
}

// gradeAgainstScenario fills the summary's gradings from a scenario file
// carrying ground truth and tolerances.
func gradeAgainstScenario(sum *report.Summary, path string) error {
	sc, err := LoadScenario(path)
	if err != nil {
		return err
	}
	if sc.Tolerances == nil {
		return fmt.Errorf("scenario %s has no tolerances block, nothing to grade against", path)
	}

	truth, err := sc.ResolveCurve()
	if err != nil {
		return err
	}

	sum.Scenario = sc.Name
	sum.Profile = sc.Profile
	for _, p := range sum.Parameters {
		sum.Reports = append(sum.Reports, validate.Compare(p, truth, *sc.Tolerances))
	}

	return nil
}

// writeReportFile renders the summary into the format matching the file
// extension.
func writeReportFile(sum *report.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".pdf"):
		return report.WritePDF(f, sum)
	case strings.HasSuffix(path, ".xlsx"):
		return report.WriteXLSX(f, sum)
	default:
		return report.WriteText(f, sum)
	}
}
