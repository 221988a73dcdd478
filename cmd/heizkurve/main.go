// Package main provides the heizkurve CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/heizkurve/curve"
	"github.com/arloliu/heizkurve/noise"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heizkurve",
		Short: "Heating curve parameter extraction",
		Long: `heizkurve simulates hydronic heating systems and recovers their
heating-curve parameters (slope, room targets, flow limits) from noisy
flow-temperature observations.

Typical round trip:
  heizkurve simulate --preset radiators-standard --profile moderate --out data.csv
  heizkurve extract data.csv`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("heizkurve v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "presets",
		Short: "List the building presets and noise profiles",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Building presets:")
			for _, name := range curve.PresetNames() {
				p, _ := curve.LookupPreset(name)
				fmt.Printf("  %-22s slope=%.1f flow=%g-%g°C  %s\n",
					p.Name, p.Slope, p.MinFlow, p.MaxFlow, p.Description)
			}
			fmt.Println("\nNoise profiles:")
			for _, p := range noise.Profiles() {
				fmt.Printf("  %-22s sigma=%.1f spikes=%.1f%% missing=%.1f%% outliers=%.1f%%\n",
					p.Name, p.GaussianSigma, p.SpikeProbability*100,
					p.MissingProbability*100, p.OutlierProbability*100)
			}
		},
	})

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newExtractCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
