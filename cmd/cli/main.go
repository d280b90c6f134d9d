package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crossval/adapters/excel"
	"crossval/app"
	"crossval/domain/physics"
	"crossval/domain/verbal"
	"crossval/internal/engine"
	"crossval/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crossval",
		Short: "Cross-observer validation of physics timelines against model narration",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newSynthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var secondsPerCell float64
	var outPath string

	cmd := &cobra.Command{
		Use:   "validate [physics.json] [verbalization.json]",
		Short: "Validate a physics timeline against a parsed verbalization",
		Long: `Run one validation pass over a physics profile file and a verbalization
profile file, print the report as JSON, and optionally export a workbook.

Example: crossval validate physics.json verbal.json --seconds-per-cell 15 --out report.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0], args[1], secondsPerCell, outPath)
		},
	}

	cmd.Flags().Float64Var(&secondsPerCell, "seconds-per-cell", physics.DefaultInterval, "Cell span in seconds; must match the extractor grid")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional xlsx export path")

	return cmd
}

func runValidate(ctx context.Context, physicsPath, verbalPath string, secondsPerCell float64, outPath string) error {
	var profiles []physics.Profile
	if err := readJSONFile(physicsPath, &profiles); err != nil {
		return fmt.Errorf("failed to read physics profiles: %w", err)
	}

	var verb verbal.Profile
	if err := readJSONFile(verbalPath, &verb); err != nil {
		return fmt.Errorf("failed to read verbalization profile: %w", err)
	}

	repo := testkit.NewInMemoryReportRepository()
	eng := engine.New(engine.Config{SecondsPerCell: secondsPerCell})
	svc := app.NewValidationService(eng, repo, nil)

	rep, err := svc.Run(ctx, app.RunInput{Physics: profiles, Verbalization: verb})
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := excel.NewReportWriter().WriteReport(outPath, rep); err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Workbook written to %s\n", outPath)
	}

	return printJSON(rep)
}

func newSynthCmd() *cobra.Command {
	var seed int64
	var cells int
	var motionRatio float64
	var meanIntensity float64
	var jitterDeg float64
	var silent bool

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Validate a seeded synthetic input pair",
		Long: `Generate a deterministic synthetic physics timeline and verbalization,
run the validation, and print the report as JSON. Useful for smoke-testing
the pipeline without an extractor or a model.

Example: crossval synth --seed 42 --cells 40 --motion-ratio 0.6 --silent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit := testkit.NewKit(seed)
			profiles := kit.PhysicsProfiles(cells, motionRatio, meanIntensity)

			verb := kit.MatchingVerbalization(profiles, jitterDeg)
			if silent {
				verb = kit.SilentVerbalization()
			}

			repo := testkit.NewInMemoryReportRepository()
			eng := engine.New(engine.Config{SecondsPerCell: kit.Grid().Interval})
			svc := app.NewValidationService(eng, repo, nil)

			rep, err := svc.Run(cmd.Context(), app.RunInput{Physics: profiles, Verbalization: verb})
			if err != nil {
				return err
			}
			return printJSON(rep)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic fixtures")
	cmd.Flags().IntVar(&cells, "cells", 40, "Number of timeline cells")
	cmd.Flags().Float64Var(&motionRatio, "motion-ratio", 0.6, "Fraction of cells carrying motion")
	cmd.Flags().Float64Var(&meanIntensity, "mean-intensity", 0.5, "Mean intensity of motion cells")
	cmd.Flags().Float64Var(&jitterDeg, "jitter-deg", 10, "Angular noise on claimed directions")
	cmd.Flags().BoolVar(&silent, "silent", false, "Use a verbalization that reports nothing")

	return cmd
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
