package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/2beens/repvision/internal/analysis"
	"github.com/2beens/repvision/internal/config"
	"github.com/2beens/repvision/internal/exercise"
	"github.com/2beens/repvision/internal/pose"
)

type cliOptions struct {
	configPath string
	env        string

	exerciseName string
	file         string
	telemetry    bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "repcount",
		Short:         "repcount - classify exercise repetitions from pose landmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config with exercise overrides (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "development", "config environment [dev | development | prod | production]")
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an NDJSON landmark file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runAnalyze(ctx, opts, stdin, stdout)
		},
	}
	analyzeCmd.Flags().StringVarP(&opts.exerciseName, "exercise", "e", "", "exercise name, e.g. squat")
	analyzeCmd.Flags().StringVarP(&opts.file, "file", "f", "-", "landmark file, - for stdin")
	analyzeCmd.Flags().BoolVarP(&opts.telemetry, "telemetry", "t", false, "print per-frame telemetry lines before the result")
	_ = analyzeCmd.MarkFlagRequired("exercise")

	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "List supported exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercises(opts, stdout)
		},
	}

	rootCmd.AddCommand(analyzeCmd, exercisesCmd)
	return rootCmd
}

func main() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func loadRegistry(opts *cliOptions) (*exercise.Registry, error) {
	if opts.configPath == "" {
		return exercise.NewDefaultRegistry(nil)
	}
	cfg, err := config.Load(opts.env, opts.configPath)
	if err != nil {
		return nil, err
	}
	return exercise.NewDefaultRegistry(cfg.Exercises)
}

func runAnalyze(ctx context.Context, opts *cliOptions, stdin io.Reader, stdout io.Writer) error {
	registry, err := loadRegistry(opts)
	if err != nil {
		return err
	}

	input := stdin
	if opts.file != "-" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("open landmark file: %w", err)
		}
		defer f.Close()
		input = f
	}

	encoder := json.NewEncoder(stdout)
	var observer analysis.Observer
	if opts.telemetry {
		observer = analysis.ObserverFunc(func(t analysis.Telemetry) {
			_ = encoder.Encode(t)
		})
	}

	analyzer := analysis.NewAnalyzer(registry, nil)
	report, err := analyzer.Analyze(ctx, opts.exerciseName, pose.NewDecoderStream(input), observer)
	if err != nil {
		return err
	}

	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func runExercises(opts *cliOptions, stdout io.Writer) error {
	registry, err := loadRegistry(opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tALIASES\tANGLE\tMODE\tEXTEND\tCONTRACT\tMARGIN\tCHECKS")
	for _, p := range registry.Profiles() {
		checks := make([]string, 0, len(p.Checks))
		for _, c := range p.Checks {
			checks = append(checks, c.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s-%s-%s\t%s\t%.0f\t%.0f\t%.0f\t%s\n",
			p.Name,
			strings.Join(p.Aliases, ","),
			p.Primary.A, p.Primary.Vertex, p.Primary.C,
			p.Dimensionality,
			p.ExtendThreshold, p.ContractThreshold, p.Margin,
			strings.Join(checks, ","),
		)
	}
	return w.Flush()
}
