package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/missingplot-go/internal/config"
	"github.com/ukaji3/missingplot-go/pkg/missingplot"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/output"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/parser"
)

// errDesignsFailed is returned when at least one design of a run failed.
var errDesignsFailed = errors.New("estimation failed")

type estimateFlags struct {
	outputPath        string
	format            string
	pretty            bool
	sheet             string
	rangeStr          string
	rowField          string
	colField          string
	valueField        string
	missingTokens     []string
	noHeader          bool
	sameColumnFormula string
	writeBack         string
	workers           int
	spssVariable      string
	spssPrecision     int
}

func newEstimateCmd(g *globalFlags) *cobra.Command {
	var f estimateFlags

	cmd := &cobra.Command{
		Use:   "estimate [input.csv|input.xlsx]...",
		Short: "Estimate the missing cells of one or more designs",
		Long: `Reads row label, column label and value records from each input and
estimates its missing cells. An empty value, or one of the --missing tokens,
marks a missing cell. Several inputs are estimated concurrently as a batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closer, err := setup(cmd, g)
			if err != nil {
				return err
			}
			defer closer.Close()
			return runEstimate(cmd, args, &f, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVarP(&f.format, "format", "f", "json", "Output format: json, spss, csv")
	flags.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&f.sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	flags.StringVar(&f.rangeStr, "range", "", "Worksheet range holding the records, e.g. A1:C13")
	flags.StringVar(&f.rowField, "row", "", "Row label field, by header name or 1-based position (default: 1)")
	flags.StringVar(&f.colField, "col", "", "Column label field, by header name or 1-based position (default: 2)")
	flags.StringVar(&f.valueField, "value", "", "Value field, by header name or 1-based position (default: 3)")
	flags.StringSliceVar(&f.missingTokens, "missing", nil, "Values read as missing besides empty fields (default from config: .,NA)")
	flags.BoolVar(&f.noHeader, "no-header", false, "The first record is data, not a header")
	flags.StringVar(&f.sameColumnFormula, "same-column-formula", "", "Estimator for two missing cells in one column: symmetric, literal")
	flags.StringVar(&f.writeBack, "write-back", "", "Write a completed copy of the input (.csv or .xlsx) to this path")
	flags.IntVar(&f.workers, "workers", 0, "Designs estimated concurrently (default from config)")
	flags.StringVar(&f.spssVariable, "spss-variable", "", "Variable assigned by SPSS syntax (default from config)")
	flags.IntVar(&f.spssPrecision, "spss-precision", -2, "Decimals in SPSS syntax, -1 for full precision, at most 15 (default from config)")

	return cmd
}

func runEstimate(cmd *cobra.Command, inputs []string, f *estimateFlags, cfg *config.Config, logger *slog.Logger) error {
	opts, readOpts, spssOpts, workers, err := resolveOptions(cmd, f, cfg)
	if err != nil {
		return err
	}
	if opts.SameColumnFormula == missingplot.SameColumnLiteral {
		logger.Warn("literal same-column formula selected; its estimates do not reproduce additive data")
	}

	switch f.format {
	case "json", "spss":
	case "csv":
		if len(inputs) > 1 {
			return fmt.Errorf("csv output takes a single input, got %d", len(inputs))
		}
	default:
		return fmt.Errorf("invalid format: %s (must be json, spss, or csv)", f.format)
	}
	if f.writeBack != "" && len(inputs) > 1 {
		return fmt.Errorf("--write-back takes a single input, got %d", len(inputs))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tables, results := loadAndEstimate(ctx, inputs, opts, readOpts, workers, logger)

	var data []byte
	switch {
	case len(inputs) == 1 && results[0].Err != nil:
		return fmt.Errorf("%s: %w", inputs[0], results[0].Err)
	case len(inputs) == 1:
		data, err = render(f, tables[0], results[0].Result, spssOpts)
	default:
		data, err = renderBatch(f, results, spssOpts)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), f.outputPath, data); err != nil {
		return err
	}

	if f.writeBack != "" {
		if err := writeBack(inputs[0], f.writeBack, readOpts.Sheet, tables[0], results[0].Result); err != nil {
			return fmt.Errorf("write-back failed: %w", err)
		}
		logger.Info("completed copy written", slog.String("path", f.writeBack))
	}

	for _, r := range results {
		if r.Err != nil {
			return errDesignsFailed
		}
	}
	return nil
}

// resolveOptions merges flags over configuration.
func resolveOptions(cmd *cobra.Command, f *estimateFlags, cfg *config.Config) (missingplot.Options, parser.Options, output.SPSSOptions, int, error) {
	formula := cfg.Estimation.SameColumnFormula
	if cmd.Flags().Changed("same-column-formula") {
		formula = f.sameColumnFormula
	}
	sameCol, err := missingplot.ParseSameColumnFormula(formula)
	if err != nil {
		return missingplot.Options{}, parser.Options{}, output.SPSSOptions{}, 0, err
	}
	opts := missingplot.Options{SameColumnFormula: sameCol}

	readOpts := parser.Options{
		RowField:      f.rowField,
		ColField:      f.colField,
		ValueField:    f.valueField,
		MissingTokens: cfg.Estimation.MissingTokens,
		NoHeader:      f.noHeader,
		Sheet:         f.sheet,
		Range:         f.rangeStr,
	}
	if cmd.Flags().Changed("missing") {
		readOpts.MissingTokens = f.missingTokens
	}

	spssOpts := output.SPSSOptions{
		Variable:  cfg.Estimation.SPSSVariable,
		Precision: cfg.Estimation.SPSSPrecision,
	}
	if f.spssVariable != "" {
		spssOpts.Variable = f.spssVariable
	}
	if cmd.Flags().Changed("spss-precision") {
		if f.spssPrecision < -1 || f.spssPrecision > 15 {
			return opts, readOpts, spssOpts, 0, fmt.Errorf("invalid --spss-precision: %d", f.spssPrecision)
		}
		spssOpts.Precision = f.spssPrecision
	}

	workers := cfg.Estimation.Workers
	if f.workers > 0 {
		workers = f.workers
	}

	return opts, readOpts, spssOpts, workers, nil
}

// loadAndEstimate reads every input and estimates the designs that loaded.
// tables and results are indexed like inputs.
func loadAndEstimate(ctx context.Context, inputs []string, opts missingplot.Options, readOpts parser.Options, workers int, logger *slog.Logger) ([]*models.Table, []missingplot.BatchResult) {
	tables := make([]*models.Table, len(inputs))
	loadErrs := make([]error, len(inputs))
	var designs []missingplot.Design
	var positions []int
	for i, in := range inputs {
		t, err := parser.Load(in, readOpts)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		tables[i] = t
		designs = append(designs, missingplot.Design{Name: in, Table: t})
		positions = append(positions, i)
	}

	estimated := missingplot.EstimateBatch(ctx, designs, opts, workers)

	results := make([]missingplot.BatchResult, len(inputs))
	for i, in := range inputs {
		results[i] = missingplot.BatchResult{Name: in, Err: loadErrs[i]}
	}
	for j, r := range estimated {
		results[positions[j]] = r
	}

	for _, r := range results {
		logResult(logger, r)
	}
	return tables, results
}

func logResult(logger *slog.Logger, r missingplot.BatchResult) {
	if r.Err != nil {
		logger.Error("design failed", slog.String("input", r.Name), slog.String("error", r.Err.Error()))
		return
	}

	res := r.Result
	logger.Debug("formula inputs",
		slog.String("input", r.Name),
		slog.String("topology", res.Topology),
		slog.Int("r", res.Inputs.Rows),
		slog.Int("c", res.Inputs.Cols),
		slog.Float64("G", res.Inputs.Grand),
		slog.Any("row_sums", res.Inputs.RowSums),
		slog.Any("col_sums", res.Inputs.ColSums))
	for _, e := range res.Estimates {
		logger.Info(fmt.Sprintf("estimated value for row %s and column %s = %.2f", e.Row, e.Col, e.Value),
			slog.String("input", r.Name),
			slog.String("topology", res.Topology),
			slog.Int("index", e.Index),
			slog.Float64("value", e.Value))
	}
	if !res.Exact {
		logger.Warn("estimates are approximate for this topology",
			slog.String("input", r.Name),
			slog.String("topology", res.Topology),
			slog.String("formula", res.Formula))
	}
}

func render(f *estimateFlags, t *models.Table, res *models.EstimationResult, spssOpts output.SPSSOptions) ([]byte, error) {
	switch f.format {
	case "spss":
		return []byte(output.SPSSSyntax(res, spssOpts)), nil
	case "csv":
		filled, err := missingplot.Fill(t, res)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		if err := output.WriteCSV(&b, filled, nil); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	default:
		return output.ToJSON(res, f.pretty)
	}
}

func renderBatch(f *estimateFlags, results []missingplot.BatchResult, spssOpts output.SPSSOptions) ([]byte, error) {
	if f.format != "spss" {
		return output.BatchToJSON(missingplot.Items(results), f.pretty)
	}

	var b strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "* %s: %s.\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(&b, "* Design %s.\n", r.Name)
		b.WriteString(output.SPSSSyntax(r.Result, spssOpts))
	}
	return []byte(b.String()), nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(stdout, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeBack writes a completed copy of input to dst in the input's format.
func writeBack(input, dst, sheet string, t *models.Table, res *models.EstimationResult) error {
	format, err := parser.DetectFormat(input)
	if err != nil {
		return err
	}

	if format == parser.FormatXLSX {
		return output.WriteXLSX(input, dst, sheet, t, res)
	}

	filled, err := missingplot.Fill(t, res)
	if err != nil {
		return err
	}
	file, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := output.WriteCSV(file, filled, nil); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
