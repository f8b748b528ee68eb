package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/number-classifier/internal/cli"
	"github.com/Veraticus/number-classifier/internal/model"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find numbers in a range with given properties",
		Long: `Classify every integer in [from, to] and list those carrying all of
the requested properties.

Properties: armstrong, even, odd, prime, composite, perfect, imperfect.

Examples:
  numclass scan --from 1 --to 10000 --property perfect
  numclass scan --to 100000 --property armstrong --property odd
  numclass scan --from 1 --to 1000 --property prime --limit 10 --output json`,
		RunE: runScan,
	}

	cmd.Flags().Int64("from", 0, "first number of the range (inclusive)")
	cmd.Flags().Int64("to", 1000, "last number of the range (inclusive)")
	cmd.Flags().StringSlice("property", nil, "required property (repeatable)")
	cmd.Flags().Int("limit", 0, "stop after this many matches (0 = no limit)")
	cmd.Flags().StringP("output", "o", outputText, "output format (text, json)")
	cmd.Flags().Bool("extended", false, "include prime/composite and perfect/imperfect tags")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

// scanOptions holds the validated scan flags.
type scanOptions struct {
	output     string
	properties []model.Property
	from       int64
	to         int64
	limit      int
	progress   bool
}

func parseScanOptions(cmd *cobra.Command) (scanOptions, error) {
	var opts scanOptions
	opts.from, _ = cmd.Flags().GetInt64("from")
	opts.to, _ = cmd.Flags().GetInt64("to")
	opts.limit, _ = cmd.Flags().GetInt("limit")
	opts.output, _ = cmd.Flags().GetString("output")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	opts.progress = !noProgress

	if opts.from > opts.to {
		return opts, fmt.Errorf("invalid range: --from %d is greater than --to %d", opts.from, opts.to)
	}
	if opts.limit < 0 {
		return opts, fmt.Errorf("invalid limit: %d", opts.limit)
	}
	if opts.output != outputText && opts.output != outputJSON {
		return opts, fmt.Errorf("invalid output format: %s (must be text or json)", opts.output)
	}

	names, _ := cmd.Flags().GetStringSlice("property")
	for _, name := range names {
		p, ok := model.ParseProperty(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return opts, fmt.Errorf("unknown property: %s", name)
		}
		opts.properties = append(opts.properties, p)
	}
	return opts, nil
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts, err := parseScanOptions(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng := newEngine(cmd, cfg)

	progress := io.Discard
	if opts.progress {
		progress = cmd.ErrOrStderr()
	}
	// Span computed in big arithmetic since to-from can overflow int64.
	span := new(big.Int).Sub(big.NewInt(opts.to), big.NewInt(opts.from))
	span.Add(span, big.NewInt(1))
	total := int64(-1)
	if span.IsInt64() {
		total = span.Int64()
	}
	bar := cli.NewProgressBar(progress, total, cli.SearchIcon+" Scanning")

	var (
		matches     []model.ClassificationRecord
		scanned     int64
		interrupted bool
	)
	for i := opts.from; ; i++ {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		record, err := eng.ClassifyContext(ctx, big.NewInt(i))
		if err != nil {
			if ctx.Err() != nil {
				interrupted = true
				break
			}
			return fmt.Errorf("scan failed at %d: %w", i, err)
		}
		scanned++
		_ = bar.Add64(1)

		if matchesAll(record, opts.properties) {
			matches = append(matches, record)
			if opts.limit > 0 && len(matches) >= opts.limit {
				break
			}
		}
		if i == opts.to {
			break
		}
	}
	_ = bar.Finish()

	if interrupted {
		slog.Debug("Scan interrupted", "scanned", scanned, "matches", len(matches))
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(
			fmt.Sprintf("Scan interrupted after %d numbers; showing matches so far", scanned)))
	}

	slog.Debug("Scan complete", "from", opts.from, "to", opts.to, "scanned", scanned, "matches", len(matches))
	return writeScanResults(cmd.OutOrStdout(), opts, matches)
}

func matchesAll(record model.ClassificationRecord, props []model.Property) bool {
	for _, p := range props {
		if !record.HasProperty(p) {
			return false
		}
	}
	return true
}

func writeScanResults(w io.Writer, opts scanOptions, matches []model.ClassificationRecord) error {
	if opts.output == outputJSON {
		out := make([]recordOutput, 0, len(matches))
		for _, m := range matches {
			out = append(out, newRecordOutput(m, ""))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("Scan %d to %d", opts.from, opts.to)))
	if len(opts.properties) > 0 {
		names := make([]string, len(opts.properties))
		for i, p := range opts.properties {
			names[i] = string(p)
		}
		fmt.Fprintln(w, cli.SubtitleStyle.Render("Properties: "+strings.Join(names, ", ")))
	}

	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No matching numbers found"))
		return err
	}
	if _, err := fmt.Fprintln(w, cli.RenderTable(matches)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%d matching numbers", len(matches))))
	return err
}
