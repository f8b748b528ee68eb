package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/number-classifier/internal/cli"
	"github.com/Veraticus/number-classifier/internal/common"
	"github.com/Veraticus/number-classifier/internal/engine"
	"github.com/Veraticus/number-classifier/internal/model"
	"github.com/Veraticus/number-classifier/internal/service"
)

// Output formats shared by classify and scan.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <number>...",
		Short: "Classify one or more numbers",
		Long: `Classify integers given on the command line.

Numbers are decimal with an optional leading minus sign and may be
arbitrarily large. Separate negative numbers from flags with "--".

Examples:
  numclass classify 371
  numclass classify 6 28 496 --extended
  numclass classify --fact --output json 153
  numclass classify -- -42 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("output", "o", outputText, "output format (text, json, yaml)")
	cmd.Flags().Bool("fact", false, "fetch a fun fact for each number")
	cmd.Flags().Bool("extended", false, "include prime/composite and perfect/imperfect tags")

	return cmd
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", format)
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("output")
	if err := validateOutput(format); err != nil {
		return err
	}
	withFact, _ := cmd.Flags().GetBool("fact")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng := newEngine(cmd, cfg)

	var fetcher service.FactFetcher
	if withFact {
		if fetcher, err = newFetcher(cfg); err != nil {
			return fmt.Errorf("failed to create fact provider: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, arg := range args {
		n, err := engine.Parse(arg)
		if err != nil {
			invalid++
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatError(err.Error()))
			continue
		}

		record, err := eng.ClassifyContext(ctx, n)
		if err != nil {
			return fmt.Errorf("classification of %s interrupted: %w", arg, err)
		}

		fact := ""
		if withFact {
			fact = fetchFact(ctx, fetcher, n)
		}

		if err := writeRecord(out, format, record, fact); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d inputs are not integers: %w", invalid, len(args), common.ErrInvalidFormat)
	}
	return nil
}

// recordOutput is the machine-readable form of a classification.
type recordOutput struct {
	YAMLNumber  yaml.Node `json:"-" yaml:"number"`
	Number      *big.Int  `json:"number" yaml:"-"`
	Parity      string    `json:"parity" yaml:"parity"`
	FunFact     string    `json:"fun_fact,omitempty" yaml:"fun_fact,omitempty"`
	Properties  []string  `json:"properties" yaml:"properties"`
	DigitSum    int       `json:"digit_sum" yaml:"digit_sum"`
	IsPrime     bool      `json:"is_prime" yaml:"is_prime"`
	IsPerfect   bool      `json:"is_perfect" yaml:"is_perfect"`
	IsArmstrong bool      `json:"is_armstrong" yaml:"is_armstrong"`
}

func newRecordOutput(record model.ClassificationRecord, fact string) recordOutput {
	return recordOutput{
		// Tagged as an int so arbitrarily large numbers stay unquoted.
		YAMLNumber:  yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: record.Number.String()},
		Number:      record.Number,
		Parity:      string(record.Parity),
		FunFact:     fact,
		Properties:  record.PropertyStrings(),
		DigitSum:    record.DigitSum,
		IsPrime:     record.IsPrime,
		IsPerfect:   record.IsPerfect,
		IsArmstrong: record.IsArmstrong,
	}
}

func writeRecord(w io.Writer, format string, record model.ClassificationRecord, fact string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newRecordOutput(record, fact)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case outputYAML:
		var b strings.Builder
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(newRecordOutput(record, fact)); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if _, err := fmt.Fprintf(w, "---\n%s", b.String()); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprintln(w, cli.RenderRecord(record, fact)); err != nil {
			return err
		}
	}
	return nil
}
