package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"convertify/internal/service/converter"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a file locally",
	Long: `Convert reads <file>, takes the source format from its extension and writes
<name>.<target> into the output directory. When that path is the input file
itself, <name>-converted.<target> is written instead. Nothing is uploaded or
recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("to")
		outDir, _ := cmd.Flags().GetString("out")
		return runConvert(cmd.Context(), args[0], target, outDir, cmd)
	},
}

func init() {
	convertCmd.Flags().StringP("to", "t", "", "target format (required)")
	convertCmd.Flags().StringP("out", "o", ".", "output directory")
	_ = convertCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(ctx context.Context, input, target, outDir string, cmd *cobra.Command) error {
	payload, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	dispatcher := converter.NewDispatcher(converter.Config{
		SofficePath:     cfg.SofficePath,
		HeifEncoderPath: cfg.HeifEncoderPath,
		ScratchRoot:     cfg.ScratchDir,
	}, logger)

	ctx, cancel := context.WithTimeout(ctx, cfg.ConversionTimeout)
	defer cancel()

	base := filepath.Base(input)
	source := converter.NormalizeFormat(filepath.Ext(base))
	result, err := dispatcher.Convert(ctx, payload, source, target)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	out := outputPath(input, outDir, converter.NormalizeFormat(target))
	if err := os.WriteFile(out, result.Bytes, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d bytes, %s)\n", input, out, len(result.Bytes), result.Kind)
	return nil
}

// outputPath names the converted file after the input, adding a suffix when
// the plain name would overwrite the input.
func outputPath(input, outDir, target string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	out := filepath.Join(outDir, stem+"."+target)
	if samePath(input, out) {
		out = filepath.Join(outDir, stem+"-converted."+target)
	}
	return out
}

func samePath(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
