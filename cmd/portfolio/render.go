package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/observability"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		inFile  string
		outFile string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a resume JSON file to LaTeX without compiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			resume, err := readResume(cmd.InOrStdin(), inFile)
			if err != nil {
				return err
			}

			a := newApp(cmd.Context(), cfg, logger)
			defer a.Close()

			if summary {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintResumeSummary(resume)
			}

			doc, err := a.service.Render(resume)
			if err != nil {
				if d := diagnostic(err); d != nil {
					observability.NewPrinter(cmd.ErrOrStderr()).PrintDiagnostic(d)
				}
				return fmt.Errorf("render failed: %w", err)
			}

			if outFile == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(outFile, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write LaTeX file: %w", err)
			}
			logger.Info("rendered resume", "out", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to resume JSON file (- for stdin)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output .tex file (default: stdout)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a section summary to stderr")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
