package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/observability"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		inFile  string
		outFile string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compile a resume JSON file to PDF",
		Long:  "Render a resume into the LaTeX template and compile it, falling back to the remote compiler when the local one fails. Failures print a diagnostic with a hint.",
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

			printer := observability.NewPrinter(cmd.OutOrStdout())
			res, err := a.service.Export(cmd.Context(), resume)
			if err != nil {
				if d := diagnostic(err); d != nil {
					printer.PrintDiagnostic(d)
				}
				return fmt.Errorf("export failed: %w", err)
			}

			path := outFile
			if path == "" {
				path = filepath.Join(outDir, res.Filename)
			}
			if err := os.WriteFile(path, res.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write PDF: %w", err)
			}
			printer.PrintExport(res, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to resume JSON file (- for stdin)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output PDF (default: sanitized resume name in --dir)")
	cmd.Flags().StringVar(&outDir, "dir", ".", "Directory for the output PDF when --out is not set")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
