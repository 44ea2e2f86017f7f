package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var inFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a resume JSON file and save it to the resume store",
		Long:  "Validate a resume against the resume schema and save it to the store named by DATABASE_URL. Prints the stored id.",
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

			a := &app{cfg: cfg, logger: logger}
			defer a.Close()

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("no resume store configured: set DATABASE_URL or store.database_url")
			}

			id, err := st.Save(cmd.Context(), resume)
			if err != nil {
				return fmt.Errorf("failed to save resume: %w", err)
			}
			logger.Info("resume imported", "id", id, "name", resume.Name)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to resume JSON file (- for stdin)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
