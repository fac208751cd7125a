package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeywordsCommand(rt *runtime) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List the terms extracted from a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := rt.readDocument(path)
			if err != nil {
				return err
			}

			keywords := rt.analyzer.Tokenize(text).Sorted()
			if rt.cfg.JSON {
				return writeJSON(cmd.OutOrStdout(), keywords)
			}
			for _, kw := range keywords {
				fmt.Fprintln(cmd.OutOrStdout(), kw)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "document to tokenize (pdf, docx or text)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
