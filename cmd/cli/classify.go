package main

import (
	"errors"

	"github.com/spf13/cobra"

	"newscheck/internal/ioformats"
	"newscheck/internal/models"
)

var (
	classifyText string
	classifyURL  string
	classifyJSON bool
)

var classifyCmd = &cobra.Command{
	Use:     "classify",
	Short:   "Classify one article given as text or URL",
	Args:    cobra.NoArgs,
	PreRunE: setup,
	RunE:    runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyText, "text", "", "article text")
	classifyCmd.Flags().StringVar(&classifyURL, "url", "", "article URL to scrape")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the full analysis as JSON")
	classifyCmd.MarkFlagsMutuallyExclusive("text", "url")
	classifyCmd.MarkFlagsOneRequired("text", "url")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if analyzer == nil {
		return errors.New("analyzer not configured")
	}
	ctx := cmd.Context()

	var (
		an  models.Analysis
		err error
	)
	if classifyURL != "" {
		an, err = analyzer.AnalyzeURL(ctx, classifyURL)
	} else {
		an, err = analyzer.AnalyzeText(ctx, classifyText)
	}
	if err != nil {
		return userError(err)
	}

	if classifyJSON {
		return ioformats.NewNDJSONWriter(cmd.OutOrStdout()).Write(an)
	}
	cmd.Println(verdict(an.Prediction))
	return nil
}
