package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"newscheck/internal/crawler"
	"newscheck/internal/ioformats"
	"newscheck/internal/models"
	"newscheck/internal/pipeline"
)

var (
	batchInput       string
	batchFeed        string
	batchOutput      string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify every article listed in a file or feed",
	Long: `Reads article URLs from a CSV ('url' column), NDJSON or plain text file,
or from the items of an RSS/Atom feed, and classifies them with bounded
concurrency. One NDJSON record per URL is written to --output (default
stdout), in input order.`,
	Args:    cobra.NoArgs,
	PreRunE: setup,
	RunE:    runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "file listing article URLs")
	batchCmd.Flags().StringVar(&batchFeed, "feed", "", "RSS/Atom feed URL")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output NDJSON file (default stdout)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "worker concurrency")
	batchCmd.MarkFlagsMutuallyExclusive("input", "feed")
	batchCmd.MarkFlagsOneRequired("input", "feed")
	rootCmd.AddCommand(batchCmd)
}

type batchRecord struct {
	URL        string             `json:"url"`
	Label      string             `json:"label,omitempty"`
	Confidence string             `json:"confidence,omitempty"`
	Prediction *models.Prediction `json:"prediction,omitempty"`
	Error      string             `json:"error,omitempty"`
	Kind       pipeline.ErrorKind `json:"kind,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	if analyzer == nil {
		return errors.New("analyzer not configured")
	}
	ctx := cmd.Context()

	var (
		urls []string
		err  error
	)
	if batchFeed != "" {
		urls, err = ioformats.ReadFeed(ctx, batchFeed, crawler.BrowserUserAgent)
	} else {
		urls, err = ioformats.ReadURLs(batchInput)
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	out := ioformats.NewNDJSONWriter(w)

	workers := batchConcurrency
	if workers < 1 {
		workers = 1
	}
	records := make([]batchRecord, len(urls))
	sem := make(chan struct{}, workers)
	done := make(chan int, len(urls))

	for i, u := range urls {
		i, u := i, u
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- i }()
			records[i] = classifyOne(ctx, u)
		}()
	}
	for range urls {
		<-done
	}

	var failed int
	for _, rec := range records {
		if rec.Error != "" {
			failed++
		}
		if err := out.Write(rec); err != nil {
			return err
		}
	}
	cmd.PrintErrf("classified %d of %d articles\n", len(urls)-failed, len(urls))
	return nil
}

func classifyOne(ctx context.Context, u string) batchRecord {
	rec := batchRecord{URL: u}
	an, err := analyzer.AnalyzeURL(ctx, u)
	if err != nil {
		rec.Error = err.Error()
		rec.Kind = pipeline.KindOf(err)
		return rec
	}
	p := an.Prediction
	rec.Label = p.Label
	rec.Confidence = an.Confidence
	rec.Prediction = &p
	return rec
}
