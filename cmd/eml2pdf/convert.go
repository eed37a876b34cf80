package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	eml2pdf "github.com/alnah/go-eml2pdf"
	"github.com/alnah/go-eml2pdf/internal/config"
	"github.com/alnah/go-eml2pdf/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoOutput         = errors.New("no output directory specified")
	ErrInvalidExtension = errors.New("file must have .eml extension")
	ErrNoMessages       = errors.New("no EML files found")
)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() *eml2pdf.Converter
	Release(*eml2pdf.Converter)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*eml2pdf.ConverterPool)(nil)

// messageJob pairs one source EML with its destination paths.
type messageJob struct {
	SourcePath     string
	OutputPath     string
	AttachmentsDir string
}

// batchParams groups per-batch settings shared across messages.
type batchParams struct {
	overwrite          bool
	extractAttachments bool
}

// runConvert orchestrates the conversion of all discovered messages.
// One message's failure never aborts the batch; a non-nil error is
// returned when any message failed, after the full batch has run.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, cfg *config.Config, pool Pool, env *Environment) error {
	inputPath, outputDir, err := resolvePaths(positional, cfg)
	if err != nil {
		return err
	}

	attachmentsDirName := cfg.Attachments.Dir
	if flags.attachmentsDir != "" {
		attachmentsDirName = flags.attachmentsDir
	}

	jobs, err := discoverMessages(inputPath, outputDir, attachmentsDirName, flags.recursive || cfg.Convert.Recursive)
	if err != nil {
		return fmt.Errorf("discovering messages: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMessages, inputPath)
	}

	params := &batchParams{
		overwrite:          flags.overwrite || cfg.Convert.Overwrite,
		extractAttachments: cfg.Attachments.Enabled && !flags.noAttachments,
	}

	results := convertBatch(ctx, pool, jobs, params)

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", summary.Failed)
	}
	return nil
}

// resolvePaths determines input and output paths from args or config.
func resolvePaths(positional []string, cfg *config.Config) (inputPath, outputDir string, err error) {
	switch len(positional) {
	case 0:
		inputPath = cfg.Input.DefaultDir
		outputDir = cfg.Output.DefaultDir
	case 1:
		inputPath = positional[0]
		outputDir = cfg.Output.DefaultDir
	default:
		inputPath = positional[0]
		outputDir = positional[1]
	}

	if inputPath == "" {
		return "", "", ErrNoInput
	}
	if outputDir == "" {
		return "", "", ErrNoOutput
	}
	return inputPath, outputDir, nil
}

// discoverMessages finds all EML files to convert and computes their
// destination paths: <output_dir>/<stem>.pdf and
// <output_dir>/<attachments-dir>/<stem>/. With recursive set, the input
// directory structure is mirrored under the output directory.
func discoverMessages(inputPath, outputDir, attachmentsDirName string, recursive bool) ([]messageJob, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	// An absolute --attachments-dir is honored as-is; a relative name
	// nests under the output directory.
	attachmentsRoot := attachmentsDirName
	if !filepath.IsAbs(attachmentsRoot) {
		attachmentsRoot = filepath.Join(outputDir, attachmentsDirName)
	}

	if !info.IsDir() {
		if err := validateEMLExtension(inputPath); err != nil {
			return nil, err
		}
		return []messageJob{newMessageJob(inputPath, outputDir, attachmentsRoot, "")}, nil
	}

	var jobs []messageJob

	if !recursive {
		entries, err := os.ReadDir(inputPath)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !isEMLFile(entry.Name()) {
				continue
			}
			jobs = append(jobs, newMessageJob(filepath.Join(inputPath, entry.Name()), outputDir, attachmentsRoot, ""))
		}
		return jobs, nil
	}

	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isEMLFile(path) {
			return nil
		}
		relDir := ""
		if rel, relErr := filepath.Rel(inputPath, path); relErr == nil {
			relDir = filepath.Dir(rel)
			if relDir == "." {
				relDir = ""
			}
		}
		jobs = append(jobs, newMessageJob(path, outputDir, attachmentsRoot, relDir))
		return nil
	})

	return jobs, err
}

// newMessageJob builds the destination paths for one source file.
// relDir is part of both paths so messages with the same stem in
// different subdirectories never share an attachments directory.
func newMessageJob(sourcePath, outputDir, attachmentsRoot, relDir string) messageJob {
	stem := fileutil.Stem(sourcePath)
	return messageJob{
		SourcePath:     sourcePath,
		OutputPath:     filepath.Join(outputDir, relDir, stem+".pdf"),
		AttachmentsDir: filepath.Join(attachmentsRoot, relDir, stem),
	}
}

// isEMLFile reports whether path has a .eml extension (case-insensitive).
func isEMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".eml")
}

// validateEMLExtension checks that the file has a .eml extension.
func validateEMLExtension(path string) error {
	if !isEMLFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// convertBatch processes jobs using the converter pool. Results are
// returned in job order regardless of worker scheduling.
func convertBatch(ctx context.Context, pool Pool, jobs []messageJob, params *batchParams) []eml2pdf.ConversionResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]eml2pdf.ConversionResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = eml2pdf.ConversionResult{
						SourcePath: jobs[idx].SourcePath,
						Status:     eml2pdf.StatusFailed,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = conv.Convert(ctx, eml2pdf.Input{
					SourcePath:         jobs[idx].SourcePath,
					OutputPath:         jobs[idx].OutputPath,
					AttachmentsDir:     jobs[idx].AttachmentsDir,
					ExtractAttachments: params.extractAttachments,
					Overwrite:          params.overwrite,
				})
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// ResultSummary tallies terminal statuses across a batch.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// printResults outputs per-message results and a final summary.
func printResults(results []eml2pdf.ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	var summary ResultSummary

	for _, r := range results {
		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "warning %s: %s\n", r.SourcePath, w)
		}

		switch r.Status {
		case eml2pdf.StatusFailed:
			summary.Failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.SourcePath, r.Err)
		case eml2pdf.StatusSkipped:
			summary.Skipped++
			if !quiet {
				fmt.Fprintf(env.Stdout, "skipped %s: %v\n", r.SourcePath, r.Err)
			}
		default:
			summary.Succeeded++
			if quiet {
				continue
			}
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%d attachment(s), %v)\n",
					r.SourcePath, r.OutputPath, r.AttachmentsWritten, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d skipped, %d failed\n",
			summary.Succeeded, summary.Skipped, summary.Failed)
	}

	return summary
}
