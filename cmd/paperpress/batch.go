package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/pipeline"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	opts := c.Options(deps.Config.Defaults)

	if issues := deps.Renderer.ValidateOptions(opts); len(issues) > 0 {
		return paperpress.Errorf(paperpress.EINVALID, "invalid conversion options: %s", strings.Join(issues, "; "))
	}

	urls, err := c.readURLs()
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to convert.")
		return nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = deps.Config.Batch.Concurrency
	}
	rps := c.RPS
	if rps <= 0 {
		rps = deps.Config.Batch.RequestsPerSecond
	}

	var delays []time.Duration
	if c.Retries > 0 {
		delays = pipeline.Backoff(c.Retries, time.Second, 2)
	}

	batch := &pipeline.Batch{
		Pipeline:        deps.Pipeline,
		Concurrency:     concurrency,
		ContinueOnError: !c.FailFast,
		RateLimiter:     pipeline.NewDomainLimiter(rps),
		RetryDelays:     delays,
	}

	fmt.Fprintf(deps.Stdout, "Converting %d URLs...\n", len(urls))

	result, runErr := batch.Run(deps.Ctx, urls, opts)
	for _, item := range result.Items {
		if item.Err != nil {
			fmt.Fprintf(deps.Stderr, "  failed  %s: %s\n", item.URL, paperpress.ErrorMessage(item.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "  saved   %s -> %s\n", item.URL, item.Output)
	}
	fmt.Fprintf(deps.Stdout, "Done: %d saved, %d failed.\n", result.Succeeded(), result.Failed())

	return runErr
}

// readURLs loads the URL list from the file argument, or stdin for "-".
func (c *BatchCmd) readURLs() ([]string, error) {
	if c.File == "-" {
		return pipeline.ReadURLList(os.Stdin)
	}
	f, err := os.Open(c.File)
	if err != nil {
		return nil, paperpress.Errorf(paperpress.ENOTFOUND, "cannot open URL file: %v", err)
	}
	defer f.Close()
	return pipeline.ReadURLList(f)
}
