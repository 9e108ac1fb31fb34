package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/fs"
)

// Run lists stored runs, newest first.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Store.FindRuns(deps.Ctx, c.Limit, 0)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hdrmap.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			r.RunID,
			r.StartedAt.Format(time.RFC3339),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.IndexURL,
		)
	}
	return nil
}

// Run prints the header map of a stored run as JSON, or its page outcomes.
func (c *ShowCmd) Run(deps *Dependencies) error {
	headers, err := deps.Store.FindHeaderMap(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hdrmap.ErrorMessage(err))
		return err
	}

	if c.Pages {
		pages, err := deps.Store.FindPages(deps.Ctx, c.RunID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", hdrmap.ErrorMessage(err))
			return err
		}
		for _, p := range pages {
			fmt.Fprintf(deps.Stdout, "%-10s  %s  %s\n", p.Status, p.URL, p.Header)
		}
		return nil
	}

	data, err := fs.MarshalHeaders(headers, "  ")
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(data)
	return err
}
