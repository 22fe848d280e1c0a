/*
NAME
  batch.go

DESCRIPTION
  batch.go provides concurrent conversion of many DRC recording files.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package convert

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch converts each of inputs, running at most c.Jobs conversions at once.
// Outputs are named by Config.OutputDir and the input file name. Each file is
// decoded sequentially; only independent files are converted concurrently.
// The first failure cancels conversions not yet started and is returned with
// the results of those that completed, in input order.
func Batch(ctx context.Context, c *Config, inputs []string) ([]Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(int(c.Jobs))

	results := make([]Result, len(inputs))
	done := make([]bool, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}
			r, err := Convert(c, in, c.outputFor(in))
			if err != nil {
				c.Logger.Error("could not convert recording", "input", in, "error", err.Error())
				return fmt.Errorf("%s: %w", in, err)
			}
			results[i], done[i] = r, true
			return nil
		})
	}
	err := g.Wait()

	var completed []Result
	for i, r := range results {
		if done[i] {
			completed = append(completed, r)
		}
	}
	return completed, err
}
