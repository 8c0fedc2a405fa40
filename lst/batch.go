// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch runs fn on each of the provided files, with at most n
// concurrent invocations (no limit if n <= 0).
//
// Files are processed independently: the failure of one file does not
// stop the processing of the others. Batch returns the error of each
// invocation, in the order of fnames.
// Files not yet started when ctx is done are reported with ctx.Err().
func Batch(ctx context.Context, fnames []string, n int, fn func(ctx context.Context, fname string) error) []error {
	var (
		grp  errgroup.Group
		errs = make([]error, len(fnames))
	)
	if n > 0 {
		grp.SetLimit(n)
	}

	for i := range fnames {
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(ctx, fnames[i])
			return nil
		})
	}
	_ = grp.Wait()

	return errs
}
