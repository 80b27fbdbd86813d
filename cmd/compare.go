package cmd

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/urfave/cli"
)

// ErrImagesDiffer is returned by the compare command when the images differ
// by more than the tolerance
var ErrImagesDiffer = errors.New("images differ")

// Compare two rendered images channel by channel.
func CompareImages(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected two image file arguments")
	}

	a, err := loaders.LoadImage(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := loaders.LoadImage(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	maxDiff, differing, err := loaders.MaxChannelDifference(a, b)
	if err != nil {
		return err
	}

	tolerance := ctx.Int("tolerance")
	logger.Noticef("max channel difference %d, %d pixels differ", maxDiff, differing)
	if maxDiff > tolerance {
		return fmt.Errorf("%w: max channel difference %d exceeds tolerance %d", ErrImagesDiffer, maxDiff, tolerance)
	}
	return nil
}
