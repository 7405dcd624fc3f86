package main

import (
	"fmt"

	"github.com/ajroetker/hwyperm/hwy"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var (
		target string
		seed   uint64
		seeds  int
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that targets produce the scalar reference bytes",
		Long: `verify runs every primitive, random patterns, the pack networks and the
transposes on each target and on the scalar target with the same random
inputs. It fails on the first difference per target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets := hwy.Targets()
			if target != "" {
				t, ok := hwy.LookupTarget(target)
				if !ok {
					names := lo.Map(targets, func(t hwy.Target, _ int) string { return t.Name() })
					return errors.WithHintf(errors.Newf("unknown target %q", target), "targets: %v", names)
				}
				targets = []hwy.Target{t}
			}
			return verifyTargets(cmd, targets, seed, max(seeds, 1))
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "Verify only this target")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "First random seed")
	cmd.Flags().IntVar(&seeds, "seeds", 1, "Number of consecutive seeds")
	return cmd
}

func verifyTargets(cmd *cobra.Command, targets []hwy.Target, seed uint64, seeds int) error {
	out := cmd.OutOrStdout()
	var errs error
	for _, t := range targets {
		var err error
		for s := seed; s < seed+uint64(seeds) && err == nil; s++ {
			err = errors.Wrapf(hwy.Verify(t, s), "seed %d", s)
			if verbose(cmd) && err == nil {
				fmt.Fprintf(out, "%s: seed %d ok\n", t.Name(), s)
			}
		}
		if err != nil {
			fmt.Fprintf(out, "%s: FAIL\n", t.Name())
			errs = errors.CombineErrors(errs, err)
			continue
		}
		fmt.Fprintf(out, "%s: ok\n", t.Name())
	}
	return errs
}
