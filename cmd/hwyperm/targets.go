package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ajroetker/hwyperm/hwy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the registered targets, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printTargets(cmd, hwy.Targets(), hwy.CurrentTarget())
			return nil
		},
	}
}

func printTargets(cmd *cobra.Command, targets []hwy.Target, current hwy.Target) {
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tTARGET\tPRIORITY\tREGISTER\tEXECUTION")
	for _, t := range targets {
		mark := ""
		if t == current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d bits\t%s\n", mark, t.Name(), hwy.TargetPriority(t), 8*t.RegisterBytes(),
			lo.Ternary(t.Emulated(), "emulated", "native"))
	}
	tw.Flush()
	fmt.Fprintf(out, "\ncpu supports: %s\n", hwy.DetectedTarget().Name())

	if verbose(cmd) {
		crossing := lo.Filter(hwy.Primitives(), func(p hwy.Primitive, _ int) bool {
			return p.Locality() == hwy.LaneCrossing
		})
		names := lo.Map(crossing, func(p hwy.Primitive, _ int) string { return p.String() })
		fmt.Fprintf(out, "lane-crossing primitives: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(out, "HWY_NO_SIMD=%v HWY_TARGET=%q\n", hwy.NoSimdEnv(), hwy.TargetEnv())
	}
}
