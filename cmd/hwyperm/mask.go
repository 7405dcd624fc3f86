package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/ajroetker/hwyperm/hwy"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// elemSizes are the element sizes every pattern compiles for.
var elemSizes = []int{1, 2, 4, 8}

func newMaskCmd() *cobra.Command {
	var sizes []int
	cmd := &cobra.Command{
		Use:   "mask [--elem N]... -- SELECTOR...",
		Short: "Show the block mask and move of a selector pattern",
		Long: `mask compiles one selector group (0..G-1 first source, G..2G-1 second
source, -1 zero) and prints, for each element size, the move it uses, whether
it crosses 128-bit blocks and the byte mask of one block.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelectors(args)
			if err != nil {
				return err
			}
			p, err := hwy.NewPattern(sel...)
			if err != nil {
				return err
			}
			if err := checkElemSizes(sizes); err != nil {
				return err
			}
			printPattern(cmd.OutOrStdout(), "", p, sizes)
			return nil
		},
	}
	cmd.Flags().IntSliceVarP(&sizes, "elem", "e", elemSizes, "Element sizes in bytes (1, 2, 4, 8)")
	return cmd
}

func parseSelectors(args []string) ([]int, error) {
	sel := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(err, "selector %d", i)
		}
		sel[i] = v
	}
	return sel, nil
}

func checkElemSizes(sizes []int) error {
	bad := lo.Filter(sizes, func(s int, _ int) bool { return !lo.Contains(elemSizes, s) })
	if len(bad) > 0 {
		return errors.WithHint(
			errors.Newf("unsupported element sizes %v", bad),
			"element sizes are 1, 2, 4 or 8 bytes")
	}
	return nil
}

// patternRow is the compiled form of a pattern for one element size.
type patternRow struct {
	Elem     int    `yaml:"elem"`
	Kind     string `yaml:"kind"`
	Locality string `yaml:"locality"`
	Mask     string `yaml:"mask,omitempty"`
}

func describe(p hwy.Pattern, sizes []int) []patternRow {
	return lo.Map(lo.Uniq(sizes), func(es int, _ int) patternRow {
		row := patternRow{
			Elem:     es,
			Kind:     p.Kind(es).String(),
			Locality: p.Locality(es).String(),
		}
		if m, ok := p.Mask(es); ok {
			row.Mask = m.String()
		}
		return row
	})
}

func printPattern(w io.Writer, name string, p hwy.Pattern, sizes []int) {
	if name != "" {
		fmt.Fprintf(w, "%s ", name)
	}
	fmt.Fprintf(w, "%s group=%d sources=%d zeroing=%v\n", p, p.Group(), p.Sources(), p.Zeroing())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ELEM\tKIND\tLOCALITY\tMASK")
	for _, r := range describe(p, sizes) {
		mask := r.Mask
		if mask == "" {
			mask = "-"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", r.Elem, r.Kind, r.Locality, mask)
	}
	tw.Flush()
}
