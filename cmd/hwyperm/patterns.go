package main

import (
	"io"
	"os"

	"github.com/ajroetker/hwyperm/hwy"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// patternFile is the YAML pattern set read by the patterns command:
//
//	patterns:
//	  - name: swap-pairs
//	    selectors: [1, 0]
//	  - name: zero-odd
//	    selectors: [0, -1, 2, -1]
//	    elem: [4, 8]
type patternFile struct {
	Patterns []patternSpec `yaml:"patterns"`
}

type patternSpec struct {
	Name      string `yaml:"name"`
	Selectors []int  `yaml:"selectors"`
	Elem      []int  `yaml:"elem,omitempty"`
}

// patternReport is one entry of the YAML output.
type patternReport struct {
	Name    string       `yaml:"name"`
	Pattern string       `yaml:"pattern"`
	Sources int          `yaml:"sources"`
	Zeroing bool         `yaml:"zeroing"`
	Rows    []patternRow `yaml:"compiled"`
}

func newPatternsCmd() *cobra.Command {
	var file, format string
	cmd := &cobra.Command{
		Use:   "patterns -f FILE",
		Short: "Compile a YAML pattern set and print the masks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return errors.Wrap(err, "reading pattern set")
				}
				defer f.Close()
				in = f
			}
			set, err := readPatterns(in)
			if err != nil {
				return err
			}
			compiled, err := compilePatterns(set)
			if err != nil {
				return err
			}
			switch format {
			case "table":
				for i, c := range compiled {
					printPattern(cmd.OutOrStdout(), set.Patterns[i].Name, c.p, c.sizes)
				}
				return nil
			case "yaml":
				return writeReport(cmd.OutOrStdout(), set, compiled)
			}
			return errors.Newf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Pattern set file, - for stdin")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or yaml")
	return cmd
}

func readPatterns(r io.Reader) (patternFile, error) {
	var set patternFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return set, errors.Wrap(err, "parsing pattern set")
	}
	if len(set.Patterns) == 0 {
		return set, errors.New("pattern set is empty")
	}
	if dups := lo.FindDuplicates(lo.Map(set.Patterns, func(p patternSpec, _ int) string { return p.Name })); len(dups) > 0 {
		return set, errors.Newf("duplicate pattern names %v", dups)
	}
	return set, nil
}

type compiledSpec struct {
	p     hwy.Pattern
	sizes []int
}

// compilePatterns compiles every entry and reports all invalid ones at once.
func compilePatterns(set patternFile) ([]compiledSpec, error) {
	var errs error
	out := make([]compiledSpec, len(set.Patterns))
	for i, spec := range set.Patterns {
		p, err := hwy.NewPattern(spec.Selectors...)
		if err == nil {
			err = checkElemSizes(spec.Elem)
		}
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "pattern %q", spec.Name))
			continue
		}
		out[i] = compiledSpec{p: p, sizes: lo.Ternary(len(spec.Elem) > 0, spec.Elem, elemSizes)}
	}
	return out, errs
}

func writeReport(w io.Writer, set patternFile, compiled []compiledSpec) error {
	reports := lo.Map(compiled, func(c compiledSpec, i int) patternReport {
		return patternReport{
			Name:    set.Patterns[i].Name,
			Pattern: c.p.String(),
			Sources: c.p.Sources(),
			Zeroing: c.p.Zeroing(),
			Rows:    describe(c.p, c.sizes),
		}
	})
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return errors.Wrap(err, "writing report")
	}
	return enc.Close()
}
