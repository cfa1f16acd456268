package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/sbgnqual/internal/application/compile"
	"github.com/turtacn/sbgnqual/internal/domain/overrides"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/io/reader/celldesigner"
	"github.com/turtacn/sbgnqual/internal/io/writer/bma"
	"github.com/turtacn/sbgnqual/internal/io/writer/bnet"
	"github.com/turtacn/sbgnqual/internal/io/writer/csv"
	"github.com/turtacn/sbgnqual/internal/io/writer/sbmlqual"
	"github.com/turtacn/sbgnqual/internal/io/writer/sif"
)

// compileOptions binds every flag in SPEC_FULL.md §6's CLI table that
// feeds a core parameter.
type compileOptions struct {
	csv             bool
	sif             bool
	remove          int
	fixed           string
	names           bool
	upstream        []string
	downstream      []string
	bmaFlag         bool
	granularity     int
	defaultInput    int
	colourConstant  bool
}

func newCompileCmd(root *RootOptions) *cobra.Command {
	o := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile <infile> <outfile>",
		Short: "compile a CellDesigner/SBGN-PD map into a Boolean logical model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, root, o, args[0], args[1])
		},
	}

	pf := cmd.Flags()
	pf.BoolVarP(&o.csv, "csv", "c", false, "request CSV + BNet sidecar output")
	pf.BoolVarP(&o.sif, "sif", "s", false, "request SIF sidecar output")
	pf.IntVarP(&o.remove, "remove", "r", 0, "component threshold S (drop <S nodes if >0, keep |S| largest if <0)")
	pf.StringVarP(&o.fixed, "fixed", "f", "", "path to a fixed-value overrides table")
	pf.BoolVarP(&o.names, "names", "n", false, "prefer biological names as export ids")
	pf.StringSliceVarP(&o.upstream, "upstream", "u", nil, "keep every species with a path to one of these names")
	pf.StringSliceVarP(&o.downstream, "downstream", "d", nil, "keep every species reachable from one of these names")
	pf.BoolVarP(&o.bmaFlag, "bma", "b", false, "emit BMA-JSON instead of SBML-Qual")
	pf.IntVarP(&o.granularity, "granularity", "g", 1, "BMA variable granularity")
	pf.IntVarP(&o.defaultInput, "input", "i", 0, "BMA default value for free inputs")
	pf.BoolVarP(&o.colourConstant, "colourConstant", "C", false, "use a single BMA fill colour for every variable")

	return cmd
}

func runCompile(cmd *cobra.Command, root *RootOptions, o *compileOptions, infile, outfile string) error {
	ctx, err := buildContext(root)
	if err != nil {
		return err
	}
	logger := ctx.Logger.Named("cli")

	in, err := os.Open(infile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", infile, err)
	}
	defer in.Close()

	m, err := celldesigner.Read(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", infile, err)
	}

	var fixedRows []overrides.Override
	if o.fixed != "" {
		fixedRows, err = readFixedFile(o.fixed)
		if err != nil {
			return err
		}
	}

	params := compile.Params{
		ComponentThreshold: o.remove,
		UpstreamNames:      o.upstream,
		DownstreamNames:    o.downstream,
		PreferNamesAsID:    o.names,
		FixedOverrides:     fixedRows,
	}

	svc := compile.NewService(logger, ctx.Metrics)
	result, err := svc.Compile(context.Background(), m, params)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	for _, w := range result.Warnings {
		logger.Warn("compile warning", logging.Err(w))
	}

	if err := writePrimary(outfile, result, o); err != nil {
		return err
	}
	if o.sif {
		if err := writeSidecar(outfile, ".sif", func(f *os.File) error {
			return sif.Write(f, result.Model, result.Influences)
		}); err != nil {
			return err
		}
	}
	if o.csv {
		if err := writeSidecar(outfile, ".csv", func(f *os.File) error {
			return csv.Write(f, result.Model)
		}); err != nil {
			return err
		}
		if err := writeSidecar(outfile, ".bnet", func(f *os.File) error {
			return bnet.Write(f, result.Model)
		}); err != nil {
			return err
		}
	}

	PrintSuccess(cmd, fmt.Sprintf("compiled %s -> %s (%d species, %d warnings)",
		infile, outfile, result.Model.SpeciesCount(), len(result.Warnings)))
	return nil
}

func writePrimary(outfile string, result *compile.Result, o *compileOptions) error {
	f, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outfile, err)
	}
	defer f.Close()

	modelID := modelIDFromPath(outfile)
	if o.bmaFlag {
		return bma.Write(f, result.Model, result.Influences, modelID, bma.Params{
			Granularity:    o.granularity,
			DefaultInput:   o.defaultInput,
			ColourConstant: o.colourConstant,
		})
	}
	return sbmlqual.Write(f, result.Model, modelID)
}

func writeSidecar(outfile, ext string, fn func(*os.File) error) error {
	path := strings.TrimSuffix(outfile, filepath.Ext(outfile)) + ext
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

func modelIDFromPath(outfile string) string {
	base := filepath.Base(outfile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
