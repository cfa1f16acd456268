package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
)

// newWatchCmd recompiles infile -> outfile every time infile changes on
// disk, using the same flags as compile. Intended for iterating on a
// map in an editor without re-invoking the CLI by hand.
func newWatchCmd(root *RootOptions) *cobra.Command {
	o := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "watch <infile> <outfile>",
		Short: "recompile <infile> into <outfile> on every change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, root, o, args[0], args[1])
		},
	}

	pf := cmd.Flags()
	pf.BoolVarP(&o.csv, "csv", "c", false, "request CSV + BNet sidecar output")
	pf.BoolVarP(&o.sif, "sif", "s", false, "request SIF sidecar output")
	pf.IntVarP(&o.remove, "remove", "r", 0, "component threshold S")
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

func runWatch(cmd *cobra.Command, root *RootOptions, o *compileOptions, infile, outfile string) error {
	ctx, err := buildContext(root)
	if err != nil {
		return err
	}
	logger := ctx.Logger.Named("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(infile)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	recompile := func() {
		if err := runCompile(cmd, root, o, infile, outfile); err != nil {
			logger.Error("recompile failed", logging.Err(err))
			return
		}
		logger.Info("recompiled", logging.String("infile", infile), logging.String("outfile", outfile))
	}

	recompile()
	logger.Info("watching for changes", logging.String("infile", infile))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(infile) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				recompile()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", logging.Err(err))
		}
	}
}
