package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Lenient bool `help:"Skip malformed pages instead of aborting the build"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, b.Lenient)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	g.Logger.Info("Starting site build", logfields.Path(root.Site), logfields.Output(cfg.OutputPath()))
	result, err := build.NewBuildService().Run(ctx, build.BuildRequest{Config: cfg})
	if err != nil {
		return err
	}
	printSummary(os.Stdout, result)
	return nil
}

func printSummary(w io.Writer, r *build.BuildResult) {
	_, _ = fmt.Fprintf(w, "Built %d pages, %d indexes, %d assets into %s in %s\n",
		r.Pages, r.Indexes, r.Assets, r.OutputPath, r.Duration.Round(time.Millisecond))
	for _, s := range r.Skipped {
		_, _ = fmt.Fprintf(w, "  skipped %s: %v\n", s.Source, s.Err)
	}
}
