package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/sitebuilder/internal/scaffold"
)

// NewCmd scaffolds a site.
type NewCmd struct {
	Name      string `arg:"" help:"Site name; also used for the title"`
	Directory string `arg:"" optional:"" help:"Target directory (defaults to the name)"`
	Author    string `help:"Author for the sample pages" env:"SITEBUILDER_AUTHOR"`
}

func (n *NewCmd) Run(g *Global, _ *CLI) error {
	res, err := scaffold.New(scaffold.Options{
		Name:   n.Name,
		Dir:    n.Directory,
		Author: n.Author,
	})
	if err != nil {
		return err
	}
	g.Logger.Debug("Site created", "files", len(res.Files))
	_, _ = fmt.Fprintf(os.Stdout, "Created %s\nRun: sitebuilder --site %s serve\n", res.Dir, res.Dir)
	return nil
}
