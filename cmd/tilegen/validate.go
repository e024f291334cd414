package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/tilegen"
)

var errDocumentDamaged = errors.New("document has dropped nodes or edges")

func newValidateCmd(g *globalFlags) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a document and report what could not be loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := g.settings(); err != nil {
				return err
			}
			d, err := tilegen.LoadDocument(args[0])
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reports := d.Reports()
			printReports(out, d, reports)
			if strict && len(reports) > 0 {
				return errDocumentDamaged
			}
			fmt.Fprintf(out, "%s: ok (%d areas, %d cells)\n", args[0], len(d.Layer.Areas()), len(d.Layer.Cells()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any node or edge was dropped")
	return cmd
}

func printReports(w io.Writer, d *tilegen.Document, reports []tilegen.TileReport) {
	for _, r := range reports {
		name := r.Tile.String()
		if ts := d.Project.TileSets[r.TileSet]; ts != nil {
			if t := ts.Tiles[r.Tile]; t != nil {
				name = t.Name
			}
		}
		for _, n := range r.Report.Dropped {
			fmt.Fprintf(w, "%s (%s): dropped node %s of type %q: %v\n", name, r.View, n.ID, n.Type, n.Err)
		}
		if r.Report.PrunedEdges > 0 {
			fmt.Fprintf(w, "%s (%s): pruned %d edges\n", name, r.View, r.Report.PrunedEdges)
		}
	}
}
