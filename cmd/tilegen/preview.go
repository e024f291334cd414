package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gogpu/tilegen"
)

func newPreviewCmd(g *globalFlags) *cobra.Command {
	var (
		o    outputFlags
		tile string
		node string
		size int
	)
	cmd := &cobra.Command{
		Use:   "preview <document>",
		Short: "Render one node of a tile graph on its own",
		Long: `Renders a single node the way the editor previews it: shapes and patterns
with their decorators, modifiers as grayscale noise, decorators over a full
mask. Without --node the whole graph is drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.settings()
			if err != nil {
				return err
			}
			if err := o.apply(&s); err != nil {
				return err
			}
			d, err := loadDocument(args[0], s)
			if err != nil {
				return err
			}

			t := findTile(d.Project, tile)
			if t == nil {
				return fmt.Errorf("tile %q: %w", tile, tilegen.ErrNodeNotFound)
			}
			view, err := tilegen.ParseView(s.Render.View)
			if err != nil {
				return err
			}
			graph := t.Graph(view)
			if graph == nil {
				return fmt.Errorf("tile %q has no %s graph", t.Name, view)
			}
			n := graph.Root()
			if node != "" {
				if n = findNode(graph, node); n == nil {
					return fmt.Errorf("node %q: %w", node, tilegen.ErrNodeNotFound)
				}
			}

			if o.output == "" {
				o.output = fmt.Sprintf("%s-%s.%s", strings.ToLower(t.Name), strings.ToLower(n.Name), s.Output.Format)
				o.output = strings.ReplaceAll(o.output, " ", "_")
			}
			if err := writeImage(tilegen.Preview(graph, n, size), o.output, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s preview of %s to %s\n", n.Kind, t.Name, o.output)
			return nil
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&tile, "tile", "", "tile name or id")
	cmd.Flags().StringVar(&node, "node", "", "node name or id (default: the root)")
	cmd.Flags().IntVar(&size, "size", 128, "preview edge in pixels")
	_ = cmd.MarkFlagRequired("tile")
	return cmd
}

// findTile returns the tile with the given id or name across all tile sets.
// Names are compared case-insensitively; ties go to the first tile set in
// id order.
func findTile(p *tilegen.Project, key string) *tilegen.Tile {
	if id, err := uuid.Parse(key); err == nil {
		for _, ts := range p.TileSets {
			if t := ts.Tiles[id]; t != nil {
				return t
			}
		}
		return nil
	}
	var found *tilegen.Tile
	var foundSet string
	for _, ts := range p.TileSets {
		for _, t := range ts.Tiles {
			if !strings.EqualFold(t.Name, key) {
				continue
			}
			if found == nil || ts.ID.String() < foundSet {
				found, foundSet = t, ts.ID.String()
			}
		}
	}
	return found
}

// findNode returns the node with the given id or, failing that, the first
// node whose name matches case-insensitively.
func findNode(g *tilegen.Graph, key string) *tilegen.Node {
	if id, err := uuid.Parse(key); err == nil {
		return g.Node(id)
	}
	for _, n := range g.Nodes() {
		if strings.EqualFold(n.Name, key) {
			return n
		}
	}
	return nil
}
