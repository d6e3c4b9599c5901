package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/manifest/blueprint"
	"github.com/npillmayer/manifest/dom"
	"github.com/npillmayer/manifest/dom/domdbg"
	"github.com/npillmayer/manifest/dom/htmlrender"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <blueprint.yaml>",
	Short: "Build a blueprint and write it to stdout",
	Long: `Builds the node tree of a blueprint and writes it as an HTML page (format html),
as an indented tree (format tree) or as a GraphViz digraph (format dot).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		bp, err := blueprint.Load(args[0])
		if err != nil {
			return err
		}
		v, err := build(bp, nil)
		if err != nil {
			return err
		}
		return v.write(cmd.OutOrStdout(), format)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "html", "Output format: html, tree or dot")
}

// view is a blueprint built into a page.
type view struct {
	doc  *dom.Document
	root *dom.Node
	page *htmlrender.Page
	r    *htmlrender.Renderer
}

// build creates a document for bp, builds the node tree and mounts it into
// the body of a fresh page.
func build(bp *blueprint.Blueprint, opts []dom.Option) (*view, error) {
	r := htmlrender.New()
	doc := dom.NewDocument(r, opts...)
	root, err := bp.Build(doc)
	if err != nil {
		return nil, err
	}
	page := htmlrender.NewPage(bp.Title)
	page.AddStylesheet(bp.Stylesheet)
	if _, err = root.AppendToElement(page.Body); err != nil {
		return nil, err
	}
	return &view{doc: doc, root: root, page: page, r: r}, nil
}

func (v *view) write(w io.Writer, format string) error {
	switch format {
	case "html":
		return v.page.Render(w)
	case "tree":
		_, err := io.WriteString(w, domdbg.Print(v.root))
		return err
	case "dot":
		return domdbg.ToGraphViz(v.root, w)
	}
	return fmt.Errorf("unknown format %q", format)
}
