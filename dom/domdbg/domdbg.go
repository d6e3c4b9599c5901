/*
Package domdbg implements helpers to debug a tree of dom.Nodes.

Print renders a node tree as indented text, ToGraphViz as a GraphViz (DOT)
digraph. Both show the selector, the active classes and the traits of every
node.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/manifest/dom"
	"github.com/xlab/treeprint"
)

// Print returns an indented text rendering of the node tree below n.
func Print(n *dom.Node) string {
	if n == nil {
		return "<nil>\n"
	}
	root := treeprint.NewWithRoot(label(n))
	printChildren(n, root)
	return root.String()
}

func printChildren(n *dom.Node, branch treeprint.Tree) {
	for _, ch := range n.Children() {
		if len(ch.Children()) == 0 {
			branch.AddNode(label(ch))
			continue
		}
		printChildren(ch, branch.AddBranch(label(ch)))
	}
}

func label(n *dom.Node) string {
	var b strings.Builder
	b.WriteString(n.Tag())
	if sel := n.Selector(); sel != "" {
		b.WriteString(" #" + sel)
	}
	for _, c := range n.Classes() {
		b.WriteString(" ." + c)
	}
	if t := traits(n); t != "" {
		b.WriteString(" {" + t + "}")
	}
	return b.String()
}

func traits(n *dom.Node) string {
	keys := make([]string, 0, len(n.Traits()))
	for k := range n.Traits() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, n.Traits()[k])
	}
	return strings.Join(parts, " ")
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a node tree. The diagram is in
// GraphViz (DOT) format. Nodes are drawn as records listing their
// classes and traits.
func ToGraphViz(n *dom.Node, w io.Writer) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"traits": traits,
			"join":   strings.Join,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	if n != nil {
		if err = nodes(n, w, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a node and a testing.T, it will
// create a GraphViz image of the node tree under n and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(n *dom.Node, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing node digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(n, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing node tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *dom.Node
	Name string
}

type edge struct {
	N1, N2 node
}

func name(n *dom.Node) string {
	return fmt.Sprintf("node%05d", n.ID())
}

func nodes(n *dom.Node, w io.Writer, gparams *graphParamsType) error {
	if err := gparams.NodeTmpl.Execute(w, &node{n, name(n)}); err != nil {
		return err
	}
	for _, ch := range n.Children() {
		if err := nodes(ch, w, gparams); err != nil {
			return err
		}
		e := edge{node{n, name(n)}, node{ch, name(ch)}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ .Name }} [ style="filled" penwidth=1 fillcolor="lightblue3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0">
      <tr><td bgcolor="azure4" align="center"><font color="white">{{ .N.Tag }} {{ .N.Selector }}</font></td></tr>
      {{ with .N.Classes }}<tr><td align="left">.{{ join . " ." }}</td></tr>{{ end }}
      {{ with traits .N }}<tr><td align="left">{{ . }}</td></tr>{{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
