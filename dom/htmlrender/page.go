package htmlrender

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is a skeleton HTML document to mount node trees into.
type Page struct {
	Document *html.Node
	Head     *html.Node
	Body     *html.Node
}

// NewPage creates an empty HTML document with a title.
func NewPage(title string) *Page {
	p := &Page{
		Document: &html.Node{Type: html.DocumentNode},
		Head:     &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head},
		Body:     &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body},
	}
	p.Document.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	p.Document.AppendChild(root)
	root.AppendChild(p.Head)
	root.AppendChild(p.Body)
	if title != "" {
		t := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		p.Head.AppendChild(t)
	}
	return p
}

// AddStylesheet adds a <style> element to the head of the page.
func (p *Page) AddStylesheet(css string) {
	if css == "" {
		return
	}
	s := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
	s.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	p.Head.AppendChild(s)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.Document)
}
