package blueprint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/manifest/dom"
	"gopkg.in/yaml.v3"
)

// ErrMissingTag is returned for blueprints without a tag.
var ErrMissingTag = errors.New("blueprint without tag")

// Blueprint describes a node and its children.
type Blueprint struct {
	Title      string         `yaml:"title,omitempty"`
	Stylesheet string         `yaml:"stylesheet,omitempty"`
	Tag        string         `yaml:"tag"`
	Settings   map[string]any `yaml:"settings,omitempty"`
	Children   []*Blueprint   `yaml:"children,omitempty"`
}

// Parse decodes a YAML blueprint and checks it for completeness.
func Parse(data []byte) (*Blueprint, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML blueprint from r.
func Decode(r io.Reader) (*Blueprint, error) {
	bp := &Blueprint{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(bp); err != nil {
		return nil, fmt.Errorf("decoding blueprint: %w", err)
	}
	if err := bp.validate("root"); err != nil {
		return nil, err
	}
	tracer().Debugf("blueprint with %d nodes", bp.Count())
	return bp, nil
}

// Load reads a YAML blueprint from a file.
func Load(path string) (*Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	bp, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bp, nil
}

func (bp *Blueprint) validate(path string) error {
	if bp == nil || bp.Tag == "" {
		return fmt.Errorf("%w at %s", ErrMissingTag, path)
	}
	for i, ch := range bp.Children {
		if err := ch.validate(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes described by bp.
func (bp *Blueprint) Count() int {
	count := 1
	for _, ch := range bp.Children {
		count += ch.Count()
	}
	return count
}

// Encode writes bp as YAML.
func (bp *Blueprint) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(bp); err != nil {
		return err
	}
	return enc.Close()
}

// Build creates the node tree described by bp. Children are appended top
// down, each one right after its creation, so every node is initialized
// with the traits and style-sets of its ancestors in place. The root node
// is not mounted; mounting it initializes it.
func (bp *Blueprint) Build(doc *dom.Document) (*dom.Node, error) {
	if err := bp.validate("root"); err != nil {
		return nil, err
	}
	settings := bp.Settings
	if bp.Stylesheet != "" {
		settings = make(map[string]any, len(bp.Settings)+1)
		for k, v := range bp.Settings {
			settings[k] = v
		}
		if _, ok := settings["stylesheet"]; !ok {
			settings["stylesheet"] = bp.Stylesheet
		}
	}
	root, err := doc.New(bp.Tag, settings)
	if err != nil {
		return nil, fmt.Errorf("building root: %w", err)
	}
	if err = bp.buildChildren(doc, root, "root"); err != nil {
		return nil, err
	}
	return root, nil
}

func (bp *Blueprint) buildChildren(doc *dom.Document, n *dom.Node, path string) error {
	for i, cbp := range bp.Children {
		chpath := fmt.Sprintf("%s.children[%d]", path, i)
		ch, err := doc.New(cbp.Tag, cbp.Settings)
		if err != nil {
			return fmt.Errorf("building %s: %w", chpath, err)
		}
		if _, err = n.Append(ch); err != nil {
			return fmt.Errorf("building %s: %w", chpath, err)
		}
		if err = cbp.buildChildren(doc, ch, chpath); err != nil {
			return err
		}
	}
	return nil
}
