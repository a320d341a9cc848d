// Package config reads model descriptions from YAML documents.
//
// A document names the problem type, then lists parameters, an optional
// dataset and the layer sequence:
//
//	problem_type: regression
//	batch_size: 4
//	image_dimensions: [128, 128, 3]
//	maximum_training_epochs: 10
//	dataset:
//	  format: ippn_leaf_count
//	  dir: Ara2013-Canon
//	layers:
//	  - type: input
//	  - type: convolutional
//	    filter_dimension: [5, 5, 3, 32]
//	    stride_length: 1
//	  - type: output
//
// Parameters are applied in document order, then the dataset is loaded, then
// layers are added. Scalars keep their YAML kinds, so "batch_size: 5.0" fails
// with validate.ErrType just like a float passed to SetParameter.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/phenomics/internal/model"
	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/validate"
)

// Reserved top-level keys. Every other key is a model parameter.
const (
	keyProblemType = "problem_type"
	keyLayers      = "layers"
	keyDataset     = "dataset"
	keySeed        = "seed"
)

// Param is one parameter setting.
type Param struct {
	Name  string
	Value any
	Line  int
}

// Layer is one entry of the layer sequence.
type Layer struct {
	Kind   string
	Params map[string]any
	Line   int
}

// Dataset selects a loader and its arguments.
type Dataset struct {
	Format string
	Params map[string]any
	Line   int
}

// Document is a decoded model description.
type Document struct {
	ProblemType problem.Type
	Params      []Param
	Dataset     *Dataset
	Layers      []Layer
	Seed        uint64 // Train/test shuffle seed; 0 keeps the model default

	// BaseDir resolves relative dataset paths. Set by Load to the directory
	// of the document.
	BaseDir string
}

// Overrides captures command-line supplied values.
type Overrides struct {
	BatchSize int
	MaxEpochs int
	Seed      uint64
}

// Load reads a document from path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	doc.BaseDir = filepath.Dir(path)
	return doc, nil
}

// Parse decodes a document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, validate.Valuef("document", "empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, validate.Valuef("document", "%v", err)
	}
	body := &root
	if body.Kind == yaml.DocumentNode && len(body.Content) > 0 {
		body = body.Content[0]
	}
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %w", body.Line, validate.Typef("document", "must be a mapping"))
	}

	doc := &Document{}
	seenProblemType := false
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, val := body.Content[i], body.Content[i+1]
		switch key.Value {
		case keyProblemType:
			t, err := decodeProblemType(val)
			if err != nil {
				return nil, atLine(key, err)
			}
			doc.ProblemType = t
			seenProblemType = true
		case keyLayers:
			if doc.Layers, err = decodeLayers(val); err != nil {
				return nil, err
			}
		case keySeed:
			seed, err := decodeSeed(val)
			if err != nil {
				return nil, atLine(key, err)
			}
			doc.Seed = seed
		case keyDataset:
			if doc.Dataset, err = decodeDataset(val); err != nil {
				return nil, err
			}
		default:
			v, err := decodeValue(val)
			if err != nil {
				return nil, atLine(key, err)
			}
			doc.Params = append(doc.Params, Param{Name: key.Value, Value: v, Line: key.Line})
		}
	}
	if !seenProblemType {
		return nil, validate.Valuef(keyProblemType, "is required")
	}
	return doc, nil
}

// ApplyOverrides appends any non-zero override after the document's own
// parameters, so overrides win.
func (d *Document) ApplyOverrides(o Overrides) {
	if o.BatchSize > 0 {
		d.Params = append(d.Params, Param{Name: "batch_size", Value: o.BatchSize})
	}
	if o.MaxEpochs > 0 {
		d.Params = append(d.Params, Param{Name: "maximum_training_epochs", Value: o.MaxEpochs})
	}
	if o.Seed != 0 {
		d.Seed = o.Seed
	}
}

// Build creates and configures a model from d. The first failing step is
// returned with its line number.
func (d *Document) Build(opts ...model.Option) (*model.Model, error) {
	if d.Seed != 0 {
		opts = append(opts, model.WithSeed(d.Seed))
	}
	m, err := model.New(d.ProblemType, opts...)
	if err != nil {
		return nil, err
	}

	for _, p := range d.Params {
		if err := m.SetParameter(p.Name, p.Value); err != nil {
			return nil, lineErr(p.Line, err)
		}
	}
	if d.Dataset != nil {
		if err := m.LoadDatasetFrom(d.Dataset.Format, d.resolvePaths(d.Dataset.Params)); err != nil {
			return nil, lineErr(d.Dataset.Line, err)
		}
	}
	for _, l := range d.Layers {
		if err := m.AddLayerFrom(l.Kind, l.Params); err != nil {
			return nil, lineErr(l.Line, err)
		}
	}
	return m, nil
}

// pathKeys are the dataset arguments holding file system paths.
var pathKeys = []string{"image_dir", "labels_file", "dir"}

func (d *Document) resolvePaths(params map[string]any) map[string]any {
	if d.BaseDir == "" {
		return params
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	for _, k := range pathKeys {
		if s, ok := out[k].(string); ok && s != "" && !filepath.IsAbs(s) {
			out[k] = filepath.Join(d.BaseDir, s)
		}
	}
	return out
}

func decodeProblemType(n *yaml.Node) (problem.Type, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return 0, validate.Typef(keyProblemType, "expected string, got %s", describe(n))
	}
	return problem.Parse(n.Value)
}

func decodeSeed(n *yaml.Node) (uint64, error) {
	v, err := decodeValue(n)
	if err != nil {
		return 0, err
	}
	seed, err := validate.Int(keySeed, v)
	if err != nil {
		return 0, err
	}
	if seed < 0 {
		return 0, validate.Valuef(keySeed, "must not be negative, got %d", seed)
	}
	return uint64(seed), nil
}

func decodeLayers(n *yaml.Node) ([]Layer, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, atLine(n, validate.Typef(keyLayers, "must be a sequence, got %s", describe(n)))
	}
	out := make([]Layer, 0, len(n.Content))
	for i, item := range n.Content {
		kind, params, err := decodeTyped(item, "type")
		if err != nil {
			return nil, atLine(item, fmt.Errorf("layer %d: %w", i+1, err))
		}
		out = append(out, Layer{Kind: kind, Params: params, Line: item.Line})
	}
	return out, nil
}

func decodeDataset(n *yaml.Node) (*Dataset, error) {
	format, params, err := decodeTyped(n, "format")
	if err != nil {
		return nil, atLine(n, fmt.Errorf("%s: %w", keyDataset, err))
	}
	return &Dataset{Format: format, Params: params, Line: n.Line}, nil
}

// decodeTyped decodes a mapping whose selector field names what it is; the
// remaining fields are returned as params.
func decodeTyped(n *yaml.Node, selector string) (string, map[string]any, error) {
	if n.Kind != yaml.MappingNode {
		return "", nil, validate.Typef(selector, "expected mapping, got %s", describe(n))
	}
	var fields map[string]any
	if err := n.Decode(&fields); err != nil {
		return "", nil, validate.Typef(selector, "%v", err)
	}
	name, ok := fields[selector]
	if !ok {
		return "", nil, validate.Valuef(selector, "is required")
	}
	s, err := validate.String(selector, name)
	if err != nil {
		return "", nil, err
	}
	delete(fields, selector)
	return s, fields, nil
}

func decodeValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, validate.Typef("value", "%v", err)
	}
	return v, nil
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	}
	if n.Tag == "!!null" {
		return "null"
	}
	return fmt.Sprintf("%s %q", strings.TrimLeft(n.ShortTag(), "!"), n.Value)
}

func atLine(n *yaml.Node, err error) error {
	return lineErr(n.Line, err)
}

func lineErr(line int, err error) error {
	if line == 0 {
		return err
	}
	return fmt.Errorf("line %d: %w", line, err)
}
