package memscene

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ungerik/go3d/float64/quaternion"
	"github.com/ungerik/go3d/float64/vec3"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/curvedist/placement"
)

// Description is the serializable form of a scene.
type Description struct {
	Objects []Object `yaml:"objects"`
}

// Object is the serializable form of a node.
type Object struct {
	Path         string      `yaml:"path"`
	Type         string      `yaml:"type,omitempty"`
	Ops          []string    `yaml:"ops,flow,omitempty"`
	Translate    []float64   `yaml:"translate,flow,omitempty"`
	Orient       []float64   `yaml:"orient,flow,omitempty"` // x, y, z, w
	Points       [][]float64 `yaml:"points,flow,omitempty"`
	Instanceable bool        `yaml:"instanceable,omitempty"`
	References   []string    `yaml:"references,omitempty"`
}

// Build creates a scene from a description. Objects may be listed in any
// order, parents are created before their children.
func Build(desc Description) (*Scene, error) {
	objs := append([]Object(nil), desc.Objects...)
	sort.SliceStable(objs, func(i, j int) bool {
		return strings.Count(objs[i].Path, "/") < strings.Count(objs[j].Path, "/")
	})
	s := New()
	for _, o := range objs {
		if err := s.define(o); err != nil {
			return nil, err
		}
	}
	for _, o := range objs { // references may point anywhere
		for _, r := range o.References {
			if err := s.AddInternalReference(placement.Handle(o.Path), placement.Handle(r)); err != nil {
				return nil, err
			}
		}
	}
	tracer().Infof("built scene with %d object(s)", s.Len()-1)
	return s, nil
}

func (s *Scene) define(o Object) error {
	var ops placement.TransformOps
	for _, name := range o.Ops {
		switch strings.ToLower(name) {
		case "translate":
			ops |= placement.OpTranslate
		case "orient":
			ops |= placement.OpOrient
		default:
			return fmt.Errorf("object %s: unknown transform op %q", o.Path, name)
		}
	}
	typ := placement.TypeTag(o.Type)
	if typ == "" {
		typ = placement.ContainerType
	}
	n, err := s.Define(placement.Handle(o.Path), typ, ops)
	if err != nil {
		return err
	}
	n.Instanceable = o.Instanceable
	if o.Translate != nil {
		if len(o.Translate) != 3 {
			return fmt.Errorf("object %s: translate needs 3 components", o.Path)
		}
		n.Translate = vec3.T{o.Translate[0], o.Translate[1], o.Translate[2]}
	}
	if o.Orient != nil {
		if len(o.Orient) != 4 {
			return fmt.Errorf("object %s: orient needs 4 components", o.Path)
		}
		n.Orient = quaternion.T{o.Orient[0], o.Orient[1], o.Orient[2], o.Orient[3]}
	}
	for i, p := range o.Points {
		if len(p) != 3 {
			return fmt.Errorf("object %s: point %d needs 3 components", o.Path, i)
		}
		n.Points = append(n.Points, vec3.T{p[0], p[1], p[2]})
	}
	return nil
}

// Describe returns the serializable form of s, listing objects depth-first
// in child order.
func (s *Scene) Describe() Description {
	var desc Description
	var walk func(h placement.Handle)
	walk = func(h placement.Handle) {
		n := s.nodes[h]
		if h != Root {
			desc.Objects = append(desc.Objects, describe(n))
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(Root)
	return desc
}

func describe(n *Node) Object {
	o := Object{
		Path:         string(n.Path),
		Type:         string(n.Type),
		Instanceable: n.Instanceable,
	}
	if n.Ops.Has(placement.OpTranslate) {
		o.Ops = append(o.Ops, "translate")
		o.Translate = append([]float64(nil), n.Translate[:]...)
	}
	if n.Ops.Has(placement.OpOrient) {
		o.Ops = append(o.Ops, "orient")
		o.Orient = append([]float64(nil), n.Orient[:]...)
	}
	for _, p := range n.Points {
		o.Points = append(o.Points, []float64{p[0], p[1], p[2]})
	}
	for _, r := range n.References {
		o.References = append(o.References, string(r))
	}
	return o
}

// Load reads a YAML scene description from r and builds the scene.
func Load(r io.Reader) (*Scene, error) {
	var desc Description
	if err := yaml.NewDecoder(r).Decode(&desc); err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return Build(desc)
}

// Write serializes s as YAML to w.
func (s *Scene) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Describe()); err != nil {
		return err
	}
	return enc.Close()
}
