/*
Package memscene implements an in-memory scene graph.

A Scene is a tree of objects addressed by absolute paths, rooted at "/".
Objects carry a type tag, transform operations and attributes stored in
host-native types (go3d vectors and quaternions), curve control points,
an instanceable flag and internal references. Scene implements
placement.SceneGraph and serves as host for the command line front end and
as a test double.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package memscene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/npillmayer/schuko/tracing"
	"github.com/ungerik/go3d/float64/quaternion"
	"github.com/ungerik/go3d/float64/vec3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/npillmayer/curvedist/placement"
)

// tracer writes to trace with key 'memscene'
func tracer() tracing.Trace {
	return tracing.Select("memscene")
}

// Root is the path of the pseudo-root every scene has.
const Root placement.Handle = "/"

// CurveType is the type tag of curve objects.
const CurveType placement.TypeTag = "BasisCurves"

var (
	// ErrPathInUse indicates an attempt to create an object at an occupied path.
	ErrPathInUse = errors.New("path already in use")
	// ErrInvalidPath indicates a path which is not absolute or not clean.
	ErrInvalidPath = errors.New("invalid object path")
)

// Node is an object of a scene.
type Node struct {
	Path         placement.Handle
	Type         placement.TypeTag
	Children     []placement.Handle
	Ops          placement.TransformOps
	Translate    vec3.T
	Orient       quaternion.T
	Points       []vec3.T // control points, for curves
	Instanceable bool
	References   []placement.Handle
	Origin       placement.Handle // object this one has been duplicated from
}

// Scene is an in-memory scene graph. It is not safe for concurrent use.
type Scene struct {
	nodes map[placement.Handle]*Node
}

var _ placement.SceneGraph = (*Scene)(nil)

// New creates a scene containing just the pseudo-root.
func New() *Scene {
	s := &Scene{nodes: make(map[placement.Handle]*Node)}
	s.nodes[Root] = &Node{Path: Root, Orient: identity()}
	return s
}

func identity() quaternion.T {
	return quaternion.T{0, 0, 0, 1}
}

// Define creates an object of type t at path at, with the transform
// operations given. The parent of at must exist.
func (s *Scene) Define(at placement.Handle, t placement.TypeTag, ops placement.TransformOps) (*Node, error) {
	if err := checkPath(at); err != nil {
		return nil, err
	}
	if _, ok := s.nodes[at]; ok {
		return nil, fmt.Errorf("%w: %s", ErrPathInUse, at)
	}
	parent, ok := s.nodes[at.Parent()]
	if !ok {
		return nil, fmt.Errorf("%w: parent of %s", placement.ErrBrokenHandle, at)
	}
	n := &Node{Path: at, Type: t, Ops: ops, Orient: identity()}
	s.nodes[at] = n
	parent.Children = append(parent.Children, at)
	tracer().Debugf("defined %s object %s", t, at)
	return n, nil
}

// DefineCurve creates a curve object with control points ctrl.
func (s *Scene) DefineCurve(at placement.Handle, ctrl []r3.Vec) (*Node, error) {
	n, err := s.Define(at, CurveType, 0)
	if err != nil {
		return nil, err
	}
	n.Points = make([]vec3.T, len(ctrl))
	for i, p := range ctrl {
		n.Points[i] = toVec3(p)
	}
	return n, nil
}

// Lookup returns the object at h, or nil.
func (s *Scene) Lookup(h placement.Handle) *Node {
	return s.nodes[h]
}

// Len returns the number of objects in the scene, including the pseudo-root.
func (s *Scene) Len() int {
	return len(s.nodes)
}

func (s *Scene) node(h placement.Handle) (*Node, error) {
	n, ok := s.nodes[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", placement.ErrBrokenHandle, h)
	}
	return n, nil
}

func checkPath(h placement.Handle) error {
	p := string(h)
	if !strings.HasPrefix(p, "/") || p == "/" || strings.HasSuffix(p, "/") || strings.Contains(p, "//") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return nil
}

// --- placement.SceneGraph --------------------------------------------------

// ControlPoints implements placement.SceneGraph.
func (s *Scene) ControlPoints(h placement.Handle) ([]r3.Vec, error) {
	n, err := s.node(h)
	if err != nil {
		return nil, err
	}
	if n.Type != CurveType {
		return nil, fmt.Errorf("%w: %s has no points, is of type %s", placement.ErrMissingAttribute, h, n.Type)
	}
	pts := make([]r3.Vec, len(n.Points))
	for i, p := range n.Points {
		pts[i] = fromVec3(p)
	}
	return pts, nil
}

// Exists implements placement.SceneGraph.
func (s *Scene) Exists(h placement.Handle) bool {
	_, ok := s.nodes[h]
	return ok
}

// Children implements placement.SceneGraph.
func (s *Scene) Children(h placement.Handle) ([]placement.Handle, error) {
	n, err := s.node(h)
	if err != nil {
		return nil, err
	}
	return append([]placement.Handle(nil), n.Children...), nil
}

// TypeTag implements placement.SceneGraph.
func (s *Scene) TypeTag(h placement.Handle) (placement.TypeTag, error) {
	n, err := s.node(h)
	if err != nil {
		return "", err
	}
	return n.Type, nil
}

// CreateContainer implements placement.SceneGraph.
func (s *Scene) CreateContainer(at placement.Handle) (placement.Handle, error) {
	return s.CreateTyped(at, placement.ContainerType)
}

// CreateTyped implements placement.SceneGraph.
func (s *Scene) CreateTyped(at placement.Handle, t placement.TypeTag) (placement.Handle, error) {
	if _, err := s.Define(at, t, 0); err != nil {
		return placement.Null, err
	}
	return at, nil
}

// Duplicate implements placement.SceneGraph. It copies src together with all
// of its descendants.
func (s *Scene) Duplicate(src, at placement.Handle) (placement.Handle, error) {
	n, err := s.node(src)
	if err != nil {
		return placement.Null, err
	}
	if at == src || strings.HasPrefix(string(at), string(src)+"/") {
		return placement.Null, fmt.Errorf("%w: cannot duplicate %s into itself", ErrInvalidPath, src)
	}
	dup, err := s.Define(at, n.Type, n.Ops)
	if err != nil {
		return placement.Null, err
	}
	if err = s.copyInto(dup, n); err != nil {
		return placement.Null, err
	}
	tracer().Debugf("duplicated %s to %s", src, at)
	return at, nil
}

func (s *Scene) copyInto(dup, n *Node) error {
	path := dup.Path
	if err := copier.CopyWithOption(dup, n, copier.Option{DeepCopy: true}); err != nil {
		return err
	}
	dup.Path, dup.Children, dup.Origin = path, nil, n.Path
	for _, c := range n.Children {
		child := s.nodes[c]
		d, err := s.Define(path.Child(c.Name()), child.Type, child.Ops)
		if err != nil {
			return err
		}
		if err = s.copyInto(d, child); err != nil {
			return err
		}
	}
	return nil
}

// AddInternalReference implements placement.SceneGraph. The target composes
// the transform operations of the source.
func (s *Scene) AddInternalReference(target, source placement.Handle) error {
	t, err := s.node(target)
	if err != nil {
		return err
	}
	src, err := s.node(source)
	if err != nil {
		return err
	}
	t.References = append(t.References, source)
	t.Ops |= src.Ops
	return nil
}

// MarkInstanceable implements placement.SceneGraph.
func (s *Scene) MarkInstanceable(h placement.Handle) error {
	n, err := s.node(h)
	if err != nil {
		return err
	}
	n.Instanceable = true
	return nil
}

// SetTranslate implements placement.SceneGraph.
func (s *Scene) SetTranslate(h placement.Handle, p r3.Vec) error {
	n, err := s.node(h)
	if err != nil {
		return err
	}
	if !n.Ops.Has(placement.OpTranslate) {
		return fmt.Errorf("%w: %s has no translate op", placement.ErrMissingAttribute, h)
	}
	n.Translate = toVec3(p)
	return nil
}

// SetOrient implements placement.SceneGraph.
func (s *Scene) SetOrient(h placement.Handle, q r3.Rotation) error {
	n, err := s.node(h)
	if err != nil {
		return err
	}
	if !n.Ops.Has(placement.OpOrient) {
		return fmt.Errorf("%w: %s has no orient op", placement.ErrMissingAttribute, h)
	}
	n.Orient = quaternion.T{q.Imag, q.Jmag, q.Kmag, q.Real}
	return nil
}

// EnsureTransformOps implements placement.SceneGraph.
func (s *Scene) EnsureTransformOps(h placement.Handle, ops placement.TransformOps) error {
	n, err := s.node(h)
	if err != nil {
		return err
	}
	n.Ops |= ops
	return nil
}

// --- Attribute access ------------------------------------------------------

// Translation returns the translate attribute of h.
func (s *Scene) Translation(h placement.Handle) (r3.Vec, error) {
	n, err := s.node(h)
	if err != nil {
		return r3.Vec{}, err
	}
	return fromVec3(n.Translate), nil
}

// Orientation returns the orient attribute of h as a rotation.
func (s *Scene) Orientation(h placement.Handle) (r3.Rotation, error) {
	n, err := s.node(h)
	if err != nil {
		return r3.Rotation{}, err
	}
	q := n.Orient
	return r3.Rotation{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}, nil
}

func toVec3(p r3.Vec) vec3.T {
	return vec3.T{p.X, p.Y, p.Z}
}

func fromVec3(v vec3.T) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
