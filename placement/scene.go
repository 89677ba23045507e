package placement

import (
	"errors"
	"path"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'placement'
func tracer() tracing.Trace {
	return tracing.Select("placement")
}

var (
	// ErrNoValidTemplates indicates an empty template list after filtering.
	ErrNoValidTemplates = errors.New("no valid template objects")
	// ErrMissingAttribute indicates an object lacks an expected transform attribute.
	ErrMissingAttribute = errors.New("object is missing attribute")
	// ErrBrokenHandle indicates a referenced object does not exist.
	ErrBrokenHandle = errors.New("object does not exist")
)

// Handle addresses an object in a scene graph by its absolute path, e.g.
// "/World/Cube". The empty handle is the null handle.
type Handle string

// Null is the null handle.
const Null Handle = ""

// IsNull is a predicate: is h the null handle?
func (h Handle) IsNull() bool {
	return strings.TrimSpace(string(h)) == ""
}

// Name returns the last path element of h.
func (h Handle) Name() string {
	return path.Base(string(h))
}

// Parent returns the handle of the parent of h.
func (h Handle) Parent() Handle {
	return Handle(path.Dir(string(h)))
}

// Child returns the handle of a child named name.
func (h Handle) Child(name string) Handle {
	return Handle(path.Join(string(h), name))
}

// TypeTag is the type of a scene object, e.g. "Xform" or "Mesh".
type TypeTag string

// ContainerType is the type tag of grouping containers.
const ContainerType TypeTag = "Xform"

// TransformOps is a set of transform operations of an object.
type TransformOps uint8

const (
	OpTranslate TransformOps = 1 << iota // translate attribute
	OpOrient                             // orient (quaternion) attribute
)

// Has is a predicate: does ops contain all of o?
func (ops TransformOps) Has(o TransformOps) bool {
	return ops&o == o
}

func (ops TransformOps) String() string {
	var names []string
	if ops.Has(OpTranslate) {
		names = append(names, "translate")
	}
	if ops.Has(OpOrient) {
		names = append(names, "orient")
	}
	return "{" + strings.Join(names, ",") + "}"
}

// SceneGraph is the capability a host scene graph has to offer for placement.
// Methods which address an object report ErrBrokenHandle if it does not
// exist. Setters report ErrMissingAttribute if the object lacks the
// corresponding transform operation.
type SceneGraph interface {
	// ControlPoints returns the defining points of a curve object.
	ControlPoints(h Handle) ([]r3.Vec, error)
	Exists(h Handle) bool
	// Children returns the direct children of h, in order.
	Children(h Handle) ([]Handle, error)
	TypeTag(h Handle) (TypeTag, error)
	CreateContainer(at Handle) (Handle, error)
	// Duplicate creates a deep copy of src at path 'at'.
	Duplicate(src, at Handle) (Handle, error)
	// CreateTyped creates an empty object of type t.
	CreateTyped(at Handle, t TypeTag) (Handle, error)
	// AddInternalReference lets target reference source, sharing its content.
	AddInternalReference(target, source Handle) error
	MarkInstanceable(h Handle) error
	SetTranslate(h Handle, p r3.Vec) error
	SetOrient(h Handle, q r3.Rotation) error
	// EnsureTransformOps adds the transform operations of ops which h lacks.
	EnsureTransformOps(h Handle, ops TransformOps) error
}
