package placement

import (
	"fmt"
	"strings"

	"github.com/npillmayer/curvedist"
	"github.com/npillmayer/curvedist/sampler"
)

// Default location of the group container created by each placement call.
const (
	DefaultRoot  Handle = "/World"
	DefaultGroup        = "CurveDistribute"
)

// instanceSuffix is appended to a template's path to name its wrapper.
const instanceSuffix = "_instanceSource"

// Options control a placement call.
type Options struct {
	MakeInstance bool   // reference shared sources instead of duplicating
	UseOrient    bool   // rotate objects to follow the curve tangent
	Forward      Axis   // axis of the templates facing forward
	Order        Order  // template assignment order
	Seed         uint64 // seed for Shuffled order
}

// Engine places objects into a scene graph. Calls on an engine must not run
// concurrently, as they mutate the scene graph.
type Engine struct {
	scene SceneGraph
	root  Handle
	group string
}

// NewEngine creates an engine working on scene. Groups are created as
// children of DefaultRoot.
func NewEngine(scene SceneGraph) *Engine {
	return &Engine{scene: scene, root: DefaultRoot, group: DefaultGroup}
}

// WithGroup sets the parent and the name of the group containers to create.
// Empty arguments leave the current setting unchanged.
func (e *Engine) WithGroup(root Handle, name string) *Engine {
	if !root.IsNull() {
		e.root = root
	}
	if name != "" {
		e.group = name
	}
	return e
}

// PrepareTemplates filters null handles from templates and checks that the
// remaining ones exist. With opts.MakeInstance set, it returns instanceable
// sources instead of the templates: a template with children is marked
// instanceable itself, a template without children is wrapped into a
// container holding a duplicate of it (re-using a wrapper of an earlier
// call). Without instancing the scene graph is not touched.
func (e *Engine) PrepareTemplates(templates []Handle, opts Options) ([]Handle, error) {
	var valid []Handle
	for _, t := range templates {
		if t.IsNull() {
			continue
		}
		if !e.scene.Exists(t) {
			return nil, fmt.Errorf("%w: template %s", ErrBrokenHandle, t)
		}
		valid = append(valid, t)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: %d handle(s) given", ErrNoValidTemplates, len(templates))
	}
	if !opts.MakeInstance {
		return valid, nil
	}
	ops := OpTranslate
	if opts.UseOrient {
		ops |= OpOrient
	}
	sources := make([]Handle, len(valid))
	for i, t := range valid {
		children, err := e.scene.Children(t)
		if err != nil {
			return nil, err
		}
		src := t
		if len(children) == 0 {
			if src, err = e.wrap(t); err != nil {
				return nil, err
			}
			if err = e.scene.EnsureTransformOps(src, ops); err != nil {
				return nil, err
			}
		}
		if err = e.scene.MarkInstanceable(src); err != nil {
			return nil, err
		}
		sources[i] = src
	}
	tracer().Infof("prepared %d instance source(s)", len(sources))
	return sources, nil
}

// wrap creates a container next to t holding a duplicate of t, unless it
// already exists. The duplicate is moved to the container's origin.
func (e *Engine) wrap(t Handle) (Handle, error) {
	w := Handle(string(t) + instanceSuffix)
	if e.scene.Exists(w) {
		tracer().Debugf("re-using instance source %s", w)
		return w, nil
	}
	if _, err := e.scene.CreateContainer(w); err != nil {
		return w, err
	}
	dup, err := e.scene.Duplicate(t, w.Child(t.Name()))
	if err != nil {
		return w, err
	}
	if err = e.scene.SetTranslate(dup, curvedist.Origin); err != nil {
		tracer().Debugf("instance source %s keeps its placement: %v", dup, err)
	}
	tracer().Debugf("wrapped template %s into instance source %s", t, w)
	return w, nil
}

// PlacePrepared creates one object per sample inside a new group container,
// assigning sources from prepared (see PrepareTemplates) in opts.Order.
// It returns the handles of the created objects, in sample order.
//
// If a scene operation fails, PlacePrepared stops and returns the objects
// created so far together with the error.
func (e *Engine) PlacePrepared(samples []sampler.Sample, prepared []Handle, opts Options) ([]Handle, error) {
	if len(prepared) == 0 {
		return nil, ErrNoValidTemplates
	}
	if !e.scene.Exists(e.root) {
		return nil, fmt.Errorf("%w: group root %s", ErrBrokenHandle, e.root)
	}
	group, err := e.scene.CreateContainer(e.uniqueGroup())
	if err != nil {
		return nil, err
	}
	forward := opts.Forward.Vec()
	assigned := Assign(len(samples), len(prepared), opts.Order, opts.Seed)
	created := make([]Handle, 0, len(samples))
	for i, s := range samples {
		src := prepared[assigned[i]]
		at := group.Child(fmt.Sprintf("%s_%d", strings.TrimSuffix(src.Name(), instanceSuffix), i))
		var h Handle
		if opts.MakeInstance {
			h, err = e.instance(src, at)
		} else {
			h, err = e.scene.Duplicate(src, at)
		}
		if err != nil {
			return created, err
		}
		created = append(created, h)
		if err = e.scene.SetTranslate(h, s.Position); err != nil {
			return created, err
		}
		if opts.UseOrient {
			if err = e.scene.SetOrient(h, Orientation(forward, s.Tangent)); err != nil {
				return created, err
			}
		}
		tracer().Debugf("placed %s at %s", h, curvedist.VecString(s.Position))
	}
	tracer().Infof("placed %d object(s) from %d template(s) into %s", len(created), len(prepared), group)
	return created, nil
}

// Place prepares templates and places one object per sample.
// See PrepareTemplates and PlacePrepared.
func (e *Engine) Place(samples []sampler.Sample, templates []Handle, opts Options) ([]Handle, error) {
	if !e.scene.Exists(e.root) {
		return nil, fmt.Errorf("%w: group root %s", ErrBrokenHandle, e.root)
	}
	prepared, err := e.PrepareTemplates(templates, opts)
	if err != nil {
		return nil, err
	}
	return e.PlacePrepared(samples, prepared, opts)
}

func (e *Engine) instance(src, at Handle) (Handle, error) {
	tag, err := e.scene.TypeTag(src)
	if err != nil {
		return Null, err
	}
	h, err := e.scene.CreateTyped(at, tag)
	if err != nil {
		return Null, err
	}
	return h, e.scene.AddInternalReference(h, src)
}

// uniqueGroup returns a path for a new group container below the root.
func (e *Engine) uniqueGroup() Handle {
	base := e.root.Child(e.group)
	if !e.scene.Exists(base) {
		return base
	}
	for i := 1; ; i++ {
		h := Handle(fmt.Sprintf("%s_%d", base, i))
		if !e.scene.Exists(h) {
			return h
		}
	}
}
