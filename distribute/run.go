package distribute

import (
	"fmt"

	"github.com/npillmayer/curvedist/placement"
	"github.com/npillmayer/curvedist/sampler"
)

// Run distributes copies of the templates along the curve named in opts and
// returns the handles of the created objects. Calls must be serialized for
// the same scene.
//
// Option problems and broken handles are reported before the scene is
// changed. Objects created before a failing scene operation remain in the
// scene; their handles are returned together with the error.
func Run(scene placement.SceneGraph, opts Options) ([]placement.Handle, error) {
	s, err := opts.settings()
	if err != nil {
		return nil, err
	}
	if !scene.Exists(s.curve) {
		return nil, fmt.Errorf("%w: curve %s", placement.ErrBrokenHandle, s.curve)
	}
	ctrl, err := scene.ControlPoints(s.curve)
	if err != nil {
		return nil, err
	}
	samples, err := sampler.ResampleSpacing(ctrl, s.kind, s.count, s.resolution, s.spacing)
	if err != nil {
		return nil, fmt.Errorf("curve %s: %w", s.curve, err)
	}
	engine := placement.NewEngine(scene).WithGroup(s.root, s.group)
	created, err := engine.Place(samples, s.templates, s.placement)
	if err != nil {
		return created, err
	}
	tracer().Infof("distributed %d object(s) along %s", len(created), s.curve)
	return created, nil
}
