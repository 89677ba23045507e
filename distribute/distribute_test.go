package distribute

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/npillmayer/curvedist"
	"github.com/npillmayer/curvedist/memscene"
	"github.com/npillmayer/curvedist/placement"
	"github.com/npillmayer/curvedist/sampler"
)

const jobYAML = `
scene:
  objects:
    - path: /World
    - path: /World/Curve
      type: BasisCurves
      points: [[0, 0, 0], [1, 0, 0], [2, 0, 0], [3, 0, 0]]
    - path: /World/Cube
      type: Cube
      ops: [translate, orient]
    - path: /World/Cone
      type: Cone
      ops: [translate, orient]
distribute:
  curve: /World/Curve
  templates: [/World/Cube, "", /World/Cone]
  copyCount: 4
  samplingResolution: 100
  useOrient: true
  forwardAxis: -Y
  curveType: bspline
  spacing: interpolate
`

func validOptions() Options {
	o := Defaults()
	o.Curve = "/World/Curve"
	o.Templates = []string{"/World/Cube"}
	o.CopyCount = 5
	return o
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	require.NoError(t, validOptions().Validate())
	broken := []func(*Options){
		func(o *Options) { o.Curve = "" },
		func(o *Options) { o.CopyCount = 1 },
		func(o *Options) { o.SamplingResolution = -1 },
		func(o *Options) { o.CurveType = "nurbs" },
		func(o *Options) { o.CurveType = "linear" },
		func(o *Options) { o.ForwardAxis = "up" },
		func(o *Options) { o.Spacing = "nearest" },
		func(o *Options) { o.Order = "alphabetic" },
	}
	for i, breakIt := range broken {
		o := validOptions()
		breakIt(&o)
		assert.ErrorIs(t, o.Validate(), ErrInvalidOption, "case %d", i)
	}
}

func TestSettingsDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	o := validOptions()
	o.CurveType, o.ForwardAxis = "", ""
	s, err := o.settings()
	require.NoError(t, err)
	assert.Equal(t, sampler.BSpline, s.kind)
	assert.Equal(t, sampler.SnapToDense, s.spacing)
	assert.Equal(t, placement.PosX, s.placement.Forward)
	assert.Equal(t, placement.RoundRobin, s.placement.Order)
}

func TestExecuteJob(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	job, err := ReadJob(strings.NewReader(jobYAML))
	require.NoError(t, err)
	assert.Equal(t, placement.DefaultGroup, job.Distribute.Group, "defaults survive decoding")
	scene, created, err := job.Execute()
	require.NoError(t, err)
	require.Len(t, created, 4)
	want := []string{
		"/World/CurveDistribute/Cube_0", "/World/CurveDistribute/Cone_1",
		"/World/CurveDistribute/Cube_2", "/World/CurveDistribute/Cone_3",
	}
	assert.Equal(t, want, created)
	for i, path := range created {
		p, err := scene.Translation(placement.Handle(path))
		require.NoError(t, err)
		assert.True(t, curvedist.Equal(p, curvedist.V(float64(i), 0, 0)), "object %d at %s", i, curvedist.VecString(p))
		o, err := scene.Orientation(placement.Handle(path))
		require.NoError(t, err)
		dir := o.Rotate(placement.NegY.Vec())
		assert.True(t, curvedist.Equal(dir, curvedist.V(1, 0, 0)), "object %d faces %s", i, curvedist.VecString(dir))
	}
	var buf bytes.Buffer
	require.NoError(t, scene.Write(&buf))
	assert.Contains(t, buf.String(), "/World/CurveDistribute/Cone_3")
}

func TestRunErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	job, err := ReadJob(strings.NewReader(jobYAML))
	require.NoError(t, err)
	scene, err := memscene.Build(job.Scene)
	require.NoError(t, err)
	count := scene.Len()

	o := job.Distribute
	o.Curve = "/World/Missing"
	_, err = Run(scene, o)
	assert.ErrorIs(t, err, placement.ErrBrokenHandle)

	o = job.Distribute
	o.Curve = "/World/Cube"
	_, err = Run(scene, o)
	assert.ErrorIs(t, err, placement.ErrMissingAttribute)

	o = job.Distribute
	o.Templates = []string{"", ""}
	_, err = Run(scene, o)
	assert.ErrorIs(t, err, placement.ErrNoValidTemplates)

	o = job.Distribute
	o.CopyCount = 0
	_, err = Run(scene, o)
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, count, scene.Len(), "failed runs must not touch the scene")

	_, err = ReadJob(strings.NewReader("distribute:\n  colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestRunDegenerateCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	scene := memscene.New()
	_, err := scene.Define("/World", placement.ContainerType, 0)
	require.NoError(t, err)
	p := curvedist.V(1, 1, 1)
	_, err = scene.DefineCurve("/World/Dot", []r3.Vec{p, p, p, p})
	require.NoError(t, err)
	_, err = scene.Define("/World/Cube", "Cube", placement.OpTranslate)
	require.NoError(t, err)
	o := validOptions()
	o.Curve = "/World/Dot"
	_, err = Run(scene, o)
	assert.ErrorIs(t, err, sampler.ErrDegenerateCurve)
}
