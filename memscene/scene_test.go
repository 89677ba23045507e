package memscene

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/npillmayer/curvedist/placement"
)

const both = placement.OpTranslate | placement.OpOrient

func world(t *testing.T) *Scene {
	t.Helper()
	s := New()
	_, err := s.Define("/World", placement.ContainerType, 0)
	require.NoError(t, err)
	return s
}

func TestDefine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := world(t)
	_, err := s.Define("/World/Cube", "Cube", both)
	require.NoError(t, err)
	_, err = s.Define("/World/Cube", "Cube", both)
	assert.ErrorIs(t, err, ErrPathInUse)
	_, err = s.Define("/Nowhere/Cube", "Cube", both)
	assert.ErrorIs(t, err, placement.ErrBrokenHandle)
	_, err = s.Define("World", "Cube", both)
	assert.ErrorIs(t, err, ErrInvalidPath)
	children, err := s.Children("/World")
	require.NoError(t, err)
	assert.Equal(t, []placement.Handle{"/World/Cube"}, children)
	assert.Equal(t, 3, s.Len())
}

func TestControlPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := world(t)
	ctrl := []r3.Vec{{X: 1}, {Y: 2}, {Z: 3}, {X: 1, Y: 1, Z: 1}}
	_, err := s.DefineCurve("/World/Curve", ctrl)
	require.NoError(t, err)
	got, err := s.ControlPoints("/World/Curve")
	require.NoError(t, err)
	if diff := cmp.Diff(ctrl, got); diff != "" {
		t.Errorf("control points differ (-want +got):\n%s", diff)
	}
	_, err = s.ControlPoints("/World")
	assert.ErrorIs(t, err, placement.ErrMissingAttribute)
	_, err = s.ControlPoints("/World/Missing")
	assert.ErrorIs(t, err, placement.ErrBrokenHandle)
}

func TestDuplicateSubtree(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := world(t)
	_, err := s.Define("/World/Robot", placement.ContainerType, placement.OpTranslate)
	require.NoError(t, err)
	arm, err := s.DefineCurve("/World/Robot/Arm", []r3.Vec{{X: 1}, {X: 2}, {X: 3}, {X: 4}})
	require.NoError(t, err)
	require.NoError(t, s.SetTranslate("/World/Robot", r3.Vec{X: 5}))

	h, err := s.Duplicate("/World/Robot", "/World/Robot2")
	require.NoError(t, err)
	assert.Equal(t, placement.Handle("/World/Robot2"), h)
	dup := s.Lookup("/World/Robot2")
	require.NotNil(t, dup)
	assert.Equal(t, []placement.Handle{"/World/Robot2/Arm"}, dup.Children)
	assert.Equal(t, placement.Handle("/World/Robot"), dup.Origin)
	assert.Equal(t, vec3.T{5, 0, 0}, dup.Translate)

	arm.Points[0] = vec3.T{9, 9, 9} // the copy must not share points
	pts, err := s.ControlPoints("/World/Robot2/Arm")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1}, pts[0])

	_, err = s.Duplicate("/World/Robot", "/World/Robot/Inner")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = s.Duplicate("/World/Ghost", "/World/Ghost2")
	assert.ErrorIs(t, err, placement.ErrBrokenHandle)
}

func TestTransformAttributes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := world(t)
	_, err := s.Define("/World/Cone", "Cone", 0)
	require.NoError(t, err)
	err = s.SetTranslate("/World/Cone", r3.Vec{X: 1})
	assert.True(t, errors.Is(err, placement.ErrMissingAttribute))
	err = s.SetOrient("/World/Cone", placement.Identity)
	assert.True(t, errors.Is(err, placement.ErrMissingAttribute))

	require.NoError(t, s.EnsureTransformOps("/World/Cone", both))
	require.NoError(t, s.SetTranslate("/World/Cone", r3.Vec{X: 1, Y: 2, Z: 3}))
	q := r3.NewRotation(1.2, r3.Vec{Z: 1})
	require.NoError(t, s.SetOrient("/World/Cone", q))
	p, err := s.Translation("/World/Cone")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, p)
	o, err := s.Orientation("/World/Cone")
	require.NoError(t, err)
	assert.Equal(t, q, o)
}

func TestReferenceComposesOps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := world(t)
	_, err := s.Define("/World/Src", placement.ContainerType, both)
	require.NoError(t, err)
	h, err := s.CreateTyped("/World/Inst", placement.ContainerType)
	require.NoError(t, err)
	require.NoError(t, s.AddInternalReference(h, "/World/Src"))
	inst := s.Lookup(h)
	assert.Equal(t, []placement.Handle{"/World/Src"}, inst.References)
	assert.True(t, inst.Ops.Has(both))
	assert.ErrorIs(t, s.AddInternalReference(h, "/World/None"), placement.ErrBrokenHandle)
}

const sceneYAML = `
objects:
  - path: /World/Curve
    type: BasisCurves
    points: [[0, 0, 0], [1, 1, 0], [2, -1, 0], [3, 0, 0]]
  - path: /World
  - path: /World/Cube
    type: Cube
    ops: [translate, orient]
    translate: [1, 2, 3]
  - path: /World/Link
    references: [/World/Cube]
`

func TestLoadAndWrite(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := Load(bytes.NewBufferString(sceneYAML))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	p, err := s.Translation("/World/Cube")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, p)
	assert.True(t, s.Lookup("/World/Link").Ops.Has(both))

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	again, err := Load(&buf)
	require.NoError(t, err)
	opts := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff(s.Describe(), again.Describe(), opts); diff != "" {
		t.Errorf("scene changed after YAML round trip (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, doc := range []string{
		"objects:\n  - path: /A\n    ops: [scale]\n",
		"objects:\n  - path: /A\n    translate: [1, 2]\n",
		"objects:\n  - path: /A\n    type: BasisCurves\n    points: [[1, 2]]\n",
		"objects:\n  - path: /A/B\n",
		"objects: {",
	} {
		_, err := Load(bytes.NewBufferString(doc))
		assert.Error(t, err, "document %q", doc)
	}
}
