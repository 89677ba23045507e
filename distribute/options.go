/*
Package distribute runs the complete pipeline: it reads the control points
of a curve from a scene graph, resamples the curve and places copies of
template objects at the samples.

Options mirror the settings a user interface collects. They may be read
from YAML job files, which additionally carry a scene description for
package memscene:

	scene:
	  objects:
	    - path: /World
	    - path: /World/Curve
	      type: BasisCurves
	      points: [[0, 0, 0], [1, 2, 0], [2, -2, 0], [3, 0, 0]]
	    - path: /World/Cube
	      type: Cube
	      ops: [translate, orient]
	distribute:
	  curve: /World/Curve
	  templates: [/World/Cube]
	  copyCount: 10
	  samplingResolution: 200
	  useOrient: true
	  forwardAxis: +X
	  curveType: bspline

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package distribute

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/curvedist/placement"
	"github.com/npillmayer/curvedist/sampler"
)

// tracer writes to trace with key 'distribute'
func tracer() tracing.Trace {
	return tracing.Select("distribute")
}

// ErrInvalidOption indicates an option value out of range.
var ErrInvalidOption = errors.New("invalid option")

// Options is the configuration surface of a distribution run.
type Options struct {
	Curve              string   `yaml:"curve"`
	Templates          []string `yaml:"templates"`
	CopyCount          int      `yaml:"copyCount"`
	SamplingResolution int      `yaml:"samplingResolution"` // 0 = CopyCount
	UseInstance        bool     `yaml:"useInstance"`
	UseOrient          bool     `yaml:"useOrient"`
	ForwardAxis        string   `yaml:"forwardAxis"`
	CurveType          string   `yaml:"curveType"`
	Spacing            string   `yaml:"spacing,omitempty"`
	Order              string   `yaml:"order,omitempty"`
	Seed               uint64   `yaml:"seed,omitempty"`
	Root               string   `yaml:"root,omitempty"`
	Group              string   `yaml:"group,omitempty"`
}

// Defaults returns options with every optional setting at its default.
func Defaults() Options {
	return Options{
		ForwardAxis: placement.PosX.String(),
		CurveType:   sampler.BSpline.String(),
		Root:        string(placement.DefaultRoot),
		Group:       placement.DefaultGroup,
	}
}

// settings are validated options in the types of the packages consuming them.
type settings struct {
	curve      placement.Handle
	templates  []placement.Handle
	count      int
	resolution int
	kind       sampler.CurveKind
	spacing    sampler.Spacing
	placement  placement.Options
	root       placement.Handle
	group      string
}

// Validate checks all options and reports the first problem found,
// wrapping ErrInvalidOption.
func (o Options) Validate() error {
	_, err := o.settings()
	return err
}

func (o Options) settings() (settings, error) {
	var s settings
	invalid := func(format string, args ...any) (settings, error) {
		return s, fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
	}
	if placement.Handle(o.Curve).IsNull() {
		return invalid("no curve given")
	}
	s.curve = placement.Handle(o.Curve)
	for _, t := range o.Templates {
		s.templates = append(s.templates, placement.Handle(t))
	}
	if o.CopyCount < 2 {
		return invalid("copyCount must be at least 2, is %d", o.CopyCount)
	}
	s.count = o.CopyCount
	if o.SamplingResolution < 0 {
		return invalid("samplingResolution must not be negative, is %d", o.SamplingResolution)
	}
	s.resolution = o.SamplingResolution
	var err error
	s.kind = sampler.BSpline
	if o.CurveType != "" {
		if s.kind, err = sampler.ParseCurveKind(o.CurveType); err != nil {
			return invalid("curveType: %v", err)
		}
	}
	if s.kind == sampler.Linear {
		return invalid("curveType %q is not implemented", o.CurveType)
	}
	if s.spacing, err = sampler.ParseSpacing(o.Spacing); err != nil {
		return invalid("spacing: %v", err)
	}
	forward := placement.PosX
	if o.ForwardAxis != "" {
		if forward, err = placement.ParseAxis(o.ForwardAxis); err != nil {
			return invalid("forwardAxis: %v", err)
		}
	}
	order, err := placement.ParseOrder(o.Order)
	if err != nil {
		return invalid("order: %v", err)
	}
	s.placement = placement.Options{
		MakeInstance: o.UseInstance,
		UseOrient:    o.UseOrient,
		Forward:      forward,
		Order:        order,
		Seed:         o.Seed,
	}
	s.root, s.group = placement.Handle(o.Root), o.Group
	return s, nil
}
