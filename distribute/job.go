package distribute

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/npillmayer/curvedist/memscene"
)

// Job is a scene description together with the options of a run on it.
type Job struct {
	Scene      memscene.Description `yaml:"scene"`
	Distribute Options              `yaml:"distribute"`
}

// ReadJob decodes a YAML job. Options not present in the document keep
// their defaults, see Defaults.
func ReadJob(r io.Reader) (Job, error) {
	job := Job{Distribute: Defaults()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		return job, fmt.Errorf("reading job: %w", err)
	}
	return job, nil
}

// LoadJob reads a YAML job from file name.
func LoadJob(name string) (Job, error) {
	f, err := os.Open(name)
	if err != nil {
		return Job{}, err
	}
	defer f.Close()
	return ReadJob(f)
}

// Execute builds the job's scene and runs the distribution on it.
// The scene is returned even if the run fails, unless it could not be built.
func (job Job) Execute() (*memscene.Scene, []string, error) {
	scene, err := memscene.Build(job.Scene)
	if err != nil {
		return nil, nil, err
	}
	created, err := Run(scene, job.Distribute)
	paths := make([]string, len(created))
	for i, h := range created {
		paths[i] = string(h)
	}
	return scene, paths, err
}
