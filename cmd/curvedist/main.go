/*
Command curvedist distributes copies of template objects along a curve.

It reads a YAML job (see package distribute), runs it against an in-memory
scene and writes the resulting scene as YAML.

Usage:

	curvedist -job job.yaml [-o out.yaml] [-trace level]

The paths of the created objects are listed on stderr.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/curvedist/distribute"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("curvedist", flag.ContinueOnError)
	flags.SetOutput(stderr)
	jobfile := flags.String("job", "", "YAML job file")
	outfile := flags.String("o", "", "output file for the resulting scene (default stdout)")
	level := flags.String("trace", "Error", "trace level (Debug, Info, Error)")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *jobfile == "" {
		fmt.Fprintln(stderr, "curvedist: no job file given (-job)")
		flags.Usage()
		return 2
	}
	for _, key := range []string{"curvedist", "sampler", "placement", "memscene", "distribute"} {
		tracing.Select(key).SetTraceLevel(traceLevel(*level))
	}
	job, err := distribute.LoadJob(*jobfile)
	if err != nil {
		fmt.Fprintf(stderr, "curvedist: %v\n", err)
		return 1
	}
	scene, created, err := job.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "curvedist: %v\n", err)
		if len(created) > 0 {
			fmt.Fprintf(stderr, "curvedist: %d object(s) created before the error\n", len(created))
		}
		return 1
	}
	if *outfile == "" {
		err = scene.Write(stdout)
	} else {
		err = writeFile(*outfile, scene.Write)
	}
	if err != nil {
		fmt.Fprintf(stderr, "curvedist: writing scene: %v\n", err)
		return 1
	}
	for _, p := range created {
		fmt.Fprintln(stderr, p)
	}
	return 0
}

func traceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// writeFile creates file name and hands it to write. An error on closing
// the file is reported as well.
func writeFile(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
