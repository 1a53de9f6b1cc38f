package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a batch of compile jobs.
type Manifest struct {
	// Mode is the default execution mode for every job; a source's own
	// !govern directive still wins.
	Mode string        `yaml:"mode"`
	Jobs []ManifestJob `yaml:"jobs"`
}

// ManifestJob is one source/output pair. The target comes from the
// output extension unless set explicitly.
type ManifestJob struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Target string `yaml:"target,omitempty"`
}

// LoadManifest reads and validates a yaml manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest %s has no jobs", path)
	}
	for i, job := range m.Jobs {
		if job.Source == "" {
			return nil, fmt.Errorf("manifest job %d: source is required", i)
		}
		if job.Output == "" {
			return nil, fmt.Errorf("manifest job %d: output is required", i)
		}
	}
	if m.Mode == "" {
		m.Mode = "classical"
	}

	return &m, nil
}

// runManifest compiles every job in a manifest. Jobs run in listed
// order; the command keeps going after a consensus failure so one bad
// source does not hide results for the rest.
func runManifest(opts *CompileOptions, formatter *OutputFormatter) error {
	m, err := LoadManifest(opts.Manifest)
	if err != nil {
		_ = formatter.Error(ErrCodeManifest, err.Error(), nil)
		return NewExitError(ExitCommandError, "manifest load failed")
	}

	failures := 0
	for _, job := range m.Jobs {
		jobOpts := *opts
		jobOpts.Mode = m.Mode
		jobOpts.Target = job.Target
		if err := runCompile(&jobOpts, formatter, job.Source, job.Output); err != nil {
			if GetExitCode(err) == ExitCommandError {
				return err
			}
			failures++
		}
	}

	if failures > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d job(s) failed consensus", failures))
	}
	return nil
}
