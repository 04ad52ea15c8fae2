package config

import "fmt"

// Profile holds a named set of scan settings from the configuration file.
// Zero values mean "not set" and leave the current value untouched. Top is
// a pointer so that an explicit "top: 0" (show all) is distinguishable from
// an absent key.
type Profile struct {
	// Encoding is the text encoding label used to read candidates.
	Encoding string `yaml:"encoding,omitempty"`

	// Sample is a path to sample text. When set, candidates are scored by
	// symbol frequency instead of the letter heuristic.
	Sample string `yaml:"sample,omitempty"`

	// Concurrency is the number of sources scanned at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// LineConcurrency is the number of lines cracked at once per source.
	LineConcurrency int `yaml:"lineConcurrency,omitempty"`

	// Top is the number of ranked lines shown in reports.
	Top *int `yaml:"top,omitempty"`
}

// File represents the structure of the .xorscan configuration file.
type File struct {
	// Defaults apply to every scan.
	Defaults Profile `yaml:"defaults,omitempty"`

	// Profiles are selected with --profile and override Defaults.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// GetProfile returns the named profile merged over the defaults.
// An empty name returns the defaults.
func (cf *File) GetProfile(name string) (Profile, error) {
	result := cf.Defaults
	if name == "" {
		return result, nil
	}

	p, ok := cf.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	return mergeProfile(result, p), nil
}

// mergeProfile overrides base with the non-zero values of override.
func mergeProfile(base, override Profile) Profile {
	if override.Encoding != "" {
		base.Encoding = override.Encoding
	}
	if override.Sample != "" {
		base.Sample = override.Sample
	}
	if override.Concurrency > 0 {
		base.Concurrency = override.Concurrency
	}
	if override.LineConcurrency > 0 {
		base.LineConcurrency = override.LineConcurrency
	}
	if override.Top != nil {
		base.Top = override.Top
	}
	return base
}
