// Package config resolves credentials and runtime settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

const (
	envAPIKey  = "DENIALS_API_KEY"
	envAPIBase = "DENIALS_API_BASE"

	defaultAPIBase = "https://api.nikohealth.com"
)

// Credentials identify one payments API account. An empty APIKey switches the
// system into demo mode with synthetic data.
type Credentials struct {
	Profile string
	APIBase string
	APIKey  string
}

// Configured reports whether a real API credential is present.
func (c Credentials) Configured() bool {
	return c.APIKey != ""
}

// Registry reads credential profiles from an ini file, e.g.:
//
//	[default]
//	api_key  = sk-...
//	api_base = https://api.nikohealth.com
type Registry struct {
	cfg *ini.File
}

// NewRegistry loads the credentials file at path.
func NewRegistry(path string) (*Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}
	return &Registry{cfg: cfg}, nil
}

// Profiles lists the named profiles carrying at least one key.
func (r *Registry) Profiles() []string {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles
}

// Get returns the credentials for one profile.
func (r *Registry) Get(profile string) (Credentials, error) {
	section, err := r.cfg.GetSection(profile)
	if err != nil {
		return Credentials{}, fmt.Errorf("profile %q not found", profile)
	}

	creds := Credentials{
		Profile: profile,
		APIBase: section.Key("api_base").String(),
		APIKey:  section.Key("api_key").String(),
	}
	if creds.APIBase == "" {
		creds.APIBase = defaultAPIBase
	}
	return creds, nil
}

// ResolveCredentials returns credentials from the environment when set,
// otherwise from the given profile of the credentials file. A missing file
// or profile is not an error: it yields unconfigured credentials, which put
// the system into demo mode.
func ResolveCredentials(path, profile string) Credentials {
	if key := os.Getenv(envAPIKey); key != "" {
		base := os.Getenv(envAPIBase)
		if base == "" {
			base = defaultAPIBase
		}
		return Credentials{Profile: "env", APIBase: base, APIKey: key}
	}

	registry, err := NewRegistry(path)
	if err != nil {
		return Credentials{APIBase: defaultAPIBase}
	}
	creds, err := registry.Get(profile)
	if err != nil {
		return Credentials{APIBase: defaultAPIBase}
	}
	return creds
}
