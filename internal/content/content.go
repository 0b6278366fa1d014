// Package content models the portfolio profile rendered by both surfaces.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// ErrInvalidProfile is wrapped by Validate failures.
var ErrInvalidProfile = errors.New("invalid profile")

// Section titles, in display order.
const (
	SectionAbout      = "About Me"
	SectionExperience = "Experience"
	SectionProjects   = "Projects"
	SectionSkills     = "Skills"
)

// Sections lists the collapsible sections in display order.
func Sections() []string {
	return []string{SectionAbout, SectionExperience, SectionProjects, SectionSkills}
}

type Profile struct {
	Name       string    `yaml:"name"`
	Tagline    string    `yaml:"tagline"`
	Avatar     string    `yaml:"avatar"`
	Domain     string    `yaml:"domain"`
	About      string    `yaml:"about"`
	Experience []Job     `yaml:"experience"`
	Projects   []Project `yaml:"projects"`
	Skills     []string  `yaml:"skills"`
	Contacts   []Contact `yaml:"contacts"`
	Resume     Resume    `yaml:"resume"`
}

type Job struct {
	Company string `yaml:"company"`
	URL     string `yaml:"url"`
	Role    string `yaml:"role"`
	Period  string `yaml:"period"`
	Summary string `yaml:"summary"`
}

type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

type Contact struct {
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Resume describes the downloadable résumé. Path is filled from config; the
// profile only names the download.
type Resume struct {
	Path     string `yaml:"path"`
	Filename string `yaml:"filename"`
}

// Available reports whether a résumé file is configured.
func (r Resume) Available() bool { return r.Path != "" }

// Default returns the built-in profile.
func Default() Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("content: embedded profile is invalid: %v", err))
	}
	return p
}

// Load reads and validates a YAML profile from path.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	p.normalize()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the fields every surface relies on.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	for i, job := range p.Experience {
		if job.Company == "" {
			return fmt.Errorf("%w: experience[%d] has no company", ErrInvalidProfile, i)
		}
	}
	for i, project := range p.Projects {
		if project.Name == "" {
			return fmt.Errorf("%w: projects[%d] has no name", ErrInvalidProfile, i)
		}
	}
	for i, c := range p.Contacts {
		if c.URL == "" {
			return fmt.Errorf("%w: contacts[%d] has no url", ErrInvalidProfile, i)
		}
	}
	return nil
}

func (p *Profile) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.About = strings.TrimSpace(p.About)
	for i := range p.Experience {
		p.Experience[i].Summary = strings.TrimSpace(p.Experience[i].Summary)
	}
	for i := range p.Projects {
		p.Projects[i].Description = strings.TrimSpace(p.Projects[i].Description)
	}
	for i := range p.Contacts {
		if p.Contacts[i].Label == "" {
			p.Contacts[i].Label = p.Contacts[i].Kind
		}
	}
	if p.Resume.Filename == "" {
		p.Resume.Filename = "resume.pdf"
	}
}

// Copyright renders the footer line for year.
func (p Profile) Copyright(year int) string {
	owner := p.Domain
	if owner == "" {
		owner = p.Name
	}
	return fmt.Sprintf("© %d %s", year, owner)
}
