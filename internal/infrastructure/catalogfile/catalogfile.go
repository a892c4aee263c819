// Package catalogfile loads the code catalogs from a YAML document.
package catalogfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hospital-admin-api/internal/domain/catalog"
)

var ErrNoVersion = errors.New("catalog version is required")

type (
	document struct {
		Version             string          `yaml:"version"`
		Specializations     catalog.Entries `yaml:"specializations"`
		Governorates        catalog.Entries `yaml:"governorates"`
		EducationLevels     catalog.Entries `yaml:"education_levels"`
		DeactivationReasons catalog.Entries `yaml:"deactivation_reasons"`
	}

	Provider struct {
		version string
		entries map[catalog.Kind]catalog.Entries
		labels  map[catalog.Kind]map[string]string
	}
)

func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Provider, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if strings.TrimSpace(doc.Version) == "" {
		return nil, ErrNoVersion
	}

	return New(doc.Version, map[catalog.Kind]catalog.Entries{
		catalog.KindSpecialization:     doc.Specializations,
		catalog.KindGovernorate:        doc.Governorates,
		catalog.KindEducation:          doc.EducationLevels,
		catalog.KindDeactivationReason: doc.DeactivationReasons,
	})
}

// New builds a provider from in-memory sets. Codes must be non-empty and
// unique within their kind.
func New(version string, sets map[catalog.Kind]catalog.Entries) (*Provider, error) {
	p := &Provider{
		version: version,
		entries: make(map[catalog.Kind]catalog.Entries, len(sets)),
		labels:  make(map[catalog.Kind]map[string]string, len(sets)),
	}

	for kind, entries := range sets {
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown catalog kind %q", kind)
		}

		labels := make(map[string]string, len(entries))
		for _, e := range entries {
			if e.Code == "" {
				return nil, fmt.Errorf("%s: empty code", kind)
			}
			if _, dup := labels[e.Code]; dup {
				return nil, fmt.Errorf("%s: duplicate code %q", kind, e.Code)
			}
			labels[e.Code] = e.Label
		}

		p.entries[kind] = append(catalog.Entries(nil), entries...)
		p.labels[kind] = labels
	}

	return p, nil
}

func (p *Provider) Version() string { return p.version }

func (p *Provider) Contains(kind catalog.Kind, code string) bool {
	_, ok := p.labels[kind][code]
	return ok
}

func (p *Provider) ResolveLabel(kind catalog.Kind, code string) (string, bool) {
	label, ok := p.labels[kind][code]
	return label, ok
}

// Entries returns the kind's entries in file order.
func (p *Provider) Entries(kind catalog.Kind) catalog.Entries {
	return append(catalog.Entries(nil), p.entries[kind]...)
}
