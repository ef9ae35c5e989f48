package company

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Company struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	Address        string `yaml:"address" json:"address"`
	Email          string `yaml:"email" json:"email,omitempty"`
	Phone          string `yaml:"phone" json:"phone,omitempty"`
	Website        string `yaml:"website" json:"website,omitempty"`
	Logo           string `yaml:"logo" json:"logo,omitempty"`
	SignatoryName  string `yaml:"signatory_name" json:"signatoryName,omitempty"`
	SignatoryTitle string `yaml:"signatory_title" json:"signatoryTitle,omitempty"`
}

// Registry is the ordered list of configured client companies.
type Registry struct {
	companies []Company
}

type registryFile struct {
	Companies []Company `yaml:"companies"`
}

func NewRegistry(companies []Company) *Registry {
	out := make([]Company, len(companies))
	copy(out, companies)
	return &Registry{companies: out}
}

// DefaultRegistry holds the two companies the service ships with.
func DefaultRegistry() *Registry {
	return NewRegistry([]Company{
		{
			ID:             "company1",
			Name:           "LC Technologies Pvt. Ltd.",
			Address:        "Pune, Maharashtra",
			Logo:           "lc_logo.png",
			SignatoryName:  "HR Manager",
			SignatoryTitle: "Human Resources",
		},
		{
			ID:             "company2",
			Name:           "ARR Solutions Pvt. Ltd.",
			Address:        "Mumbai, Maharashtra",
			Logo:           "arr_logo.png",
			SignatoryName:  "HR Manager",
			SignatoryTitle: "Human Resources",
		},
	})
}

func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse company registry: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Companies))
	for i, c := range file.Companies {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("company registry entry %d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("company registry has duplicate id %q", id)
		}
		seen[id] = struct{}{}
		file.Companies[i].ID = id
	}
	return NewRegistry(file.Companies), nil
}

// LoadRegistry reads a YAML registry file. An empty path yields the default
// registry.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read company registry: %w", err)
	}
	return ParseRegistry(data)
}

func (r *Registry) List() []Company {
	out := make([]Company, len(r.companies))
	copy(out, r.companies)
	return out
}

func (r *Registry) Lookup(id string) (Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return Company{}, fmt.Errorf("%w: %q", ErrCompanyNotFound, id)
}
