package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Loader reads scenarios from a directory of YAML files, one scenario
// per file, id taken from the filename when the file does not set one.
type Loader struct {
	Dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load reads a single scenario by id.
func (l *Loader) Load(id string) (*Scenario, error) {
	path := filepath.Join(l.Dir, id+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", id, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", id, err)
	}
	if sc.ID == "" {
		sc.ID = id
	}
	return &sc, nil
}

// List returns every loadable scenario, sorted by id. Files that fail
// to parse are skipped rather than failing the whole listing.
func (l *Loader) List() ([]*Scenario, error) {
	files, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	var scenarios []*Scenario
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".yaml" {
			continue
		}
		id := f.Name()[:len(f.Name())-len(".yaml")]
		sc, err := l.Load(id)
		if err != nil {
			continue
		}
		scenarios = append(scenarios, sc)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })
	return scenarios, nil
}
