package selection

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape of a named parameter preset file.
type profileFile struct {
	Profiles map[string]Params `yaml:"profiles"`
}

// LoadProfiles reads named method parameter presets from a YAML file.
// Every profile is validated; the first invalid one fails the load.
func LoadProfiles(path string) (map[string]Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "selection: read profiles %s", path)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, eris.Wrapf(err, "selection: parse profiles %s", path)
	}

	for name, p := range pf.Profiles {
		// A profile may omit top_n; it inherits the default.
		if p.TopN == 0 {
			p.TopN = DefaultParams().TopN
			pf.Profiles[name] = p
		}
		if err := p.Validate(); err != nil {
			return nil, eris.Wrapf(err, "selection: profile %q", name)
		}
	}

	return pf.Profiles, nil
}

// Profile returns the named profile from a preset map, falling back to
// DefaultParams when name is empty.
func Profile(profiles map[string]Params, name string) (Params, error) {
	if name == "" {
		return DefaultParams(), nil
	}
	p, ok := profiles[name]
	if !ok {
		return Params{}, eris.Errorf("selection: unknown profile %q", name)
	}
	return p, nil
}
