// Package automation runs scripted campaigns: an ordered list of
// scenarios from one YAML file, each stored as a regular run.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/experiment"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/storage"
)

// Campaign is a scripted sequence of runs.
type Campaign struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []CampaignRun `yaml:"runs"`
}

// CampaignRun resolves one campaign entry to a full run
// configuration: the named preset (or the stock defaults) with the
// entry's config section overlaid on top.
type CampaignRun struct {
	Preset string
	Config *config.Config
}

func (r *CampaignRun) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Preset string    `yaml:"preset"`
		Config yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	base := config.DefaultConfig()
	if raw.Preset != "" {
		base = config.GetPreset(raw.Preset)
		if base == nil {
			return fmt.Errorf("unknown preset: %s", raw.Preset)
		}
	}
	if !raw.Config.IsZero() {
		if err := raw.Config.Decode(base); err != nil {
			return err
		}
	}

	r.Preset = raw.Preset
	r.Config = base
	return nil
}

// LoadCampaign reads a campaign file.
func LoadCampaign(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if len(c.Runs) == 0 {
		return nil, fmt.Errorf("campaign %q has no runs", c.Name)
	}
	return &c, nil
}

// Run executes every entry in order and saves each result to the
// store. It returns the stored run IDs; the first failure aborts the
// remaining entries.
func (c *Campaign) Run(ctx context.Context, data nucdata.Provider, st *storage.Store) ([]string, error) {
	ids := make([]string, 0, len(c.Runs))
	for i, entry := range c.Runs {
		sc := experiment.FromConfig(entry.Config)
		fmt.Printf("run %d/%d: %s\n", i+1, len(c.Runs), sc.Name)

		res, err := sc.Run(ctx, data)
		if err != nil {
			return ids, fmt.Errorf("run %d (%s): %w", i+1, sc.Name, err)
		}

		id, err := st.Save(sc.Name, sc.Controller, sc.Dt, sc.TFinal, res)
		if err != nil {
			return ids, fmt.Errorf("run %d (%s): %w", i+1, sc.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
