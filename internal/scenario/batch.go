package scenario

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/equilib/internal/config"
)

// Batch is a named list of markets loaded from YAML.
type Batch struct {
	Name        string
	Description string
	Markets     []*config.Config
}

type batchFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Markets     []yaml.Node `yaml:"markets"`
}

// LoadBatch reads a batch file. Each market starts from the default config
// or, when it names a preset, from that preset.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBatch(data)
}

func ParseBatch(data []byte) (*Batch, error) {
	var raw batchFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	b := &Batch{Name: raw.Name, Description: raw.Description}
	for i := range raw.Markets {
		node := &raw.Markets[i]

		var head struct {
			Preset string `yaml:"preset"`
		}
		if err := node.Decode(&head); err != nil {
			return nil, fmt.Errorf("market %d: %w", i+1, err)
		}

		cfg := config.DefaultConfig()
		if head.Preset != "" {
			cfg = config.GetPreset(head.Preset)
			if cfg == nil {
				return nil, fmt.Errorf("market %d: unknown preset: %s", i+1, head.Preset)
			}
		}
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("market %d: %w", i+1, err)
		}
		if cfg.Name == "" {
			cfg.Name = fmt.Sprintf("market%d", i+1)
		}
		b.Markets = append(b.Markets, cfg)
	}
	return b, nil
}

// Entry is the outcome of one batch market. Exactly one of Outcome and Err is set.
type Entry struct {
	Name    string
	Outcome *Outcome
	Err     error
}

// RunBatch solves every market in order. A failing market is recorded and the
// batch continues; only context cancellation stops it early.
func RunBatch(ctx context.Context, b *Batch, onEntry func(i int, e Entry)) ([]Entry, error) {
	entries := make([]Entry, 0, len(b.Markets))

	for i, cfg := range b.Markets {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		e := Entry{Name: cfg.Name}
		m, err := New(cfg)
		if err != nil {
			e.Err = err
		} else {
			e.Outcome, e.Err = m.Run(ctx)
		}

		entries = append(entries, e)
		if onEntry != nil {
			onEntry(i, e)
		}
	}

	return entries, nil
}
