package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/devroster-backend/internal/domain"
	apperrors "github.com/yungbote/devroster-backend/internal/pkg/errors"
)

//go:embed developers.yaml
var defaultSeed []byte

type file struct {
	Developers []entry `yaml:"developers"`
}

type entry struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	IsJunior   bool     `yaml:"isJunior"`
	Frameworks []string `yaml:"frameworks"`
}

// Default returns the embedded sample roster.
func Default() ([]types.Developer, error) {
	return Load(bytes.NewReader(defaultSeed))
}

// LoadFile reads a seed file; an empty path means the embedded sample.
func LoadFile(path string) ([]types.Developer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	devs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return devs, nil
}

// Load decodes and validates a YAML roster. Unknown keys are rejected.
func Load(r io.Reader) ([]types.Developer, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]types.Developer, 0, len(f.Developers))
	for _, e := range f.Developers {
		dev := types.Developer{
			ID:         strings.TrimSpace(e.ID),
			Name:       e.Name,
			IsJunior:   e.IsJunior,
			Frameworks: make([]types.Framework, 0, len(e.Frameworks)),
		}
		for _, name := range e.Frameworks {
			name = strings.TrimSpace(name)
			if name == "" || dev.HasFramework(name) {
				continue
			}
			dev.Frameworks = append(dev.Frameworks, types.Framework{Name: name})
		}
		out = append(out, dev)
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks names are present and ids and names are unique. Entries
// without an id are allowed; the registry assigns one.
func Validate(devs []types.Developer) error {
	ids := make(map[string]int, len(devs))
	names := make(map[string]int, len(devs))
	for i, d := range devs {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("developer #%d: %w: name is required", i, apperrors.ErrInvalidArgument)
		}
		if d.ID != "" {
			if prev, ok := ids[d.ID]; ok {
				return fmt.Errorf("developer #%d: %w: id %q already used by #%d", i, apperrors.ErrInvalidArgument, d.ID, prev)
			}
			ids[d.ID] = i
		}
		if prev, ok := names[d.Name]; ok {
			return fmt.Errorf("developer #%d: %w: %q already used by #%d", i, apperrors.ErrDuplicateName, d.Name, prev)
		}
		names[d.Name] = i
	}
	return nil
}
