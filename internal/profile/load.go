package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio/internal/types"
)

var validate = validator.New()

// LoadProfile loads a profile from a .json, .yaml or .yml file
func LoadProfile(path string) (*types.Profile, error) {
	var p types.Profile
	if err := decodeFile(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadCatalog loads the showcase project catalog from a .json, .yaml or .yml file
func LoadCatalog(path string) (*types.ShowcaseCatalog, error) {
	var c types.ShowcaseCatalog
	if err := decodeFile(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeFile(path string, v interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, v); err != nil {
			return &LoadError{
				Message: "failed to unmarshal YAML",
				Cause:   err,
			}
		}
	case ".json":
		if err := json.Unmarshal(content, v); err != nil {
			return &LoadError{
				Message: "failed to unmarshal JSON",
				Cause:   err,
			}
		}
	default:
		return &LoadError{Message: fmt.Sprintf("unsupported file extension %q", ext)}
	}
	return nil
}

// Check runs the struct validation tags over p. The layout engine itself
// never validates, so callers run this before serving a profile.
func Check(p *types.Profile) error {
	if p == nil {
		return &CheckError{Problems: []string{"profile is nil"}}
	}
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s - %s", fe.Namespace(), fe.Tag()))
	}
	return &CheckError{Problems: problems}
}
