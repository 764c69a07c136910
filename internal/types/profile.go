// Package types provides type definitions for structured data used throughout the portfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is the résumé record consumed by the layout engine and the exporters.
// It is assembled wholesale before rendering and never mutated afterwards.
type Profile struct {
	Name       string            `json:"name" yaml:"name" validate:"required"`
	Contact    Contact           `json:"contact" yaml:"contact"`
	Summary    string            `json:"summary" yaml:"summary"`
	Education  []EducationEntry  `json:"education" yaml:"education" validate:"dive"`
	Experience []ExperienceEntry `json:"experience" yaml:"experience" validate:"dive"`
	Projects   []ProjectEntry    `json:"projects" yaml:"projects" validate:"dive"`
	Skills     SkillGroups       `json:"skills" yaml:"skills"`
}

// Contact holds the labeled contact strings shown under the name
type Contact struct {
	Email    string `json:"email" yaml:"email" validate:"omitempty,email"`
	CodeHost string `json:"code_host,omitempty" yaml:"code_host,omitempty"`
	Social   string `json:"social,omitempty" yaml:"social,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// EducationEntry is one degree; Details is optional
type EducationEntry struct {
	Institution string `json:"institution" yaml:"institution" validate:"required"`
	Degree      string `json:"degree" yaml:"degree" validate:"required"`
	Dates       string `json:"dates" yaml:"dates"`
	Details     string `json:"details,omitempty" yaml:"details,omitempty"`
}

// ExperienceEntry is one role with its responsibility bullets in render order
type ExperienceEntry struct {
	Title            string   `json:"title" yaml:"title" validate:"required"`
	Organization     string   `json:"organization" yaml:"organization"`
	Dates            string   `json:"dates" yaml:"dates"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
}

// ProjectEntry is a résumé project line (not the showcase card, see ShowcaseProject)
type ProjectEntry struct {
	Name         string `json:"name" yaml:"name" validate:"required"`
	Description  string `json:"description" yaml:"description"`
	Technologies string `json:"technologies" yaml:"technologies"`
}

// SkillGroup is a category label with its skills
type SkillGroup struct {
	Category string   `json:"category" yaml:"category"`
	Skills   []string `json:"skills" yaml:"skills"`
}

// SkillGroups is an ordered category -> skills mapping.
// It is encoded as a JSON object / YAML mapping whose key order is the render order.
type SkillGroups []SkillGroup

// Categories returns the category labels in order
func (g SkillGroups) Categories() []string {
	out := make([]string, 0, len(g))
	for _, grp := range g {
		out = append(out, grp.Category)
	}
	return out
}

// UnmarshalJSON decodes a JSON object keeping the key order
func (g *SkillGroups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected an object of category -> skills, got %v", tok)
	}

	groups := SkillGroups{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		category, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("skills: unexpected key %v", keyTok)
		}

		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("skills[%q]: %w", category, err)
		}
		groups = append(groups, SkillGroup{Category: category, Skills: skills})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("skills: %w", err)
	}

	*g = groups
	return nil
}

// MarshalJSON encodes the groups as a JSON object in slice order
func (g SkillGroups) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, grp := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(grp.Category)
		if err != nil {
			return nil, err
		}
		skills := grp.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping keeping the key order
func (g *SkillGroups) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("skills: expected a mapping of category -> skills at line %d", value.Line)
	}

	groups := make(SkillGroups, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var skills []string
		if err := valNode.Decode(&skills); err != nil {
			return fmt.Errorf("skills[%q]: %w", keyNode.Value, err)
		}
		groups = append(groups, SkillGroup{Category: keyNode.Value, Skills: skills})
	}

	*g = groups
	return nil
}

// MarshalYAML encodes the groups as an ordered YAML mapping
func (g SkillGroups) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, grp := range g {
		var val yaml.Node
		if err := val.Encode(grp.Skills); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: grp.Category},
			&val,
		)
	}
	return node, nil
}
