package calendar

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML rule set from path and returns a Calendar for it.
// Unknown fields are rejected so that typos fail loudly instead of silently dropping a rule.
func LoadRules(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	c, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseRules decodes a YAML rule set.
func ParseRules(data []byte) (*Calendar, error) {
	var set RuleSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	return New(set)
}
