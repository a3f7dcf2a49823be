package settings

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// fileSettings mirrors ParentSettings for YAML with optional fields, so that
// a file listing only some categories keeps the defaults for the rest.
type fileSettings struct {
	QuestionCounts   map[string]int `yaml:"question_counts"`
	ShuffleQuestions *bool          `yaml:"shuffle_questions"`
	CustomRewards    []CustomReward `yaml:"custom_rewards"`
}

// UnmarshalYAML parses a settings document over base and validates it.
func UnmarshalYAML(data []byte, base ParentSettings) (ParentSettings, error) {
	var f fileSettings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return ParentSettings{}, fmt.Errorf("decode settings: %w", err)
	}

	out := base
	out.QuestionCounts = MergeCounts(base.QuestionCounts, f.QuestionCounts)
	if f.ShuffleQuestions != nil {
		out.ShuffleQuestions = *f.ShuffleQuestions
	}
	if f.CustomRewards != nil {
		out.CustomRewards = f.CustomRewards
	}

	if err := out.Validate(); err != nil {
		return ParentSettings{}, err
	}
	return out, nil
}

// MarshalYAML renders s as a settings document.
func MarshalYAML(s ParentSettings) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return buf.Bytes(), nil
}
