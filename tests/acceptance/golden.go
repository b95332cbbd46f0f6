package acceptance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Expectations is the recorded outcome of running both commands over the fixture tree.
type Expectations struct {
	Budget [][]string    `json:"budget"`
	Concat ConcatOutcome `json:"concat"`
}

type ConcatOutcome struct {
	Pages  int      `json:"pages"`
	Added  []string `json:"added"`
	Failed []string `json:"failed"`
}

// GoldenStore reads expected.json, or rewrites it when UPDATE_TEST_DATA=true.
type GoldenStore struct {
	path   string
	update bool
}

func NewGoldenStore(testDataPath string) *GoldenStore {
	return &GoldenStore{
		path:   filepath.Join(testDataPath, "expected.json"),
		update: os.Getenv("UPDATE_TEST_DATA") == "true",
	}
}

func (s *GoldenStore) Load() (Expectations, error) {
	var exp Expectations

	data, err := os.ReadFile(s.path)
	if err != nil {
		return exp, fmt.Errorf("failed to read golden file: %w", err)
	}

	if err := json.Unmarshal(data, &exp); err != nil {
		return exp, fmt.Errorf("failed to parse golden file: %w", err)
	}

	return exp, nil
}

func (s *GoldenStore) Save(exp Expectations) error {
	if !s.update {
		return nil
	}

	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal expectations: %w", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}

	return nil
}

func (s *GoldenStore) IsUpdateMode() bool {
	return s.update
}
