package dashboard

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed assets/content.yaml
var defaultContent []byte

// Metric is a labelled editorial value.
type Metric struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Rating is a quality score out of five.
type Rating struct {
	Label string  `yaml:"label"`
	Score float64 `yaml:"score"`
}

// Scenario is one valuation scenario and its assumptions.
type Scenario struct {
	Summary     string   `yaml:"summary"`
	Assumptions []Metric `yaml:"assumptions"`
}

// Content is the static editorial copy of the dashboard.
type Content struct {
	Title      string     `yaml:"title"`
	LogoURL    string     `yaml:"logo_url"`
	KeyMetrics []Metric   `yaml:"key_metrics"`
	Quality    []Rating   `yaml:"quality"`
	Financials []Metric   `yaml:"financials"`
	Pros       []string   `yaml:"pros"`
	Cons       []string   `yaml:"cons"`
	Valuation  []Scenario `yaml:"valuation"`
}

// LoadContent reads editorial content from path, or the embedded default
// when path is empty.
func LoadContent(path string) (*Content, error) {
	data := defaultContent
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dashboard content: %w", err)
		}
	}

	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse dashboard content: %w", err)
	}
	for _, r := range c.Quality {
		if r.Score < 0 || r.Score > 5 {
			return nil, fmt.Errorf("quality %q: score %.1f out of range 0-5", r.Label, r.Score)
		}
	}
	return &c, nil
}
