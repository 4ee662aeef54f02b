package advisor

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/greentrack/internal/common"
)

//go:embed advice.yaml
var embeddedAdvice []byte

// Scheme is a government programme referenced from a piece of advice.
type Scheme struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	LinkText    string `yaml:"linkText"`
}

// Step is one numbered item of six-step advice.
type Step struct {
	Title   string   `yaml:"title"`
	Body    string   `yaml:"body"`
	Benefit string   `yaml:"benefit"`
	Schemes []Scheme `yaml:"schemes"`
}

// Advice is an ordered list of steps.
type Advice struct {
	Steps []Step `yaml:"steps"`
}

// Topic binds advice to the keyword that selects it.
type Topic struct {
	Keyword string `yaml:"keyword"`
	Advice  `yaml:",inline"`
}

// Catalog is the canned advice used when the chat model is unavailable.
type Catalog struct {
	Topics  []Topic `yaml:"topics"`
	Default Advice  `yaml:"default"`
}

// DefaultCatalog decodes the embedded advice catalog.
func DefaultCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(embeddedAdvice, &c); err != nil {
		return nil, fmt.Errorf("parse advice catalog: %w", err)
	}
	if len(c.Default.Steps) == 0 {
		return nil, errors.New("advice catalog has no default entry")
	}
	return &c, nil
}

// Match returns the advice of the first topic whose keyword occurs in text,
// ignoring case, or the default advice.
func (c *Catalog) Match(text string) Advice {
	keywords := make([]string, 0, len(c.Topics))
	for _, t := range c.Topics {
		keywords = append(keywords, t.Keyword)
	}

	keyword, ok := common.FirstContained(text, keywords...)
	if !ok {
		return c.Default
	}
	for _, t := range c.Topics {
		if t.Keyword == keyword {
			return t.Advice
		}
	}
	return c.Default
}
