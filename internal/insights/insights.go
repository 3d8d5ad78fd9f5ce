// Package insights provides the read-only affirmation and insight content.
package insights

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

//go:embed content.json
var content []byte

// Catalog is read-only display content. Nothing in the tracking core
// mutates it.
type Catalog interface {
	Affirmations() []string
	Insights() []models.Insight
	Insight(id string) (models.Insight, bool)
}

type catalog struct {
	affirmations []string
	insights     []models.Insight
	byID         map[string]int
}

type contentFile struct {
	Affirmations []string         `json:"affirmations"`
	Insights     []models.Insight `json:"insights"`
}

// Load parses the embedded content.
func Load() (Catalog, error) {
	return Parse(content)
}

// Parse builds a catalog from a content document.
func Parse(data []byte) (Catalog, error) {
	var f contentFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	c := &catalog{
		affirmations: f.Affirmations,
		insights:     f.Insights,
		byID:         make(map[string]int, len(f.Insights)),
	}
	for i, in := range f.Insights {
		if in.ID == "" {
			return nil, fmt.Errorf("insight %d has no id", i)
		}
		if _, dup := c.byID[in.ID]; dup {
			return nil, fmt.Errorf("duplicate insight id %q", in.ID)
		}
		c.byID[in.ID] = i
	}
	return c, nil
}

func (c *catalog) Affirmations() []string {
	return append([]string(nil), c.affirmations...)
}

func (c *catalog) Insights() []models.Insight {
	return append([]models.Insight(nil), c.insights...)
}

func (c *catalog) Insight(id string) (models.Insight, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Insight{}, false
	}
	return c.insights[i], true
}

// AffirmationFor picks the affirmation shown on a calendar day. The same day
// always yields the same affirmation.
func AffirmationFor(c Catalog, day time.Time) string {
	all := c.Affirmations()
	if len(all) == 0 {
		return ""
	}
	return all[day.YearDay()%len(all)]
}

// NextInsight returns the first insight not yet viewed, or the insight of
// the day once all have been seen.
func NextInsight(c Catalog, viewed []string, day time.Time) (models.Insight, bool) {
	all := c.Insights()
	if len(all) == 0 {
		return models.Insight{}, false
	}
	seen := make(map[string]bool, len(viewed))
	for _, id := range viewed {
		seen[id] = true
	}
	for _, in := range all {
		if !seen[in.ID] {
			return in, true
		}
	}
	return all[day.YearDay()%len(all)], true
}
