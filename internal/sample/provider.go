// Package sample provides the bundled demonstration dataset.
package sample

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/primex/opportunity-dashboard/internal/domain"
)

//go:embed opportunities.yaml
var opportunitiesYAML []byte

// DemoNotice is emitted on every load so users know the data is not live.
const DemoNotice = "Loading sample data for demonstration. Live data collection is not configured for this environment."

const collectedAtLayout = "2006-01-02T15:04:05"

type dataset struct {
	Opportunities []record `yaml:"opportunities"`
}

// record mirrors one YAML entry.
type record struct {
	ID                int      `yaml:"id"`
	Type              string   `yaml:"type"`
	PermitNumber      string   `yaml:"permit_number,omitempty"`
	ProcessNumber     string   `yaml:"process_number,omitempty"`
	ConstructionValue *float64 `yaml:"construction_value,omitempty"`
	InvestmentValue   *float64 `yaml:"investment_value,omitempty"`
	EstimatedValue    *float64 `yaml:"estimated_value,omitempty"`
	Municipality      string   `yaml:"municipality"`
	Status            string   `yaml:"status"`
	Score             float64  `yaml:"score"`
	Priority          string   `yaml:"priority"`
	SuggestedAction   string   `yaml:"suggested_action"`
	CollectedAt       string   `yaml:"collected_at"`
	Address           string   `yaml:"address"`
}

// Provider decodes the dataset once and hands out copies.
type Provider struct {
	data []byte

	once    sync.Once
	records []domain.Opportunity
	err     error
}

// NewProvider returns a provider over the embedded dataset.
func NewProvider() *Provider {
	return &Provider{data: opportunitiesYAML}
}

// NewProviderFromYAML returns a provider over the given YAML document.
func NewProviderFromYAML(data []byte) *Provider {
	return &Provider{data: data}
}

// Opportunities returns a fresh copy of the dataset with TotalValue derived.
// The first call decodes the YAML; later calls reuse the result, including a
// decode error.
func (p *Provider) Opportunities(n domain.Notifier) ([]domain.Opportunity, error) {
	domain.Notifyf(n, domain.NoticeInfo, DemoNotice)

	p.once.Do(func() {
		p.records, p.err = decode(p.data)
	})
	if p.err != nil {
		return nil, p.err
	}
	return domain.CloneOpportunities(p.records), nil
}

func decode(data []byte) ([]domain.Opportunity, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode sample dataset: %w", err)
	}

	out := make([]domain.Opportunity, 0, len(ds.Opportunities))
	for _, r := range ds.Opportunities {
		collectedAt, err := time.Parse(collectedAtLayout, r.CollectedAt)
		if err != nil {
			return nil, fmt.Errorf("opportunity %d: parse collected_at: %w", r.ID, err)
		}
		opp := domain.Opportunity{
			ID:                r.ID,
			Type:              r.Type,
			PermitNumber:      r.PermitNumber,
			ProcessNumber:     r.ProcessNumber,
			ConstructionValue: r.ConstructionValue,
			InvestmentValue:   r.InvestmentValue,
			EstimatedValue:    r.EstimatedValue,
			Municipality:      r.Municipality,
			Status:            r.Status,
			Score:             r.Score,
			Priority:          r.Priority,
			SuggestedAction:   r.SuggestedAction,
			CollectedAt:       collectedAt,
			Address:           r.Address,
		}
		opp.TotalValue = domain.DeriveTotalValue(opp)
		out = append(out, opp)
	}
	return out, nil
}
