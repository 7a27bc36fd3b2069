// Package dashboard builds the view model behind the opportunity dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// ErrNoData means the dataset could not be loaded or is empty. Nothing but
// NoDataMessage is shown in that case.
var ErrNoData = errors.New("no opportunity data")

// NoDataMessage is the blocking message shown with ErrNoData.
const NoDataMessage = "Could not load the opportunity data. Check the data loader."

const (
	title          = "PRIMEX SYSTEM - MONITORING DASHBOARD"
	subtitle       = "Interactive dashboard for subcontracting opportunity analysis"
	footerCompany  = "PRIMEX CONSULTORIA"
	footerTagline  = "Construction and Opportunity Monitoring Dashboard"
	footerEmail    = "primexconsultoria4data@gmail.com"
	footerWhatsApp = "+55 11 97662 2584"
)

// DataProvider supplies the opportunity records. Each call returns records
// the caller may modify.
type DataProvider interface {
	Opportunities(n domain.Notifier) ([]domain.Opportunity, error)
}

// Service assembles dashboard views.
type Service struct {
	provider DataProvider
	resolver domain.AddressResolver
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewService creates a dashboard service. A nil resolver disables
// geocoding and leaves the map empty.
func NewService(provider DataProvider, resolver domain.AddressResolver, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Build loads, geocodes and aggregates the dataset. selectedType drives the
// details section only; every other section covers the full dataset.
func (s *Service) Build(ctx context.Context, selectedType string) (*View, error) {
	start := time.Now()
	defer func() {
		s.metrics.DashboardBuildDuration.Observe(time.Since(start).Seconds())
	}()

	view := &View{Title: title, Subtitle: subtitle, Notices: domain.Notices{}}

	records, err := s.provider.Opportunities(&view.Notices)
	if err != nil {
		s.logger.Error("load opportunities", "error", err)
		s.metrics.DashboardRenders.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if len(records) == 0 {
		s.metrics.DashboardRenders.WithLabelValues("no_data").Inc()
		return nil, ErrNoData
	}

	view.Geocoding = domain.AttachCoordinates(ctx, records, s.resolver, &view.Notices, s.logger)

	view.Overview = buildOverview(records)
	view.Charts = buildCharts(records)
	view.Map = buildMap(records)
	view.Details = buildDetails(records, selectedType)
	view.Footer = Footer{
		Company:     footerCompany,
		Tagline:     footerTagline,
		Email:       footerEmail,
		WhatsApp:    footerWhatsApp,
		GeneratedAt: generatedAt(s.clock.Now()),
	}

	s.metrics.DashboardRenders.WithLabelValues("ok").Inc()
	s.logger.Debug("dashboard built",
		"records", len(records),
		"geocoded", view.Geocoding.Resolved,
		"selected_type", view.Details.Selected,
	)
	return view, nil
}

// CheckReadiness returns nil once the dataset loads and is non-empty.
func (s *Service) CheckReadiness(_ context.Context) error {
	records, err := s.provider.Opportunities(nil)
	if err != nil {
		return fmt.Errorf("load opportunities: %w", err)
	}
	if len(records) == 0 {
		return ErrNoData
	}
	return nil
}

func buildOverview(records []domain.Opportunity) Overview {
	total := sumValue(records)
	return Overview{
		TotalOpportunities: len(records),
		OpportunityTypes:   len(domain.DistinctTypes(records)),
		Municipalities:     len(domain.DistinctMunicipalities(records)),
		TotalValue:         total,
		TotalValueLabel:    FormatBRL(total),
	}
}

func generatedAt(t time.Time) string {
	return "Generated on " + t.Format("02/01/2006") + " at " + t.Format("15:04")
}
