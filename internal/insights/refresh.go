package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careerinsights/internal/database"
	"github.com/muhammadolammi/careerinsights/internal/events"
)

type SkippedIndustry struct {
	Industry string
	Err      error
}

// RefreshReport summarizes one RefreshAll run.
type RefreshReport struct {
	Updated []string
	Skipped []SkippedIndustry
}

// RefreshAll regenerates every stored industry, one at a time. A failing
// industry is logged and left untouched; the loop moves on to the next one.
// The returned error is only set when the industry list cannot be read or ctx
// is cancelled.
func (s *Service) RefreshAll(ctx context.Context) (RefreshReport, error) {
	var report RefreshReport

	industries, err := s.store.ListIndustries(ctx)
	if err != nil {
		return report, fmt.Errorf("list industries: %w", err)
	}
	s.log.Info("refresh started", "industries", len(industries))

	for _, industry := range industries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.RefreshIndustry(ctx, industry); err != nil {
			s.log.Error("skipping industry", "industry", industry, "error", err)
			report.Skipped = append(report.Skipped, SkippedIndustry{Industry: industry, Err: err})
			continue
		}
		report.Updated = append(report.Updated, industry)
	}

	s.log.Info("refresh complete", "updated", len(report.Updated), "skipped", len(report.Skipped))
	return report, nil
}

// RefreshIndustry overwrites the generated fields of one stored insight.
func (s *Service) RefreshIndustry(ctx context.Context, industry string) error {
	raw, err := s.generator.Generate(ctx, BuildPrompt(industry))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyResponse
	}

	insight, err := Parse(raw)
	if err != nil {
		s.reportParseFailure(ctx, industry, raw, err)
		return err
	}
	salaryRanges, err := insight.salaryRangesJSON()
	if err != nil {
		return err
	}

	now := s.now()
	_, err = s.store.UpdateIndustryInsight(ctx, database.UpdateIndustryInsightParams{
		SalaryRanges:      salaryRanges,
		GrowthRate:        insight.GrowthRate,
		DemandLevel:       string(insight.DemandLevel),
		TopSkills:         emptyIfNil(insight.TopSkills),
		MarketOutlook:     string(insight.MarketOutlook),
		KeyTrends:         emptyIfNil(insight.KeyTrends),
		RecommendedSkills: emptyIfNil(insight.RecommendedSkills),
		LastUpdated:       now,
		NextUpdate:        now.Add(RefreshInterval),
		Industry:          industry,
	})
	if err != nil {
		return fmt.Errorf("update industry insight: %w", err)
	}

	s.log.Info("refreshed industry insight", "industry", industry)
	s.publish(ctx, industry, events.StatusRefreshed, now)
	return nil
}
