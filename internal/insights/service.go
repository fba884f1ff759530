// Package insights generates, stores and refreshes AI-written industry
// insights.
package insights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerinsights/internal/archive"
	"github.com/muhammadolammi/careerinsights/internal/database"
	"github.com/muhammadolammi/careerinsights/internal/events"
	"github.com/muhammadolammi/careerinsights/internal/identity"
	"github.com/muhammadolammi/careerinsights/internal/logger"
)

// Store is the slice of the generated query layer the service needs.
type Store interface {
	GetUserByClerkID(ctx context.Context, clerkUserID string) (database.User, error)
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	UpdateUserIndustry(ctx context.Context, arg database.UpdateUserIndustryParams) (database.User, error)
	GetIndustryInsight(ctx context.Context, industry string) (database.IndustryInsight, error)
	CreateIndustryInsight(ctx context.Context, arg database.CreateIndustryInsightParams) (database.IndustryInsight, error)
	UpdateIndustryInsight(ctx context.Context, arg database.UpdateIndustryInsightParams) (database.IndustryInsight, error)
	ListIndustries(ctx context.Context) ([]string, error)
}

type Service struct {
	store     Store
	generator Generator
	archiver  archive.Archiver
	events    events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithArchiver(a archive.Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, generator Generator, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		generator: generator,
		archiver:  archive.Nop{},
		events:    events.Nop{},
		log:       log.With("component", "insights"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetIndustryInsights returns the insight for the caller's industry, creating
// it on first request. Existing insights are returned as stored; only the
// weekly refresh updates them.
func (s *Service) GetIndustryInsights(ctx context.Context, id *identity.Identity) (*Record, error) {
	if id == nil {
		return nil, ErrUnauthorized
	}
	user, err := s.ResolveUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	industry := strings.TrimSpace(user.Industry.String)
	if !user.Industry.Valid || industry == "" {
		return nil, ErrIndustryNotSet
	}

	row, err := s.store.GetIndustryInsight(ctx, industry)
	if err == nil {
		return recordFromRow(row)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get industry insight: %w", err)
	}

	insight, err := s.GenerateInsights(ctx, industry)
	if err != nil {
		return nil, err
	}
	return s.createInsight(ctx, industry, insight)
}

// GenerateInsights prompts the model for industry and parses the answer.
// Parse failures are logged with the raw text and archived.
func (s *Service) GenerateInsights(ctx context.Context, industry string) (*Insight, error) {
	raw, err := s.generator.Generate(ctx, BuildPrompt(industry))
	if err != nil {
		return nil, err
	}
	insight, err := Parse(raw)
	if err != nil {
		s.reportParseFailure(ctx, industry, raw, err)
		return nil, err
	}
	return insight, nil
}

func (s *Service) createInsight(ctx context.Context, industry string, insight *Insight) (*Record, error) {
	salaryRanges, err := insight.salaryRangesJSON()
	if err != nil {
		return nil, err
	}
	now := s.now()
	row, err := s.store.CreateIndustryInsight(ctx, database.CreateIndustryInsightParams{
		ID:                uuid.New(),
		Industry:          industry,
		SalaryRanges:      salaryRanges,
		GrowthRate:        insight.GrowthRate,
		DemandLevel:       string(insight.DemandLevel),
		TopSkills:         emptyIfNil(insight.TopSkills),
		MarketOutlook:     string(insight.MarketOutlook),
		KeyTrends:         emptyIfNil(insight.KeyTrends),
		RecommendedSkills: emptyIfNil(insight.RecommendedSkills),
		LastUpdated:       now,
		NextUpdate:        now.Add(RefreshInterval),
	})
	if errors.Is(err, sql.ErrNoRows) {
		// A concurrent request created it first; the unique key kept one row.
		s.log.Info("industry insight already created, re-reading", "industry", industry)
		row, err = s.store.GetIndustryInsight(ctx, industry)
		if err != nil {
			return nil, fmt.Errorf("re-read industry insight: %w", err)
		}
		return recordFromRow(row)
	}
	if err != nil {
		return nil, fmt.Errorf("create industry insight: %w", err)
	}

	s.log.Info("created industry insight", "industry", industry, "next_update", row.NextUpdate)
	s.publish(ctx, industry, events.StatusCreated, now)
	return recordFromRow(row)
}

func (s *Service) reportParseFailure(ctx context.Context, industry, raw string, err error) {
	s.log.Error("failed to parse AI response", "industry", industry, "raw", raw, "error", err)
	key, archiveErr := s.archiver.Archive(ctx, industry, raw)
	if archiveErr != nil {
		s.log.Warn("failed to archive AI response", "industry", industry, "error", archiveErr)
		return
	}
	if key != "" {
		s.log.Info("archived AI response", "industry", industry, "key", key)
	}
}

func (s *Service) publish(ctx context.Context, industry, status string, at time.Time) {
	err := s.events.Publish(ctx, events.Update{Industry: industry, Status: status, Timestamp: at})
	if err != nil {
		s.log.Warn("failed to publish update", "industry", industry, "status", status, "error", err)
	}
}
