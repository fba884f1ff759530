package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createIndustryInsight = `-- name: CreateIndustryInsight :one
INSERT INTO industry_insights (
id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update)
VALUES ( $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (industry) DO NOTHING
RETURNING id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update
`

type CreateIndustryInsightParams struct {
	ID                uuid.UUID
	Industry          string
	SalaryRanges      json.RawMessage
	GrowthRate        float64
	DemandLevel       string
	TopSkills         []string
	MarketOutlook     string
	KeyTrends         []string
	RecommendedSkills []string
	LastUpdated       time.Time
	NextUpdate        time.Time
}

func (q *Queries) CreateIndustryInsight(ctx context.Context, arg CreateIndustryInsightParams) (IndustryInsight, error) {
	row := q.db.QueryRowContext(ctx, createIndustryInsight,
		arg.ID,
		arg.Industry,
		arg.SalaryRanges,
		arg.GrowthRate,
		arg.DemandLevel,
		pq.Array(arg.TopSkills),
		arg.MarketOutlook,
		pq.Array(arg.KeyTrends),
		pq.Array(arg.RecommendedSkills),
		arg.LastUpdated,
		arg.NextUpdate,
	)
	var i IndustryInsight
	err := row.Scan(
		&i.ID,
		&i.Industry,
		&i.SalaryRanges,
		&i.GrowthRate,
		&i.DemandLevel,
		pq.Array(&i.TopSkills),
		&i.MarketOutlook,
		pq.Array(&i.KeyTrends),
		pq.Array(&i.RecommendedSkills),
		&i.LastUpdated,
		&i.NextUpdate,
	)
	return i, err
}

const getIndustryInsight = `-- name: GetIndustryInsight :one
SELECT id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update FROM industry_insights WHERE industry=$1
`

func (q *Queries) GetIndustryInsight(ctx context.Context, industry string) (IndustryInsight, error) {
	row := q.db.QueryRowContext(ctx, getIndustryInsight, industry)
	var i IndustryInsight
	err := row.Scan(
		&i.ID,
		&i.Industry,
		&i.SalaryRanges,
		&i.GrowthRate,
		&i.DemandLevel,
		pq.Array(&i.TopSkills),
		&i.MarketOutlook,
		pq.Array(&i.KeyTrends),
		pq.Array(&i.RecommendedSkills),
		&i.LastUpdated,
		&i.NextUpdate,
	)
	return i, err
}

const listIndustries = `-- name: ListIndustries :many
SELECT industry FROM industry_insights ORDER BY industry
`

func (q *Queries) ListIndustries(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listIndustries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, err
		}
		items = append(items, industry)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateIndustryInsight = `-- name: UpdateIndustryInsight :one
UPDATE industry_insights
SET salary_ranges=$1,
    growth_rate=$2,
    demand_level=$3,
    top_skills=$4,
    market_outlook=$5,
    key_trends=$6,
    recommended_skills=$7,
    last_updated=$8,
    next_update=$9
WHERE industry=$10
RETURNING id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update
`

type UpdateIndustryInsightParams struct {
	SalaryRanges      json.RawMessage
	GrowthRate        float64
	DemandLevel       string
	TopSkills         []string
	MarketOutlook     string
	KeyTrends         []string
	RecommendedSkills []string
	LastUpdated       time.Time
	NextUpdate        time.Time
	Industry          string
}

func (q *Queries) UpdateIndustryInsight(ctx context.Context, arg UpdateIndustryInsightParams) (IndustryInsight, error) {
	row := q.db.QueryRowContext(ctx, updateIndustryInsight,
		arg.SalaryRanges,
		arg.GrowthRate,
		arg.DemandLevel,
		pq.Array(arg.TopSkills),
		arg.MarketOutlook,
		pq.Array(arg.KeyTrends),
		pq.Array(arg.RecommendedSkills),
		arg.LastUpdated,
		arg.NextUpdate,
		arg.Industry,
	)
	var i IndustryInsight
	err := row.Scan(
		&i.ID,
		&i.Industry,
		&i.SalaryRanges,
		&i.GrowthRate,
		&i.DemandLevel,
		pq.Array(&i.TopSkills),
		&i.MarketOutlook,
		pq.Array(&i.KeyTrends),
		pq.Array(&i.RecommendedSkills),
		&i.LastUpdated,
		&i.NextUpdate,
	)
	return i, err
}
