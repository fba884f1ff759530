package insights

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerinsights/internal/database"
)

// RefreshInterval is the gap between lastUpdated and nextUpdate on every write.
const RefreshInterval = 7 * 24 * time.Hour

type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "Positive"
	OutlookNeutral  MarketOutlook = "Neutral"
	OutlookNegative MarketOutlook = "Negative"
)

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// Insight is the generated part of an industry insight, in the JSON shape the
// model is asked to return.
type Insight struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       DemandLevel   `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     MarketOutlook `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

// Record is a stored insight as returned to callers.
type Record struct {
	ID       uuid.UUID `json:"id"`
	Industry string    `json:"industry"`
	Insight
	LastUpdated time.Time `json:"lastUpdated"`
	NextUpdate  time.Time `json:"nextUpdate"`
}

func recordFromRow(row database.IndustryInsight) (*Record, error) {
	rec := &Record{
		ID:       row.ID,
		Industry: row.Industry,
		Insight: Insight{
			GrowthRate:        row.GrowthRate,
			DemandLevel:       DemandLevel(row.DemandLevel),
			TopSkills:         row.TopSkills,
			MarketOutlook:     MarketOutlook(row.MarketOutlook),
			KeyTrends:         row.KeyTrends,
			RecommendedSkills: row.RecommendedSkills,
		},
		LastUpdated: row.LastUpdated,
		NextUpdate:  row.NextUpdate,
	}
	if len(row.SalaryRanges) > 0 {
		if err := json.Unmarshal(row.SalaryRanges, &rec.SalaryRanges); err != nil {
			return nil, fmt.Errorf("decode salary ranges for %s: %w", row.Industry, err)
		}
	}
	return rec, nil
}

func (in *Insight) salaryRangesJSON() (json.RawMessage, error) {
	ranges := in.SalaryRanges
	if ranges == nil {
		ranges = []SalaryRange{}
	}
	b, err := json.Marshal(ranges)
	if err != nil {
		return nil, fmt.Errorf("marshal salary ranges: %w", err)
	}
	return b, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
