package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type IndustryInsight struct {
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

type User struct {
	ID          uuid.UUID
	ClerkUserID string
	Email       string
	Name        string
	ImageUrl    string
	Industry    sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
