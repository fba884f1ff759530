package insights

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerinsights/internal/database"
	"github.com/muhammadolammi/careerinsights/internal/events"
)

// fakeStore is an in-memory Store that counts every call.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]database.User
	insights map[string]database.IndustryInsight

	reads  int
	writes int

	// createUserConflict makes CreateUser behave as if another request won.
	createUserConflict bool
	// beforeCreateInsight runs inside CreateIndustryInsight, simulating a
	// concurrent writer.
	beforeCreateInsight func(f *fakeStore)
	updateErr           map[string]error
	listErr             error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]database.User{},
		insights:  map[string]database.IndustryInsight{},
		updateErr: map[string]error{},
	}
}

func (f *fakeStore) GetUserByClerkID(_ context.Context, clerkUserID string) (database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	u, ok := f.users[clerkUserID]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) CreateUser(_ context.Context, arg database.CreateUserParams) (database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.createUserConflict {
		return database.User{}, sql.ErrNoRows
	}
	if _, ok := f.users[arg.ClerkUserID]; ok {
		return database.User{}, sql.ErrNoRows
	}
	u := database.User{
		ID:          arg.ID,
		ClerkUserID: arg.ClerkUserID,
		Email:       arg.Email,
		Name:        arg.Name,
		ImageUrl:    arg.ImageUrl,
	}
	f.users[arg.ClerkUserID] = u
	return u, nil
}

func (f *fakeStore) UpdateUserIndustry(_ context.Context, arg database.UpdateUserIndustryParams) (database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	for k, u := range f.users {
		if u.ID == arg.ID {
			u.Industry = arg.Industry
			f.users[k] = u
			return u, nil
		}
	}
	return database.User{}, sql.ErrNoRows
}

func (f *fakeStore) GetIndustryInsight(_ context.Context, industry string) (database.IndustryInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	row, ok := f.insights[industry]
	if !ok {
		return database.IndustryInsight{}, sql.ErrNoRows
	}
	return row, nil
}

func (f *fakeStore) CreateIndustryInsight(_ context.Context, arg database.CreateIndustryInsightParams) (database.IndustryInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.beforeCreateInsight != nil {
		f.beforeCreateInsight(f)
	}
	if _, ok := f.insights[arg.Industry]; ok {
		return database.IndustryInsight{}, sql.ErrNoRows
	}
	row := database.IndustryInsight{
		ID:                arg.ID,
		Industry:          arg.Industry,
		SalaryRanges:      arg.SalaryRanges,
		GrowthRate:        arg.GrowthRate,
		DemandLevel:       arg.DemandLevel,
		TopSkills:         arg.TopSkills,
		MarketOutlook:     arg.MarketOutlook,
		KeyTrends:         arg.KeyTrends,
		RecommendedSkills: arg.RecommendedSkills,
		LastUpdated:       arg.LastUpdated,
		NextUpdate:        arg.NextUpdate,
	}
	f.insights[arg.Industry] = row
	return row, nil
}

func (f *fakeStore) UpdateIndustryInsight(_ context.Context, arg database.UpdateIndustryInsightParams) (database.IndustryInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if err := f.updateErr[arg.Industry]; err != nil {
		return database.IndustryInsight{}, err
	}
	row, ok := f.insights[arg.Industry]
	if !ok {
		return database.IndustryInsight{}, sql.ErrNoRows
	}
	row.SalaryRanges = arg.SalaryRanges
	row.GrowthRate = arg.GrowthRate
	row.DemandLevel = arg.DemandLevel
	row.TopSkills = arg.TopSkills
	row.MarketOutlook = arg.MarketOutlook
	row.KeyTrends = arg.KeyTrends
	row.RecommendedSkills = arg.RecommendedSkills
	row.LastUpdated = arg.LastUpdated
	row.NextUpdate = arg.NextUpdate
	f.insights[arg.Industry] = row
	return row, nil
}

func (f *fakeStore) ListIndustries(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]string, 0, len(f.insights))
	for k := range f.insights {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) addUser(clerkID, industry string) database.User {
	u := database.User{
		ID:          uuid.New(),
		ClerkUserID: clerkID,
		Name:        "Test User",
		Industry:    sql.NullString{String: industry, Valid: industry != ""},
	}
	f.users[clerkID] = u
	return u
}

func (f *fakeStore) addInsight(industry string, updated time.Time) database.IndustryInsight {
	row := database.IndustryInsight{
		ID:                uuid.New(),
		Industry:          industry,
		SalaryRanges:      []byte(`[{"role":"Old Role","min":1,"max":3,"median":2,"location":"Remote"}]`),
		GrowthRate:        1.5,
		DemandLevel:       "Low",
		TopSkills:         []string{"old skill"},
		MarketOutlook:     "Neutral",
		KeyTrends:         []string{"old trend"},
		RecommendedSkills: []string{"old rec"},
		LastUpdated:       updated,
		NextUpdate:        updated.Add(RefreshInterval),
	}
	f.insights[industry] = row
	return row
}

// scriptedGenerator answers by the industry named in the prompt.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	fallback  string
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	for industry, err := range g.errs {
		if strings.Contains(prompt, "the "+industry+" industry") {
			return "", err
		}
	}
	for industry, resp := range g.responses {
		if strings.Contains(prompt, "the "+industry+" industry") {
			return resp, nil
		}
	}
	return g.fallback, nil
}

type recordingArchiver struct {
	industries []string
	raws       []string
	err        error
}

func (a *recordingArchiver) Archive(_ context.Context, industry, raw string) (string, error) {
	a.industries = append(a.industries, industry)
	a.raws = append(a.raws, raw)
	if a.err != nil {
		return "", a.err
	}
	return "ai-responses/" + industry, nil
}

type recordingPublisher struct {
	updates []events.Update
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, u events.Update) error {
	p.updates = append(p.updates, u)
	return p.err
}

var errProvider = errors.New("provider unavailable")

const validInsightJSON = `{
  "salaryRanges": [
    {"role": "Software Engineer", "min": 90000, "max": 160000, "median": 120000, "location": "US"},
    {"role": "Data Scientist", "min": 95000, "max": 170000, "median": 130000, "location": "US"},
    {"role": "DevOps Engineer", "min": 85000, "max": 150000, "median": 115000, "location": "US"},
    {"role": "Product Manager", "min": 100000, "max": 180000, "median": 140000, "location": "US"},
    {"role": "QA Engineer", "min": 60000, "max": 110000, "median": 85000, "location": "US"}
  ],
  "growthRate": 12.5,
  "demandLevel": "High",
  "topSkills": ["Go", "Kubernetes", "SQL", "Cloud", "Security"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI", "Remote work", "Platform teams", "FinOps", "Zero trust"],
  "recommendedSkills": ["LLM tooling", "Rust", "Terraform", "Observability", "Data modeling"]
}`
