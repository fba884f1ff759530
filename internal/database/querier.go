package database

import (
	"context"
)

type Querier interface {
	CreateIndustryInsight(ctx context.Context, arg CreateIndustryInsightParams) (IndustryInsight, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetIndustryInsight(ctx context.Context, industry string) (IndustryInsight, error)
	GetUserByClerkID(ctx context.Context, clerkUserID string) (User, error)
	ListIndustries(ctx context.Context) ([]string, error)
	UpdateIndustryInsight(ctx context.Context, arg UpdateIndustryInsightParams) (IndustryInsight, error)
	UpdateUserIndustry(ctx context.Context, arg UpdateUserIndustryParams) (User, error)
}

var _ Querier = (*Queries)(nil)
