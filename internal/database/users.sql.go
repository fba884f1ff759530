package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (
id, clerk_user_id, email, name, image_url)
VALUES ( $1, $2, $3, $4, $5)
ON CONFLICT (clerk_user_id) DO NOTHING
RETURNING id, clerk_user_id, email, name, image_url, industry, created_at, updated_at
`

type CreateUserParams struct {
	ID          uuid.UUID
	ClerkUserID string
	Email       string
	Name        string
	ImageUrl    string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.ID,
		arg.ClerkUserID,
		arg.Email,
		arg.Name,
		arg.ImageUrl,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.ClerkUserID,
		&i.Email,
		&i.Name,
		&i.ImageUrl,
		&i.Industry,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByClerkID = `-- name: GetUserByClerkID :one
SELECT id, clerk_user_id, email, name, image_url, industry, created_at, updated_at FROM users WHERE clerk_user_id=$1
`

func (q *Queries) GetUserByClerkID(ctx context.Context, clerkUserID string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByClerkID, clerkUserID)
	var i User
	err := row.Scan(
		&i.ID,
		&i.ClerkUserID,
		&i.Email,
		&i.Name,
		&i.ImageUrl,
		&i.Industry,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserIndustry = `-- name: UpdateUserIndustry :one
UPDATE users
SET industry=$1, updated_at=CURRENT_TIMESTAMP
WHERE id=$2
RETURNING id, clerk_user_id, email, name, image_url, industry, created_at, updated_at
`

type UpdateUserIndustryParams struct {
	Industry sql.NullString
	ID       uuid.UUID
}

func (q *Queries) UpdateUserIndustry(ctx context.Context, arg UpdateUserIndustryParams) (User, error) {
	row := q.db.QueryRowContext(ctx, updateUserIndustry, arg.Industry, arg.ID)
	var i User
	err := row.Scan(
		&i.ID,
		&i.ClerkUserID,
		&i.Email,
		&i.Name,
		&i.ImageUrl,
		&i.Industry,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
