package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/muhammadolammi/careerinsights/internal/database"
	"github.com/muhammadolammi/careerinsights/internal/identity"
	"github.com/muhammadolammi/careerinsights/internal/insights"
)

// InsightService is what the handlers need from insights.Service.
type InsightService interface {
	GetIndustryInsights(ctx context.Context, id *identity.Identity) (*insights.Record, error)
	ResolveUser(ctx context.Context, id *identity.Identity) (*database.User, error)
	SetIndustry(ctx context.Context, id *identity.Identity, industry string) (*database.User, error)
}

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	ClerkUserID string    `json:"clerkUserId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ImageURL    string    `json:"imageUrl"`
	Industry    *string   `json:"industry"`
}

func toUserResponse(u *database.User) userResponse {
	resp := userResponse{
		ID:          u.ID,
		ClerkUserID: u.ClerkUserID,
		Name:        u.Name,
		Email:       u.Email,
		ImageURL:    u.ImageUrl,
	}
	if u.Industry.Valid {
		industry := u.Industry.String
		resp.Industry = &industry
	}
	return resp
}

func (s *Server) getIndustryInsights(c *gin.Context) {
	rec, err := s.service.GetIndustryInsights(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) getUser(c *gin.Context) {
	u, err := s.service.ResolveUser(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

type setIndustryRequest struct {
	Industry string `json:"industry"`
}

func (s *Server) setIndustry(c *gin.Context) {
	var body setIndustryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	u, err := s.service.SetIndustry(c.Request.Context(), CurrentIdentity(c), body.Industry)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "careerinsights",
		"version": s.version,
	})
}

// writeError maps service errors to HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	var perr *insights.ParseError
	switch {
	case errors.Is(err, insights.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, insights.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, insights.ErrIndustryNotSet):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, insights.ErrInvalidIndustry):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &perr), errors.Is(err, insights.ErrEmptyResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI response parse error"})
	default:
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
