package service

import (
	"time"

	"github.com/crewscore/crewscore/internal/domain"
)

// PersonDTO is the outward shape of a Person. Services return DTOs so the
// presentation layer never touches domain entities directly.
type PersonDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Reputation int       `json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
}

func toPersonDTO(p *domain.Person) *PersonDTO {
	return &PersonDTO{
		ID:         p.ID.String(),
		Name:       p.Name,
		Email:      p.Email,
		Role:       string(p.Role),
		Reputation: p.Reputation,
		CreatedAt:  p.CreatedAt,
	}
}

// ActivityDTO is the outward shape of an Activity.
type ActivityDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	CreatedBy   string    `json:"created_by"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toActivityDTO(a *domain.Activity) *ActivityDTO {
	return &ActivityDTO{
		ID:          a.ID.String(),
		Title:       a.Title,
		Description: a.Description,
		Points:      a.Points,
		CreatedBy:   a.CreatedBy.String(),
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
	}
}

// ActionDTO is the outward shape of an Action.
type ActionDTO struct {
	ID            string     `json:"id"`
	ActivityID    string     `json:"activity_id"`
	PersonID      string     `json:"person_id"`
	Status        string     `json:"status"`
	ReviewedBy    string     `json:"reviewed_by,omitempty"`
	AwardedPoints int        `json:"awarded_points"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

func toActionDTO(a *domain.Action) *ActionDTO {
	dto := &ActionDTO{
		ID:            a.ID.String(),
		ActivityID:    a.ActivityID.String(),
		PersonID:      a.PersonID.String(),
		Status:        string(a.Status),
		AwardedPoints: a.AwardedPoints,
		SubmittedAt:   a.SubmittedAt,
		ReviewedAt:    a.ReviewedAt,
	}
	if !a.ReviewedBy.IsZero() {
		dto.ReviewedBy = a.ReviewedBy.String()
	}
	return dto
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PersonID   string `json:"person_id"`
	Name       string `json:"name"`
	Reputation int    `json:"reputation"`
}
