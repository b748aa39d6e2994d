package account

import (
	"time"

	"editmarket/internal/domain"
)

type SignupRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	IsFreelancer bool     `json:"isFreelancer"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	HourlyRate   float64  `json:"hourlyRate"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterFreelancerRequest struct {
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourlyRate"`
}

type UserDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Image       *string   `json:"image"`
	Role        string    `json:"role"`
	Bio         *string   `json:"bio"`
	Skills      []string  `json:"skills"`
	HourlyRate  *float64  `json:"hourlyRate"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserDTO   `json:"user"`
}

type FreelancerDTO struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Image         *string  `json:"image"`
	Bio           *string  `json:"bio"`
	Skills        []string `json:"skills"`
	HourlyRate    *float64 `json:"hourlyRate"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

func toUserDTO(u *domain.User) UserDTO {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Image:       u.Image,
		Role:        u.Role.String(),
		Bio:         u.Bio,
		Skills:      skills,
		HourlyRate:  u.HourlyRate,
		IsAvailable: u.IsAvailable,
		CreatedAt:   u.CreatedAt,
	}
}

func toFreelancerDTO(f domain.FreelancerSummary) FreelancerDTO {
	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}
	return FreelancerDTO{
		ID:            f.ID,
		Name:          f.Name,
		Image:         f.Image,
		Bio:           f.Bio,
		Skills:        skills,
		HourlyRate:    f.HourlyRate,
		AverageRating: f.AverageRating,
		ReviewCount:   f.ReviewCount,
	}
}
