package account

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

const minPasswordLength = 8

type UseCase struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
	google GoogleProvider
	logger *zap.Logger
}

// NewUseCase wires the account flows. google may be nil when federated login is
// not configured.
func NewUseCase(repo Repository, hasher PasswordHasher, tokens TokenIssuer, google GoogleProvider, logger *zap.Logger) *UseCase {
	return &UseCase{repo: repo, hasher: hasher, tokens: tokens, google: google, logger: logger}
}

func (uc *UseCase) Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	var details []apperrors.ValidationDetail
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if !validEmail(req.Email) {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
	}
	if len(req.Password) < minPasswordLength {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength)})
	}
	if req.IsFreelancer {
		details = append(details, validateProfile(req.Bio, req.Skills, req.HourlyRate)...)
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         domain.RoleCustomer,
	}
	if req.IsFreelancer {
		bio, rate := strings.TrimSpace(req.Bio), req.HourlyRate
		u.Role = domain.RoleFreelancer
		u.Bio = &bio
		u.Skills = trimSkills(req.Skills)
		u.HourlyRate = &rate
		u.IsAvailable = true
	}

	if u.ID, err = uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user signed up", zap.Uint("userId", u.ID), zap.String("role", u.Role.String()))
	return uc.session(ctx, u.ID)
}

// Login verifies credentials. Unknown emails, federated-only accounts, and wrong
// passwords all produce the same error.
func (uc *UseCase) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	invalid := apperrors.NewUnauthorizedError("invalid credentials")

	u, err := uc.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, invalid
		}
		return nil, err
	}
	if u.PasswordHash == nil {
		return nil, invalid
	}

	ok, err := uc.hasher.Compare(*u.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalid
	}

	return uc.issue(u)
}

func (uc *UseCase) GoogleEnabled() bool {
	return uc.google != nil
}

func (uc *UseCase) GoogleAuthURL(state string) string {
	return uc.google.AuthCodeURL(state)
}

// GoogleLogin completes the OAuth2 callback. First-time emails become CUSTOMER
// accounts without a password.
func (uc *UseCase) GoogleLogin(ctx context.Context, code string) (*SessionResponse, error) {
	if uc.google == nil {
		return nil, apperrors.NewNotFoundError("google login is not enabled")
	}

	gu, err := uc.google.Exchange(ctx, code)
	if err != nil {
		uc.logger.Warn("google exchange failed", zap.Error(err))
		return nil, apperrors.NewUnauthorizedError("google sign-in failed")
	}
	if !validEmail(gu.Email) {
		return nil, apperrors.NewUnauthorizedError("google account has no email")
	}
	if !gu.VerifiedEmail {
		return nil, apperrors.NewUnauthorizedError("google account email is not verified")
	}

	u, err := uc.repo.FindByEmail(ctx, gu.Email)
	if err == nil {
		return uc.issue(u)
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	name := gu.Name
	if name == "" {
		name = strings.SplitN(gu.Email, "@", 2)[0]
	}
	u = &domain.User{Name: name, Email: gu.Email, Role: domain.RoleCustomer}
	if gu.Picture != "" {
		u.Image = &gu.Picture
	}

	if u.ID, err = uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user signed up with google", zap.Uint("userId", u.ID))
	return uc.session(ctx, u.ID)
}

// RegisterFreelancer promotes a CUSTOMER once. The promotion is a conditional
// update, so a repeated or concurrent call never rewrites the profile.
func (uc *UseCase) RegisterFreelancer(ctx context.Context, id auth.Identity, req RegisterFreelancerRequest) (*SessionResponse, error) {
	switch id.Role {
	case domain.RoleCustomer:
	case domain.RoleFreelancer:
		return nil, apperrors.NewConflictError("account is already registered as a freelancer")
	case domain.RoleAdmin:
		return nil, apperrors.NewForbiddenError("administrators cannot register as freelancers")
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	if details := validateProfile(req.Bio, req.Skills, req.HourlyRate); len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	profile := domain.FreelancerProfile{
		Bio:        strings.TrimSpace(req.Bio),
		Skills:     trimSkills(req.Skills),
		HourlyRate: req.HourlyRate,
	}

	promoted, err := uc.repo.PromoteToFreelancer(ctx, id.UserID, profile)
	if err != nil {
		return nil, err
	}

	if !promoted {
		current, err := uc.repo.FindByID(ctx, id.UserID)
		if err != nil {
			return nil, err
		}
		switch current.Role {
		case domain.RoleFreelancer:
			return nil, apperrors.NewConflictError("account is already registered as a freelancer")
		case domain.RoleAdmin:
			return nil, apperrors.NewForbiddenError("administrators cannot register as freelancers")
		case domain.RoleCustomer:
			return nil, fmt.Errorf("promoting user %d: update matched no rows", id.UserID)
		default:
			return nil, fmt.Errorf("user %d has invalid role %s", id.UserID, current.Role)
		}
	}

	uc.logger.Info("freelancer registered", zap.Uint("userId", id.UserID), zap.Int("skills", len(profile.Skills)))
	return uc.session(ctx, id.UserID)
}

func (uc *UseCase) ListFreelancers(ctx context.Context) ([]FreelancerDTO, error) {
	found, err := uc.repo.ListAvailableFreelancers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]FreelancerDTO, 0, len(found))
	for _, f := range found {
		out = append(out, toFreelancerDTO(f))
	}
	return out, nil
}

func (uc *UseCase) Me(ctx context.Context, id auth.Identity) (*UserDTO, error) {
	u, err := uc.repo.FindByID(ctx, id.UserID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("session user no longer exists")
		}
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

func (uc *UseCase) session(ctx context.Context, userID uint) (*SessionResponse, error) {
	u, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.issue(u)
}

func (uc *UseCase) issue(u *domain.User) (*SessionResponse, error) {
	token, expiresAt, err := uc.tokens.Issue(auth.IdentityFromUser(u))
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Token: token, ExpiresAt: expiresAt, User: toUserDTO(u)}, nil
}

func validateProfile(bio string, skills []string, hourlyRate float64) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(bio) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "bio", Message: "bio is required"})
	}
	if len(skills) == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "skills", Message: "at least one skill is required"})
	}
	for i, s := range skills {
		if strings.TrimSpace(s) == "" {
			details = append(details, apperrors.ValidationDetail{Field: fmt.Sprintf("skills[%d]", i), Message: "skill must not be empty"})
		}
	}
	if err := domain.ValidateAmount(hourlyRate); err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "hourlyRate", Message: "hourlyRate " + err.Error()})
	}
	return details
}

func trimSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if !strings.Contains(email, "@") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
