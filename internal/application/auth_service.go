package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/policy"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login responses never reveal whether an email is
	// registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthService handles account registration, credential verification and
// token issuance.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Gender   string
	Admin    bool
	Active   bool
}

type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// Register creates a new account. Setting the administrator flag is
// only allowed for actors that may manage accounts; plain registration
// needs no privilege beyond a valid token.
func (s *AuthService) Register(ctx context.Context, actor *entity.User, in RegisterInput) (*entity.User, error) {
	if in.Admin && !policy.CanManageAccounts(actor) {
		return nil, ErrUnauthorized
	}
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		Gender:   in.Gender,
		Admin:    in.Admin,
		Active:   in.Active,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without
// issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) issueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessExpiry: aexp, RefreshToken: refresh, RefreshExpiry: rexp}, nil
}

// RefreshAccess mints a new access token for an already-authenticated
// actor. Any currently-valid token gets through the auth middleware, so
// refresh tokens and access tokens are interchangeable here.
func (s *AuthService) RefreshAccess(actor *entity.User) (string, time.Time, error) {
	return s.JWT.GenerateAccessToken(actor.ID)
}

// BootstrapAdmin creates the initial administrator account when the
// users table is empty. Called once at startup.
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, password string) error {
	n, err := s.Users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &entity.User{
		Name:     "admin",
		Email:    email,
		Password: hash,
		Phone:    "11999999999",
		Gender:   "admin",
		Admin:    true,
		Active:   true,
	}
	if err := s.Users.Create(ctx, admin); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("email", email).Info("bootstrap admin created")
	}
	return nil
}
