package auth

import (
	"context"
	"errors"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrTwoFARequired     = errors.New("two-factor code required")
	ErrInvalidTwoFACode  = errors.New("invalid two-factor code")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service interface {
	Register(ctx context.Context, email, password string) (*Model, error)
	Login(ctx context.Context, email, password, twoFACode string) (*Model, *TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	SetupTwoFA(ctx context.Context, userID string) (*otp.Key, error)
	VerifyTwoFA(ctx context.Context, userID, code string) error
	DisableTwoFA(ctx context.Context, userID, code string) error
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type ServiceImpl struct {
	repository Repository
	tokenMaker *TokenMaker
	logger     *zap.SugaredLogger
}

func NewService(
	repository Repository,
	tokenMaker *TokenMaker,
	logger *zap.SugaredLogger,
) Service {
	return &ServiceImpl{
		repository: repository,
		tokenMaker: tokenMaker,
		logger:     logger.Named("[auth-service]"),
	}
}

func (s *ServiceImpl) Register(ctx context.Context, email, password string) (*Model, error) {
	existing, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repository.Create(ctx, &Model{
		Email:    email,
		Password: string(hashed),
		Active:   true,
	})
}

func (s *ServiceImpl) Login(ctx context.Context, email, password, twoFACode string) (*Model, *TokenPair, error) {
	user, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredential
	}

	if user.TwoFAStatus {
		if twoFACode == "" {
			return nil, nil, ErrTwoFARequired
		}
		if !totp.Validate(twoFACode, user.TwoFASecret) {
			return nil, nil, ErrInvalidTwoFACode
		}
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *ServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMaker.VerifyToken(refreshToken, "refresh")
	if err != nil {
		return nil, err
	}

	user, err := s.repository.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	return s.issueTokenPair(user)
}

func (s *ServiceImpl) issueTokenPair(user *Model) (*TokenPair, error) {
	accessToken, err := s.tokenMaker.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenMaker.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *ServiceImpl) SetupTwoFA(ctx context.Context, userID string) (*otp.Key, error) {
	user, err := s.repository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "sentrywatch",
		AccountName: user.Email,
	})
	if err != nil {
		return nil, err
	}

	secret := key.Secret()
	if err := s.repository.Update(ctx, userID, &UpdateModel{TwoFASecret: &secret}); err != nil {
		return nil, err
	}

	return key, nil
}

func (s *ServiceImpl) VerifyTwoFA(ctx context.Context, userID, code string) error {
	user, err := s.repository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredential
	}

	if !totp.Validate(code, user.TwoFASecret) {
		return ErrInvalidTwoFACode
	}

	enabled := true
	return s.repository.Update(ctx, userID, &UpdateModel{TwoFAStatus: &enabled})
}

func (s *ServiceImpl) DisableTwoFA(ctx context.Context, userID, code string) error {
	user, err := s.repository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredential
	}

	if !totp.Validate(code, user.TwoFASecret) {
		return ErrInvalidTwoFACode
	}

	disabled := false
	emptySecret := ""
	return s.repository.Update(ctx, userID, &UpdateModel{TwoFAStatus: &disabled, TwoFASecret: &emptySecret})
}

func (s *ServiceImpl) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredential
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	hashedStr := string(hashed)
	return s.repository.Update(ctx, userID, &UpdateModel{Password: &hashedStr})
}
