package user

import (
	"context"
	"errors"
	"time"

	"chatlink/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	GetUserByHandle(ctx context.Context, handle string) (*User, error)
	SearchUsers(ctx context.Context, query string) ([]Profile, error)
}

type Service struct {
	repo      Store
	jwtSecret string
	tokenTTL  time.Duration
}

type Claims struct {
	ID           int    `json:"id"`
	Handle       string `json:"username"`
	ProfileImage string `json:"profileImage"`
	jwt.RegisteredClaims
}

func NewService(repo Store, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: secret,
		tokenTTL:  tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Profile, error) {
	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}

	u := &User{
		Handle:       req.Handle,
		Password:     string(hashedPwd),
		ProfileImage: req.ProfileImage,
	}

	if _, err := s.repo.CreateUser(ctx, u); err != nil {
		if apperr.CodeOf(err) != apperr.CodeUnknown {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}

	return &Profile{Handle: u.Handle, ProfileImage: u.ProfileImage}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.GetUserByHandle(ctx, req.Handle)
	if err != nil {
		// Do not reveal whether the handle exists.
		if errors.Is(err, apperr.ErrUserNotFound) {
			return nil, apperr.ErrBadCredentials
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, apperr.ErrBadCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:           u.ID,
		Handle:       u.Handle,
		ProfileImage: u.ProfileImage,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "chatlink",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	})

	ss, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}

	return &LoginResponse{
		AccessToken: ss,
		ID:          u.ID,
		Handle:      u.Handle,
	}, nil
}

// ValidateToken verifies and decodes a bearer credential. Expired, tampered
// and malformed tokens all fail; id and handle claims are required.
func (s *Service) ValidateToken(tokenString string) (int, string, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return 0, "", "", apperr.ErrInvalidToken
	}
	if claims.ID == 0 || claims.Handle == "" {
		return 0, "", "", apperr.ErrInvalidToken
	}

	return claims.ID, claims.Handle, claims.ProfileImage, nil
}

func (s *Service) SearchUsers(ctx context.Context, query string) ([]Profile, error) {
	if query == "" {
		return nil, apperr.ErrInvalidQuery
	}
	users, err := s.repo.SearchUsers(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return users, nil
}
