package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// アクセス＋リフレッシュの発行と、リフレッシュの検証の約束。
// 具象（HS256 JWT）はinternal/auth。
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type TokenIssuer interface {
	IssuePair(userID int64, isAdmin bool, now time.Time) (TokenPair, error)
	VerifyRefresh(token string) (userID int64, isAdmin bool, err error)
}

// 平文パスワードとハッシュの約束
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, hashed string) bool
}

// bcrypt実装
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
}

// DI
func NewAuthUsecase(userRepo repo.UserRepository, hasher PasswordHasher, issuer TokenIssuer) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)

	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	//email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already used")
	} else if err != repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	created, err := u.userRepo.Create(ctx, model.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created.PasswordHash = ""
	return created, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User  model.User `json:"user"`
	Token TokenPair  `json:"token"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		//ユーザー不在とパスワード違いは区別しない
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.hasher.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	pair, err := u.issuer.IssuePair(user.ID, user.IsAdmin, time.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.PasswordHash = ""
	return LoginOutput{User: user, Token: pair}, nil
}

// リフレッシュトークンを検証して新しいペアを発行する
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenPair{}, NewHTTPError(http.StatusBadRequest, "refresh token required")
	}

	userID, isAdmin, err := u.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	pair, err := u.issuer.IssuePair(userID, isAdmin, time.Now())
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return pair, nil
}
