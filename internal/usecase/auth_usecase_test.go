package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	panic("not used in AuthUsecase tests")
}

type IssuerMock struct{ mock.Mock }

func (m *IssuerMock) IssuePair(userID int64, isAdmin bool, now time.Time) (usecase.TokenPair, error) {
	args := m.Called(userID, isAdmin, now)
	pair, _ := args.Get(0).(usecase.TokenPair)
	return pair, args.Error(1)
}

func (m *IssuerMock) VerifyRefresh(token string) (int64, bool, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func newAuthFixture() (*usecase.AuthUsecase, *AuthUserRepoMock, *IssuerMock) {
	uRepo := new(AuthUserRepoMock)
	issuer := new(IssuerMock)
	// テストではコスト最小のbcrypt
	return usecase.NewAuthUsecase(uRepo, usecase.NewBcryptHasher(bcrypt.MinCost), issuer), uRepo, issuer
}

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FirstName: "Taro",
		LastName:  "Yamada",
		Email:     "taro@example.com",
		Password:  "short",
	})
	assertErrContains(t, err, "password too short")
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FirstName: "Taro",
		LastName:  "Yamada",
		Email:     "not-an-email",
		Password:  "password123",
	})
	assertErrContains(t, err, "invalid email")
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	uc, uRepo, _ := newAuthFixture()

	uRepo.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(model.User{ID: 1, Email: "taro@example.com"}, nil)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FirstName: "Taro",
		LastName:  "Yamada",
		Email:     "taro@example.com",
		Password:  "password123",
	})
	assertErrContains(t, err, "email already used")
	if httpErr, ok := usecase.AsHTTPError(err); assert.True(t, ok) {
		assert.Equal(t, 409, httpErr.Status)
	}
}

func TestAuthUsecase_Register_HidesPasswordHash(t *testing.T) {
	uc, uRepo, _ := newAuthFixture()

	uRepo.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(model.User{}, repo.ErrNotFound)
	uRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		// 平文は保存しない
		return u.PasswordHash != "" && u.PasswordHash != "password123" && !u.IsAdmin
	})).Return(model.User{ID: 1, Email: "taro@example.com", PasswordHash: "xxx"}, nil)

	created, err := uc.Register(context.Background(), usecase.RegisterInput{
		FirstName: "Taro",
		LastName:  "Yamada",
		Email:     "taro@example.com",
		Password:  "password123",
	})

	assert.NoError(t, err)
	assert.Empty(t, created.PasswordHash)
	uRepo.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc, uRepo, issuer := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	uRepo.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(model.User{ID: 1, Email: "taro@example.com", PasswordHash: string(hash)}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "taro@example.com",
		Password: "wrong-password",
	})

	assertErrContains(t, err, "invalid credentials")
	issuer.AssertNotCalled(t, "IssuePair", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_UnknownEmailSameAsWrongPassword(t *testing.T) {
	uc, uRepo, _ := newAuthFixture()

	uRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})

	// ユーザー不在でも文言は同じ
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, uRepo, issuer := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	uRepo.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(model.User{ID: 1, Email: "taro@example.com", PasswordHash: string(hash), IsAdmin: true}, nil)
	issuer.On("IssuePair", int64(1), true, mock.Anything).
		Return(usecase.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 3600}, nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{
		Email:    "taro@example.com",
		Password: "correct-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "a", out.Token.AccessToken)
	assert.Empty(t, out.User.PasswordHash)
}

func TestAuthUsecase_Refresh_InvalidToken(t *testing.T) {
	uc, _, issuer := newAuthFixture()

	issuer.On("VerifyRefresh", "bad-token").Return(int64(0), false, errors.New("signature invalid"))

	_, err := uc.Refresh(context.Background(), "bad-token")

	assertErrContains(t, err, "invalid refresh token")
	issuer.AssertNotCalled(t, "IssuePair", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Refresh_IssuesNewPair(t *testing.T) {
	uc, _, issuer := newAuthFixture()

	issuer.On("VerifyRefresh", "good-token").Return(int64(42), false, nil)
	issuer.On("IssuePair", int64(42), false, mock.Anything).
		Return(usecase.TokenPair{AccessToken: "new-a", RefreshToken: "new-r", ExpiresIn: 3600}, nil)

	pair, err := uc.Refresh(context.Background(), "good-token")

	assert.NoError(t, err)
	assert.Equal(t, "new-a", pair.AccessToken)
}
