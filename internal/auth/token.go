package auth

import (
	"errors"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
)

// アクセス1時間・リフレッシュ7日のHS256トークンを発行する
const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewJWTIssuer(cfg config.Config) *JWTIssuer {
	return &JWTIssuer{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
	}
}

func (i *JWTIssuer) IssuePair(userID int64, isAdmin bool, now time.Time) (usecase.TokenPair, error) {
	access, err := sign(i.accessSecret, userID, isAdmin, now, accessTokenTTL)
	if err != nil {
		return usecase.TokenPair{}, err
	}
	refresh, err := sign(i.refreshSecret, userID, isAdmin, now, refreshTokenTTL)
	if err != nil {
		return usecase.TokenPair{}, err
	}

	return usecase.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(accessTokenTTL.Seconds()),
	}, nil
}

func (i *JWTIssuer) VerifyRefresh(token string) (int64, bool, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.refreshSecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, false, errors.New("invalid refresh token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false, errors.New("invalid claims")
	}

	userID, err := parseSubject(claims["sub"])
	if err != nil || userID <= 0 {
		return 0, false, errors.New("invalid sub")
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return userID, isAdmin, nil
}

func sign(secret []byte, userID int64, isAdmin bool, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"is_admin": isAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSubject(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}
