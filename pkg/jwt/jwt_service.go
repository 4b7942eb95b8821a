package jwt

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	issuer        = "PANTRY"
	tokenLifetime = 120 * time.Minute
)

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"), time.Now)
}

func NewJWTServiceWithSecret(secret string, now func() time.Time) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    issuer,
		now:       now,
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) string {
	now := j.now()
	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		utils.LogError("jwt", "GenerateTokenUser", "signing token", nil, err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.Issuer != j.issuer {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Role, nil
}
