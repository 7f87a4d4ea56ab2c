package jwt

import (
	"Recipe-API/domain"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"

	// TokenAny skips the kind check in Verify.
	TokenAny TokenKind = ""
)

type (
	JWTService interface {
		IssueAccessToken(userID uint) (string, error)
		IssueRefreshToken(userID uint) (string, error)
		Verify(token string, kind TokenKind) (uint, error)
		Refresh(refreshToken string) (string, error)
	}

	Config struct {
		SecretKey  string
		Issuer     string
		AccessTTL  time.Duration
		RefreshTTL time.Duration
	}

	jwtUserClaim struct {
		Kind TokenKind `json:"type"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey  []byte
		issuer     string
		accessTTL  time.Duration
		refreshTTL time.Duration
		now        func() time.Time
	}
)

func NewJWTService(cfg Config) JWTService {
	return &jwtService{
		secretKey:  []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

func (j *jwtService) IssueAccessToken(userID uint) (string, error) {
	return j.generate(userID, TokenAccess, j.accessTTL)
}

func (j *jwtService) IssueRefreshToken(userID uint) (string, error) {
	return j.generate(userID, TokenRefresh, j.refreshTTL)
}

func (j *jwtService) generate(userID uint, kind TokenKind, ttl time.Duration) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		kind,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFailedGenerateToken, err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) Verify(token string, kind TokenKind) (uint, error) {
	claims := &jwtUserClaim{}
	t_Token, err := jwt.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return 0, domain.ErrTokenInvalid
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return 0, domain.ErrTokenInvalid
	}
	if kind != TokenAny && claims.Kind != kind {
		return 0, domain.ErrTokenKindMismatch
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrTokenInvalid
	}
	return uint(id), nil
}

func (j *jwtService) Refresh(refreshToken string) (string, error) {
	userID, err := j.Verify(refreshToken, TokenRefresh)
	if err != nil {
		return "", err
	}
	return j.IssueAccessToken(userID)
}
