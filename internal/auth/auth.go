package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretRequired = errors.New("auth: jwt secret required")
	ErrUserRequired   = errors.New("auth: user id required")
	ErrInvalidToken   = errors.New("auth: invalid token")
)

// Claims 在标准声明之外携带可选的显示名。
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Token is a freshly signed access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Service signs and verifies HS256 access tokens. Account management lives
// elsewhere; this service only trusts what it signed.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// IssueToken 为指定用户签发令牌。
func (s *Service) IssueToken(userID, name string) (Token, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Token{}, ErrUserRequired
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := Claims{
		Name: strings.TrimSpace(name),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}

	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken parses token and returns its claims. Every failure, including
// expiry and a wrong signing method, is reported as ErrInvalidToken.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
