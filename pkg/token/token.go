package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"qna_board_service/pkg/database"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken token malformed, bad signature or expired
	ErrInvalidToken = errors.New("invalid token")
	// ErrRevokedToken token was signed out
	ErrRevokedToken = errors.New("token revoked")
)

// Identity provider-asserted member identity
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Claims structure for custom claims in JWT
type Claims struct {
	MemberID    string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"name,omitempty"`
	PhotoURL    string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Revocation redis record of a signed-out token, keyed by jti, 保留到 token 過期為止
type Revocation struct {
	MemberID  string    `json:"member_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provider issue / verify / revoke identity tokens
type Provider interface {
	Issue(ctx context.Context, id Identity) (string, error)
	Verify(ctx context.Context, tokenStr string) (*Claims, error)
	Revoke(ctx context.Context, tokenStr string) error
}

type jwtProvider struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked database.RedisRepository[Revocation]
	now     func() time.Time
}

// NewJWTProvider create HS256 provider, revoked 為 nil 時不檢查撤銷
func NewJWTProvider(secret, issuer string, ttl time.Duration, revoked database.RedisRepository[Revocation]) Provider {
	return &jwtProvider{
		secret:  []byte(secret),
		issuer:  issuer,
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

// Issue generates a JWT token for id
func (p *jwtProvider) Issue(_ context.Context, id Identity) (string, error) {
	if id.UID == "" {
		return "", errors.New("uid is required")
	}
	now := p.now()
	expires := now.Add(p.ttl)
	claims := Claims{
		MemberID:    id.UID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		PhotoURL:    id.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    p.issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Verify parses tokenStr and rejects tokens that were signed out
func (p *jwtProvider) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := p.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if p.revoked == nil || claims.ID == "" {
		return claims, nil
	}

	_, err = p.revoked.Get(ctx, revokedKey(claims.ID))
	if errors.Is(err, database.ErrRedisNil) {
		return claims, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrRevokedToken
}

// Revoke record tokenStr as signed out until it expires
func (p *jwtProvider) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := p.parse(tokenStr)
	if err != nil {
		return err
	}
	// 沒有 jti 的 token 無法列入撤銷名單, 只能等過期
	if p.revoked == nil || claims.ID == "" {
		return nil
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	ttl := expires.Sub(p.now())
	if expires.IsZero() {
		// 無 exp 的 token 以 provider ttl 保留
		ttl = p.ttl
		expires = p.now().Add(ttl)
	}
	if ttl <= 0 {
		return nil
	}
	return p.revoked.Set(ctx, revokedKey(claims.ID), Revocation{MemberID: claims.MemberID, ExpiresAt: expires}, ttl)
}

func (p *jwtProvider) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.MemberID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// StripBearer accept raw token or "Bearer <token>"
func StripBearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
