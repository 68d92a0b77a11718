// Package receipt signs and verifies score receipts for finished attempts.
package receipt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cert-quiz/models"
)

// ErrInvalidReceipt wraps every reason a receipt fails verification.
var ErrInvalidReceipt = errors.New("invalid receipt")

// Claims is the signed content of a receipt
type Claims struct {
	Score        float64 `json:"score"`
	CorrectCount int     `json:"correct"`
	Total        int     `json:"total"`
	PassingScore float64 `json:"passing_score"`
	Passed       bool    `json:"passed"`
	jwt.RegisteredClaims
}

// Signer issues and checks HS256 receipts.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner creates a Signer. A ttl of zero issues receipts that never expire.
func NewSigner(signingKey, issuer string, ttl time.Duration) *Signer {
	return &Signer{
		key:    []byte(signingKey),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a receipt for a score report. The attempt ID becomes the token ID.
func (s *Signer) Issue(sum models.Summary) (string, error) {
	now := s.now()
	claims := Claims{
		Score:        sum.Score,
		CorrectCount: sum.CorrectCount,
		Total:        sum.Total,
		PassingScore: sum.PassingScore,
		Passed:       sum.Passed,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sum.AttemptID,
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign receipt: %w", err)
	}
	return token, nil
}

// Verify checks signature, issuer and expiry and returns the receipt content.
func (s *Signer) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReceipt, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidReceipt
	}
	return claims, nil
}
