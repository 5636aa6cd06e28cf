package jwtmw

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails parsing, signature,
// expiry or type checks. Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Verifier validates tokens of one type.
type Verifier struct {
	secret []byte
	typ    TokenType
}

func NewVerifier(secret string, typ TokenType) *Verifier {
	return &Verifier{secret: []byte(secret), typ: typ}
}

// Verify checks the signature, expiry and type of tokenStr and returns the subject.
func (v *Verifier) Verify(tokenStr string) (uuid.UUID, error) {
	if tokenStr == "" {
		return uuid.Nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != string(v.typ) {
		return uuid.Nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
