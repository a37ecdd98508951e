package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Identity данные пользователя из токена
type Identity struct {
	UserID    int64
	Role      model.Role
	CabinetID int64
	ExpiresAt *time.Time
}

// Decoder разбирает bearer-токен.
// Без секрета токен только декодируется (для отображения и маршрутизации),
// с секретом дополнительно проверяются подпись HS256 и срок действия.
type Decoder struct {
	secret []byte
	now    func() time.Time
}

// NewDecoder создаёт декодер; secret может быть пустым
func NewDecoder(secret string) *Decoder {
	d := &Decoder{now: time.Now}
	if secret != "" {
		d.secret = []byte(secret)
	}
	return d
}

// WithClock подменяет часы для проверки exp
func (d *Decoder) WithClock(now func() time.Time) *Decoder {
	d.now = now
	return d
}

// Verifies сообщает, проверяется ли подпись
func (d *Decoder) Verifies() bool {
	return len(d.secret) > 0
}

// Decode возвращает Identity или ErrUnauthorized для любого некорректного токена
func (d *Decoder) Decode(token string) (*Identity, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", model.ErrUnauthorized)
	}

	claims := &Claims{}
	if d.Verifies() {
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return d.secret, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(d.now),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: verify token: %v", model.ErrUnauthorized, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("%w: decode token: %v", model.ErrUnauthorized, err)
		}
	}

	role := model.Role(strings.ToUpper(claims.role()))
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", model.ErrUnauthorized, claims.role())
	}
	if claims.ID <= 0 {
		return nil, fmt.Errorf("%w: missing user id", model.ErrUnauthorized)
	}

	identity := &Identity{
		UserID:    claims.ID,
		Role:      role,
		CabinetID: claims.CabinetID,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		identity.ExpiresAt = &exp
		if !d.now().Before(exp) {
			return nil, fmt.Errorf("%w: token expired", model.ErrUnauthorized)
		}
	}

	return identity, nil
}
