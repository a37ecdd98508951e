package auth

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// roleClaim принимает роль строкой или массивом строк (берётся первая)
type roleClaim string

func (r *roleClaim) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = roleClaim(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("role claim: %w", err)
	}
	if len(many) > 0 {
		*r = roleClaim(many[0])
	}
	return nil
}

// Claims полезная нагрузка токена auth-service
type Claims struct {
	ID        int64     `json:"id"`
	Roles     roleClaim `json:"roles"`
	Role      roleClaim `json:"role"`
	CabinetID int64     `json:"cabinetId"`
	jwt.RegisteredClaims
}

func (c *Claims) role() string {
	if c.Roles != "" {
		return string(c.Roles)
	}
	return string(c.Role)
}
