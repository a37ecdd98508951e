package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"go.uber.org/zap"
)

// AuthClient клиент auth-service
type AuthClient struct {
	rest *restClient
}

func NewAuthClient(baseURL string, opts Options, logger *zap.Logger) *AuthClient {
	return &AuthClient{rest: newRestClient("auth", baseURL, opts, logger)}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"pwd"`
}

// Login обменивает логин и пароль на токен.
// Ответ возвращается как есть, поля error/tokenExpired проверяет вызывающий.
func (c *AuthClient) Login(ctx context.Context, login, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.rest.send(ctx, http.MethodPost, "/api/auth/login", loginRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp, nil
}
