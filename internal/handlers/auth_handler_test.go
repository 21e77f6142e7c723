package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/farellandr/linkpay/config"
)

func TestLogin(t *testing.T) {
	t.Run("Given wrong password When logging in Then responds unauthorized", func(t *testing.T) {
		router := newTestRouter(newMockRepository(), &mockGateway{})

		w := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{"password": "wrong"})

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Given correct password When logging in Then responds with admin token", func(t *testing.T) {
		router := newTestRouter(newMockRepository(), &mockGateway{})

		w := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{"password": testAuthCfg.AdminPassword})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(testAuthCfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("expected a valid token, got %v", err)
		}
		claims := token.Claims.(jwt.MapClaims)
		if claims["role"] != "admin" {
			t.Errorf("expected admin role claim, got %v", claims["role"])
		}
	})

	t.Run("Given bcrypt-hashed secret When logging in with the plain password Then succeeds", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		handler := NewAuthHandler(&config.AuthConfig{
			AdminPassword: string(hash),
			JWTSecret:     "test-secret",
		})

		if !handler.passwordMatches("hunter2") {
			t.Error("expected bcrypt comparison to accept the plain password")
		}
		if handler.passwordMatches("wrong") {
			t.Error("expected bcrypt comparison to reject a wrong password")
		}
	})

	t.Run("Given missing password field When logging in Then responds bad request", func(t *testing.T) {
		router := newTestRouter(newMockRepository(), &mockGateway{})

		w := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestVerify(t *testing.T) {
	t.Run("Given valid token When verifying Then responds ok", func(t *testing.T) {
		router := newTestRouter(newMockRepository(), &mockGateway{})

		w := doJSON(t, router, http.MethodGet, "/v1/auth/verify", adminToken(t), nil)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("Given garbage token When verifying Then responds unauthorized", func(t *testing.T) {
		router := newTestRouter(newMockRepository(), &mockGateway{})

		w := doJSON(t, router, http.MethodGet, "/v1/auth/verify", "not-a-token", nil)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
