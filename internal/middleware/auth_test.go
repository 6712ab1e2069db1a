package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ledgerline/internal/config"
)

func setupAuthRouter() *gin.Engine {
	config.Set(&config.Config{JWTSecret: "test-secret"})
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	r := setupAuthRouter()

	t.Run("valid_token", func(t *testing.T) {
		token, err := GenerateAccessToken("user-1", "user@test.com", time.Minute)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got, _ := parseBody(t, rec)["user_id"].(string); got != "user-1" {
			t.Errorf("user_id = %q, want user-1", got)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		token, _ := GenerateAccessToken("user-1", "user@test.com", -time.Minute)
		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("token_without_user", func(t *testing.T) {
		token, _ := GenerateAccessToken("", "user@test.com", time.Minute)
		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := doAuthRequest(r, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		errObj, _ := parseBody(t, rec)["error"].(map[string]interface{})
		if code, _ := errObj["code"].(string); code != "UNAUTHORIZED" {
			t.Errorf("error code = %q, want UNAUTHORIZED", code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		rec := doAuthRequest(r, "Token abc")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("lower_case_scheme", func(t *testing.T) {
		token, _ := GenerateAccessToken("user-1", "user@test.com", time.Minute)
		rec := doAuthRequest(r, "bearer "+token)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("foreign_signature", func(t *testing.T) {
		token, _ := GenerateAccessToken("user-1", "user@test.com", time.Minute)
		config.Set(&config.Config{JWTSecret: "another-secret"})
		defer config.Set(&config.Config{JWTSecret: "test-secret"})
		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("refresh_token", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:    "user-1",
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("token_without_expiry", func(t *testing.T) {
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{UserID: "user-1"}).SignedString([]byte("test-secret"))
		rec := doAuthRequest(r, "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER  abc ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			if got != tt.want || ok != tt.ok {
				t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}
