package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signTestToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func newAuthTestRouter() (*gin.Engine, *string) {
	router := gin.New()
	var seenUserID string
	router.GET("/secure", AuthMiddleware(testJWTSecret), func(c *gin.Context) {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		seenUserID = userID.Hex()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, &seenUserID
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + signTestToken(t, userID.Hex(), time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, seenUserID := newAuthTestRouter()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && *seenUserID != userID.Hex() {
				t.Errorf("handler saw user id %q, want %q", *seenUserID, userID.Hex())
			}
		})
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router, _ := newAuthTestRouter()
	token := signTestToken(t, primitive.NewObjectID().Hex(), time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(strings.ToLower(body), "expired") {
		t.Errorf("body = %q, want expiry message", body)
	}
}

func TestAuthMiddlewareRejectsEmptySubject(t *testing.T) {
	router, _ := newAuthTestRouter()
	token := signTestToken(t, "", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requestId": c.GetString(ContextRequestIDKey)})
	})

	t.Run("generates id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got == "" {
			t.Error("expected generated request id on response")
		}
	})

	t.Run("echoes client supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(requestIDHeader, "client-chosen-id")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got != "client-chosen-id" {
			t.Errorf("request id = %q, want echo of the client's", got)
		}
	})
}
