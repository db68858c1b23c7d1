package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/config"
)

func authTestConfig(anonKey string) *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.Storage.AnonKey = anonKey
	return cfg
}

func newAuthTestRouter(cfg *config.EnvConfig, reached *bool, credential *string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/object/:bucket_name/*object_name", func(c *gin.Context) {
		*reached = true
		*credential = c.GetString("credential")
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestAuthMiddlewareRejectsMissingCredential(t *testing.T) {
	var reached bool
	var credential string
	r := newAuthTestRouter(authTestConfig("configured-anon-key"), &reached, &credential)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/object/avatars/profile.png", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if reached {
		t.Fatal("handler ran without a credential")
	}
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		var reached bool
		var credential string
		r := newAuthTestRouter(authTestConfig("configured-anon-key"), &reached, &credential)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/object/avatars/profile.png", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("header %q: status = %d, want 403", header, w.Code)
		}
		if reached {
			t.Fatalf("header %q: handler ran without a credential", header)
		}
	}
}

func TestAuthMiddlewareRefusesEverythingWithoutAnonKey(t *testing.T) {
	var reached bool
	var credential string
	r := newAuthTestRouter(authTestConfig(""), &reached, &credential)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/object/avatars/profile.png", nil)
	req.Header.Set("Authorization", "Bearer the-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if reached {
		t.Fatal("handler ran on a misconfigured deployment")
	}
}

func TestAuthMiddlewarePassesCredentialThrough(t *testing.T) {
	var reached bool
	var credential string
	r := newAuthTestRouter(authTestConfig("configured-anon-key"), &reached, &credential)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/object/avatars/profile.png", nil)
	req.Header.Set("Authorization", "Bearer the-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if credential != "the-token" {
		t.Fatalf("credential = %q", credential)
	}
}
