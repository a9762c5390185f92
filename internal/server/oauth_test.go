package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/mixtape-cli/mixtape/internal/shared"
)

func newOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8888/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  tokenURL + "/authorize",
			TokenURL: tokenURL + "/token",
		},
	}
}

func TestOAuthHandler(t *testing.T) {
	t.Run("rejects invalid state", func(t *testing.T) {
		handler := NewOAuthHandler(newOAuthConfig("http://localhost"), "expected-state")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=wrong-state&code=abc", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Fatal("expected state validation error")
		}
		if !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("rejects missing code", func(t *testing.T) {
		handler := NewOAuthHandler(newOAuthConfig("http://localhost"), "state-token")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state-token&error=access_denied&error_description=User+denied", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Fatal("expected authorization error")
		}
		if !strings.Contains(result.Error().Error(), "access_denied") {
			t.Errorf("expected error to mention access_denied, got %v", result.Error())
		}
	})

	t.Run("exchanges code for token", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"test-access","refresh_token":"test-refresh","token_type":"Bearer","expires_in":3600}`)
		}))
		defer tokenServer.Close()

		handler := NewOAuthHandler(newOAuthConfig(tokenServer.URL), "state-token")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state-token&code=auth-code", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Successful") {
			t.Error("expected success page in response body")
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.Token == nil {
			t.Fatal("expected token")
		}
		if result.Token.AccessToken != "test-access" {
			t.Errorf("unexpected access token: %q", result.Token.AccessToken)
		}
		if result.Token.RefreshToken != "test-refresh" {
			t.Errorf("unexpected refresh token: %q", result.Token.RefreshToken)
		}
	})

	t.Run("processes callback only once", func(t *testing.T) {
		handler := NewOAuthHandler(newOAuthConfig("http://localhost"), "state-token")

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?state=wrong", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?state=wrong", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for replayed callback, got %d", second.Code)
		}
		if !strings.Contains(second.Body.String(), "already processed") {
			t.Errorf("expected replay rejection message, got %q", second.Body.String())
		}
	})

	t.Run("result channel closes after send", func(t *testing.T) {
		handler := NewOAuthHandler(newOAuthConfig("http://localhost"), "state-token")

		handler.Send(OAuthResult{err: errors.New("test error")})
		handler.Send(OAuthResult{err: errors.New("ignored")})

		result, ok := <-handler.Result()
		if !ok {
			t.Fatal("expected first receive to succeed")
		}
		if result.Error() == nil || result.Error().Error() != "test error" {
			t.Errorf("expected first result, got %v", result.Error())
		}

		select {
		case _, ok := <-handler.Result():
			if ok {
				t.Error("expected channel to be closed")
			}
		case <-time.After(time.Second):
			t.Error("expected closed channel, receive blocked")
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("filters by method", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for POST, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for GET, got %d", rec.Code)
		}
	})

	t.Run("applies middleware in registration order", func(t *testing.T) {
		router := NewBasicRouter()

		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("expected %d calls, got %v", len(want), order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
			}
		}
	})

	t.Run("registers handler routes", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer"}`)
		}))
		defer tokenServer.Close()

		handler := NewOAuthHandler(newOAuthConfig(tokenServer.URL), "state-token")
		router := NewBasicRouter()
		router.Handler(handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-token&code=abc", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 via router, got %d", rec.Code)
		}
	})
}
