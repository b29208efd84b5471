package handler

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindcare/backend/internal/analysis/category"
	"github.com/zhouzirui/mindcare/backend/internal/auth"
	"github.com/zhouzirui/mindcare/backend/internal/model/disease"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
	chatService "github.com/zhouzirui/mindcare/backend/internal/service/chat"
	predictionService "github.com/zhouzirui/mindcare/backend/internal/service/prediction"
	"github.com/zhouzirui/mindcare/backend/internal/service/resolver"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()

	authSvc, err := auth.NewService("router-secret", time.Hour)
	require.NoError(t, err)

	local := resolver.NewLocal(category.DefaultTable(), rand.New(rand.NewPCG(5, 6)))
	return NewRouter(Dependencies{
		Chat:       chatService.NewService(local, profile.NewClaimsDirectory(profile.NewMemoryDirectory()), nil),
		Diseases:   disease.NewMemoryStore(disease.Seed()),
		Prediction: predictionService.NewService(nil),
		Verifier:   authSvc,
		SignInURL:  "/signin",
	}), authSvc
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestChatRequiresSignIn(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/ws/any", nil)
	req.Header.Set("Accept", "text/html")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, "/signin", resp.Header().Get("Location"))

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/chat/session", nil))
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, target := range []string{"/api/chat/prompts", "/api/diseases", "/api/diseases/categories"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, resp.Code, target)
	}
}

func TestAuthenticatedSessionFlow(t *testing.T) {
	r, authSvc := newTestRouter(t)
	token, err := authSvc.IssueToken("user-1", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/session", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		Session struct {
			ID     string `json:"id"`
			UserID string `json:"userId"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "user-1", body.Session.UserID)
	require.NotEmpty(t, body.Session.ID)
}

func TestTokenNamePersonalisesGreeting(t *testing.T) {
	r, authSvc := newTestRouter(t)

	greetingFor := func(name string) string {
		token, err := authSvc.IssueToken("user-2", name)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/chat/session", nil)
		req.Header.Set("Authorization", "Bearer "+token.Value)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		require.Equal(t, http.StatusCreated, resp.Code)

		var body struct {
			Messages []struct {
				Text string `json:"text"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body.Messages, 1)
		return body.Messages[0].Text
	}

	require.Equal(t, chatService.Greeting("Morgan"), greetingFor("Morgan"))
	require.Contains(t, greetingFor("Morgan"), "Hello, Morgan!")
	require.Equal(t, chatService.Greeting(""), greetingFor(""))
}
