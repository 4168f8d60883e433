package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ideahub/ideahub-api/internal/database"
	"github.com/ideahub/ideahub-api/internal/handler"
	"github.com/ideahub/ideahub-api/internal/metrics"
	"github.com/ideahub/ideahub-api/internal/repository"
	"github.com/ideahub/ideahub-api/internal/service"
)

const testSecret = "test-secret"

type testServer struct {
	http.Handler
	db *sql.DB
}

// newTestServer wires the full router over an in-memory sqlite database,
// the same way main does against MySQL.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, "sqlite"))

	collector := metrics.NewCollector()

	users := repository.NewUserRepository(db)
	ideas := repository.NewIdeaRepository(db)
	reactions := repository.NewReactionRepository(db)
	sources := repository.NewSourceRepository(db)

	authCfg := service.AuthConfig{
		JWTSecret:  testSecret,
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	authSvc := service.NewAuthService(users, authCfg)
	ideaSvc := service.NewIdeaService(ideas, collector)
	recommendSvc := service.NewRecommendService(ideas)
	reactionSvc := service.NewReactionService(reactions, collector)
	sourceSvc := service.NewSourceService(sources)

	router := handler.NewRouter(handler.Deps{
		JWTSecret: testSecret,
		Metrics:   collector,
		Auth:      handler.NewAuthHandler(authSvc),
		Users:     handler.NewUserHandler(authSvc),
		Ideas:     handler.NewIdeaHandler(ideaSvc, recommendSvc),
		Reactions: handler.NewReactionHandler(reactionSvc),
		Sources:   handler.NewSourceHandler(sourceSvc),
	})

	return &testServer{Handler: router, db: db}
}

// do sends a JSON request through the router and returns the recorder.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// userPayload is the token envelope signup, login and profile edits return.
type userPayload struct {
	UserID   string `json:"userId"`
	Sub      string `json:"sub"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
	Token    string `json:"token"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) userPayload {
	t.Helper()

	var body struct {
		User userPayload `json:"user"`
	}
	decodeBody(t, rec, &body)
	return body.User
}

func bodyMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	decodeBody(t, rec, &body)
	return body["msg"]
}

func (s *testServer) signup(t *testing.T, email, username, password string) userPayload {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/users/signup", "", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeUser(t, rec)
}

func (s *testServer) postIdea(t *testing.T, token, url, description string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/ideas/", token, map[string]string{
		"url":         url,
		"description": description,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Idea struct {
			ID string `json:"ideaId"`
		} `json:"idea"`
	}
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.Idea.ID)
	return body.Idea.ID
}

func (s *testServer) react(t *testing.T, token, ideaID, kind string, agreement float64) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/ideas/"+ideaID+"/react", token, map[string]any{
		"type":      kind,
		"agreement": agreement,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
