//go:build integration
// +build integration

package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	dbadapter "taskflow/internal/adapter/db"
	httpadapter "taskflow/internal/adapter/http"
	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/handlers"
	"taskflow/internal/adapter/token"
	appservice "taskflow/internal/app/service"
	"taskflow/internal/config"
	"taskflow/pkg/translator"
)

type APIIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestAPIIntegrationSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{TranslationFolder: "../../../../pkg/translator/translation"})
	suite.Run(t, new(APIIntegrationSuite))
}

func (s *APIIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	tokens := token.NewJWTManager("integration-secret", token.DefaultTTL)
	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(s.DB))
	summaryService := appservice.NewSummaryService(
		dbadapter.NewSummaryRepository(s.DB),
		taskService,
		appservice.NewSummaryGenerator(nil),
	)
	authService := appservice.NewAuthService(
		dbadapter.NewUserRepository(s.DB),
		token.NewBcryptHasher(bcrypt.MinCost),
		tokens,
	)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:    handlers.NewHealthHandler(dbadapter.NewPinger(s.DB), config.StoreMySQL, false),
		Auth:      handlers.NewAuthHandler(authService),
		Tasks:     handlers.NewTaskHandler(taskService),
		Summaries: handlers.NewSummaryHandler(summaryService),
	}, tokens)

	s.router = router
}

func (s *APIIntegrationSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APIIntegrationSuite) register(email string) string {
	rec := s.request(http.MethodPost, "/api/auth/register", "", map[string]string{"email": email, "password": "secret"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotEmpty(got.Token)
	return got.Token
}

func (s *APIIntegrationSuite) TestTaskLifecycleAcrossUsers() {
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	rec := s.request(http.MethodPost, "/api/tasks", alice, map[string]string{
		"title": "Buy milk", "priority": "low", "category": "Personal",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Require().False(created.Completed)

	rec = s.request(http.MethodPut, "/api/tasks/"+created.ID, bob, map[string]string{"title": "hijack"})
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodPut, "/api/tasks/"+created.ID, alice, map[string]bool{"completed": true})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/api/tasks", bob, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[]`, rec.Body.String())

	today := time.Now().UTC().Format("2006-01-02")
	rec = s.request(http.MethodPost, "/api/summaries/generate", alice, map[string]string{"date": today})
	// one completed task and no provider configured
	s.Require().Equal(http.StatusServiceUnavailable, rec.Code)

	rec = s.request(http.MethodPost, "/api/summaries/generate", alice, map[string]string{"date": "2001-01-01"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var generated dto.GeneratedSummaryItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &generated))
	s.Require().Equal("No tasks were completed today. Take some time to plan for tomorrow!", generated.Summary)

	rec = s.request(http.MethodDelete, "/api/tasks/"+created.ID, alice, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)
	rec = s.request(http.MethodDelete, "/api/tasks/"+created.ID, alice, nil)
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *APIIntegrationSuite) TestSummaryUpsertIsKeyedByDate() {
	alice := s.register("alice@example.com")

	for _, text := range []string{"first", "second"} {
		rec := s.request(http.MethodPost, "/api/summaries", alice, map[string]any{
			"date": "2026-03-02", "summary": text, "taskCount": 1,
		})
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.request(http.MethodGet, "/api/summaries", alice, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.SummaryItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Require().Equal("second", got[0].Summary)

	rec = s.request(http.MethodGet, "/api/summaries/range/2026-03-01/2026-03-07", alice, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodDelete, "/api/summaries/2026-03-02", alice, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)
	rec = s.request(http.MethodGet, "/api/summaries/2026-03-02", alice, nil)
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *APIIntegrationSuite) TestDuplicateRegistrationConflicts() {
	s.register("alice@example.com")

	rec := s.request(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "ALICE@example.com", "password": "x"})
	s.Require().Equal(http.StatusConflict, rec.Code)

	rec = s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "wrong"})
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}
