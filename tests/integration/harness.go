// Package integration exercises the full HTTP stack against a real
// database. The platform APIs and the caption generation endpoint are
// replaced with local stub servers, so publish flows run end to end
// without leaving the process.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	analyticsapp "github.com/rarerevisit/backend/internal/application/analytics"
	catalogapp "github.com/rarerevisit/backend/internal/application/catalog"
	contentapp "github.com/rarerevisit/backend/internal/application/content"
	socialapp "github.com/rarerevisit/backend/internal/application/social"
	"github.com/rarerevisit/backend/internal/domain/catalog"
	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/social"
	"github.com/rarerevisit/backend/internal/infrastructure/cache"
	"github.com/rarerevisit/backend/internal/infrastructure/config"
	"github.com/rarerevisit/backend/internal/infrastructure/event"
	"github.com/rarerevisit/backend/internal/infrastructure/generation"
	"github.com/rarerevisit/backend/internal/infrastructure/persistence"
	"github.com/rarerevisit/backend/internal/infrastructure/publisher"
	"github.com/rarerevisit/backend/internal/interfaces/http/handler"
	"github.com/rarerevisit/backend/internal/interfaces/http/middleware"
	"github.com/rarerevisit/backend/internal/interfaces/http/router"
)

var setupOnce sync.Once

// stubCaption is what the generation stub always returns
const stubCaption = "An amber evening, bottled."

// stubPlatformAPI stands in for every platform's publish endpoint.
// Tests switch its response to drive success and failure paths.
type stubPlatformAPI struct {
	mu       sync.Mutex
	status   int
	body     map[string]interface{}
	lastPath string
	calls    int
}

func newStubPlatformAPI() *stubPlatformAPI {
	s := &stubPlatformAPI{}
	s.respondSuccess()
	return s
}

// respondSuccess restores the default acknowledgement
func (s *stubPlatformAPI) respondSuccess() {
	s.respond(http.StatusOK, map[string]interface{}{
		"id":         "post-1001",
		"engagement": int64(120),
	})
}

func (s *stubPlatformAPI) respond(status int, body map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

func (s *stubPlatformAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lastPath = r.URL.Path
	s.calls++
	status, body := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// LastPath returns the path of the most recent platform call
func (s *stubPlatformAPI) LastPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPath
}

// Calls returns how many publish calls the stub has received
func (s *stubPlatformAPI) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// TestApp wires the full application against an in-memory database
type TestApp struct {
	Engine   *gin.Engine
	DB       *gorm.DB
	Platform *stubPlatformAPI
}

// newTestApp builds the application the way cmd/server does, with an
// in-memory SQLite database and stubbed external endpoints
func newTestApp(t *testing.T) *TestApp {
	t.Helper()

	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		middleware.SetupValidator()
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&social.SocialAccount{},
		&content.ContentItem{},
	))

	generationServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": stubCaption}},
			},
		})
	}))
	t.Cleanup(generationServer.Close)

	platformStub := newStubPlatformAPI()
	platformServer := httptest.NewServer(platformStub)
	t.Cleanup(platformServer.Close)

	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(db)
	itemRepo := persistence.NewGormContentItemRepository(db)
	accountRepo := persistence.NewGormSocialAccountRepository(db)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewIdempotentHandler(
		socialapp.NewPublishOutcomeHandler(accountRepo),
		cache.NewInMemoryIdempotencyStore(),
		log,
	))
	require.NoError(t, eventBus.Start(t.Context()))

	captionGenerator := generation.NewOpenAIGenerator(config.GenerationConfig{
		BaseURL: generationServer.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
	publisherRegistry := publisher.NewDefaultRegistry(config.PublishConfig{
		BaseURL: platformServer.URL,
	})

	productService := catalogapp.NewProductService(productRepo)
	generationService := contentapp.NewGenerationService(captionGenerator, itemRepo, 0)
	lifecycleService := contentapp.NewLifecycleService(itemRepo, accountRepo, publisherRegistry, eventBus, 0)
	accountService := socialapp.NewAccountService(accountRepo, eventBus)
	summaryService := analyticsapp.NewSummaryService(itemRepo, accountRepo)

	require.NoError(t, accountService.EnsureAccounts(t.Context()))

	productHandler := handler.NewProductHandler(productService)
	contentHandler := handler.NewContentHandler(generationService, lifecycleService)
	socialAccountHandler := handler.NewSocialAccountHandler(accountService)
	analyticsHandler := handler.NewAnalyticsHandler(summaryService)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)

	contentRoutes := router.NewDomainGroup("content", "/content")
	contentRoutes.POST("/generate", contentHandler.Generate)
	contentRoutes.POST("/posts", contentHandler.Create)
	contentRoutes.GET("/posts", contentHandler.List)
	contentRoutes.GET("/posts/:id", contentHandler.GetByID)
	contentRoutes.DELETE("/posts/:id", contentHandler.Delete)
	contentRoutes.POST("/posts/:id/schedule", contentHandler.Schedule)
	contentRoutes.POST("/posts/:id/publish", contentHandler.Publish)

	socialRoutes := router.NewDomainGroup("social", "/social")
	socialRoutes.GET("/accounts", socialAccountHandler.List)
	socialRoutes.POST("/accounts/:platform/connect", socialAccountHandler.Connect)
	socialRoutes.POST("/accounts/:platform/disconnect", socialAccountHandler.Disconnect)

	analyticsRoutes := router.NewDomainGroup("analytics", "/analytics")
	analyticsRoutes.GET("/summary", analyticsHandler.Summary)

	r.Register(catalogRoutes).
		Register(contentRoutes).
		Register(socialRoutes).
		Register(analyticsRoutes)

	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	return &TestApp{
		Engine:   engine,
		DB:       db,
		Platform: platformStub,
	}
}

// apiResponse is the envelope every endpoint returns
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
	Meta    *apiMeta        `json:"meta"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// request performs an HTTP request against the test application
func (a *TestApp) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	return w
}

// envelope decodes the response envelope
func envelope(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

// dataAs decodes the envelope's data field into the given type
func dataAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	resp := envelope(t, w)
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out), "data: %s", string(resp.Data))
	return out
}
