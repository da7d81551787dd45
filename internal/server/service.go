// Package server provides the local JSON API over the survival calculator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

// Config controls the service runtime behavior.
type Config struct {
	Addr          string
	DefaultLocale i18n.Locale
	CORSOrigins   []string
}

// Scenarios is the read side of the scenario store.
type Scenarios interface {
	List(ctx context.Context) ([]model.Scenario, error)
	Get(ctx context.Context, name string) (model.Scenario, error)
}

// Status is served at /v1/status.
type Status struct {
	StartedAt    time.Time `json:"started_at"`
	UptimeSec    int64     `json:"uptime_sec"`
	Addr         string    `json:"addr"`
	Locale       string    `json:"locale"`
	Requests     int64     `json:"requests"`
	Calculations int64     `json:"calculations"`
	BadRequests  int64     `json:"bad_requests"`
	LastError    string    `json:"last_error,omitempty"`
	Scenarios    bool      `json:"scenarios"`
}

// Amount accepts a JSON string or number and keeps its raw text, so
// validation sees exactly what the client sent.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	if string(data) == "null" {
		*a = ""
		return nil
	}
	*a = Amount(data)
	return nil
}

// CostInput is one cost in a survival request.
type CostInput struct {
	Name        string `json:"name"`
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
}

// SurvivalRequest is the body of POST /v1/survival.
type SurvivalRequest struct {
	Remaining Amount      `json:"remaining"`
	Costs     []CostInput `json:"costs"`
	Locale    string      `json:"locale,omitempty"`
	Unit      string      `json:"unit,omitempty"`
}

// SurvivalResponse is the result of POST /v1/survival.
type SurvivalResponse struct {
	model.Report
	AvailableUnits []string `json:"available_units"`
}

// ScenarioView is a saved scenario with its computed report.
type ScenarioView struct {
	model.Scenario
	Report model.Report `json:"report"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Service provides the HTTP API.
type Service struct {
	cfg       Config
	scenarios Scenarios
	logger    *zap.Logger

	mu           sync.RWMutex
	startedAt    time.Time
	requests     int64
	calculations int64
	badRequests  int64
	lastError    string
}

// New returns a service. scenarios may be nil, in which case the scenario
// endpoints answer 503.
func New(cfg Config, scenarios Scenarios, logger *zap.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = i18n.Default
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		scenarios: scenarios,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Handler builds the gin engine serving the API.
func (s *Service) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type", "Accept-Language"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/healthz", s.handleHealth)
	v1 := r.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.POST("/survival", s.handleSurvival)
	v1.GET("/scenarios", s.handleScenarios)
	v1.GET("/scenarios/:name", s.handleScenario)
	return r
}

// Run serves the API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("api listening", zap.String("op", "server.Run"), zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down api: %w", err)
		}
		<-errCh
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("api http server: %w", err)
	}
}

func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		c.Next()

		if len(c.Errors) > 0 {
			s.recordError(c.Errors.Last())
			s.logger.Error("request failed",
				zap.String("op", "server.request"),
				zap.String("request_id", id),
				zap.String("path", c.FullPath()),
				zap.String("errors", c.Errors.String()),
			)
		}

		s.mu.Lock()
		s.requests++
		if c.Writer.Status() >= 400 && c.Writer.Status() < 500 {
			s.badRequests++
		}
		s.mu.Unlock()

		s.logger.Info("request",
			zap.String("op", "server.request"),
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// locale picks the response locale from the explicit value, then
// Accept-Language, then the configured default.
func (s *Service) locale(c *gin.Context, explicit string) i18n.Locale {
	if explicit != "" {
		return i18n.Parse(explicit)
	}
	if q := c.Query("locale"); q != "" {
		return i18n.Parse(q)
	}
	if h := c.GetHeader("Accept-Language"); h != "" {
		tag, _, _ := strings.Cut(h, ",")
		tag, _, _ = strings.Cut(tag, ";")
		return i18n.Parse(tag)
	}
	return s.cfg.DefaultLocale
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:    s.startedAt,
		UptimeSec:    int64(time.Since(s.startedAt).Seconds()),
		Addr:         s.cfg.Addr,
		Locale:       string(s.cfg.DefaultLocale),
		Requests:     s.requests,
		Calculations: s.calculations,
		BadRequests:  s.badRequests,
		LastError:    s.lastError,
		Scenarios:    s.scenarios != nil,
	}
}

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleSurvival(c *gin.Context) {
	var req SurvivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return
	}

	unit, auto := budget.UnitMonths, true
	if req.Unit != "" && req.Unit != "auto" {
		u, err := budget.ParseUnit(req.Unit)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		unit, auto = u, false
	}

	calc := budget.NewCalculator()
	costs := make([]budget.CostEntry, 0, len(req.Costs))
	for i, in := range req.Costs {
		costs = append(costs, budget.CostEntry{
			ID:          budget.CostID(i + 1),
			Name:        in.Name,
			Amount:      strings.TrimSpace(string(in.Amount)),
			Description: in.Description,
		})
	}
	calc.Load(strings.TrimSpace(string(req.Remaining)), costs)
	if !auto {
		calc.SelectUnit(unit)
	}

	s.mu.Lock()
	s.calculations++
	s.mu.Unlock()

	loc := s.locale(c, req.Locale)
	c.JSON(http.StatusOK, SurvivalResponse{
		Report:         model.NewReport(calc, loc),
		AvailableUnits: availableUnits(calc),
	})
}

func availableUnits(calc *budget.Calculator) []string {
	out := []string{}
	for _, u := range budget.Units {
		if calc.UnitAvailable(u) {
			out = append(out, u.String())
		}
	}
	return out
}

func (s *Service) handleScenarios(c *gin.Context) {
	if s.scenarios == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody{Error: "scenario store unavailable"})
		return
	}
	list, err := s.scenarios.List(c.Request.Context())
	if err != nil {
		s.recordError(err)
		s.logger.Error("listing scenarios", zap.String("op", "server.scenarios"), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{Error: "listing scenarios failed"})
		return
	}

	loc := s.locale(c, "")
	views := make([]ScenarioView, 0, len(list))
	for _, sc := range list {
		views = append(views, scenarioView(sc, loc))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Service) handleScenario(c *gin.Context) {
	if s.scenarios == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody{Error: "scenario store unavailable"})
		return
	}
	sc, err := s.scenarios.Get(c.Request.Context(), c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}
	if err != nil {
		s.recordError(err)
		s.logger.Error("reading scenario", zap.String("op", "server.scenario"), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{Error: "reading scenario failed"})
		return
	}
	c.JSON(http.StatusOK, scenarioView(sc, s.locale(c, "")))
}

func scenarioView(sc model.Scenario, loc i18n.Locale) ScenarioView {
	calc := budget.NewCalculator()
	sc.Apply(calc)
	return ScenarioView{Scenario: sc, Report: model.NewReport(calc, loc)}
}
