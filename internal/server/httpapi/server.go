// Package httpapi exposes the funnel over HTTP. Handlers are thin: they bind
// payloads, call services and map errors to status codes; every policy
// decision lives in the services and the gate.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/identity"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/service"
	"github.com/fitconsult/fitfunnel/internal/store"
)

// Server wires the services to their routes.
type Server struct {
	reg     *service.Registration
	assess  *service.Assessment
	lessons *service.Lessons
	admin   *service.Admin
	ids     *identity.Store
	store   *store.Store
	log     *zap.Logger
}

// New constructs the HTTP server.
func New(reg *service.Registration, assess *service.Assessment, lessons *service.Lessons,
	admin *service.Admin, ids *identity.Store, st *store.Store, log *zap.Logger) *Server {
	return &Server{
		reg:     reg,
		assess:  assess,
		lessons: lessons,
		admin:   admin,
		ids:     ids,
		store:   st,
		log:     log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(Logging(s.log), Recovery(s.log))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/register", s.register)
		api.POST("/session/restore", s.restoreSession)
		api.POST("/session/logout", s.logout)
		api.GET("/state", s.state)
		api.GET("/gate", s.gateVerdict)
		api.POST("/assessment", s.submitAssessment)
		api.POST("/lessons/:id/complete", s.completeLesson)
	}

	adm := api.Group("/admin")
	{
		adm.POST("/login", s.adminLogin)
		authed := adm.Group("", s.requireAdmin)
		authed.PUT("/settings", s.saveSettings)
		authed.GET("/users", s.listUsers)
		authed.GET("/metrics", s.metrics)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"phase":      snap.Phase,
		"syncStatus": snap.SyncStatus,
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	WhatsApp string `json:"whatsapp" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := s.reg.Register(c.Request.Context(), service.RegistrationInput{
		Name:     req.Name,
		Email:    req.Email,
		WhatsApp: req.WhatsApp,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type restoreRequest struct {
	Email string `json:"email" binding:"required"`
}

func (s *Server) restoreSession(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := s.reg.Login(c.Request.Context(), req.Email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) logout(c *gin.Context) {
	s.reg.Logout()
	c.Status(http.StatusNoContent)
}

func (s *Server) state(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"user":       snap.User,
		"settings":   snap.Settings,
		"phase":      snap.Phase,
		"syncStatus": snap.SyncStatus,
	})
}

func (s *Server) gateVerdict(c *gin.Context) {
	c.JSON(http.StatusOK, s.lessons.Evaluate())
}

type assessmentRequest struct {
	Age              int     `json:"age"`
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
	ActivityLevel    string  `json:"activityLevel"`
	Goal             string  `json:"goal"`
	SleepQuality     int     `json:"sleepQuality"`
	FoodQuality      int     `json:"foodQuality"`
	TrainingLocation string  `json:"trainingLocation"`
}

func (s *Server) submitAssessment(c *gin.Context) {
	if !s.pass(c) {
		return
	}
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, msg, err := s.assess.Submit(c.Request.Context(), service.AssessmentInput{
		Age:              req.Age,
		Height:           req.Height,
		Weight:           req.Weight,
		ActivityLevel:    req.ActivityLevel,
		Goal:             req.Goal,
		SleepQuality:     req.SleepQuality,
		FoodQuality:      req.FoodQuality,
		TrainingLocation: req.TrainingLocation,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": data, "message": msg})
}

func (s *Server) completeLesson(c *gin.Context) {
	if !s.pass(c) {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	d, err := s.lessons.Complete(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// pass evaluates the access gate. A denial is a redirect, not an error, but
// the gated handler must not run.
func (s *Server) pass(c *gin.Context) bool {
	d := s.lessons.Evaluate()
	if !d.Allowed {
		c.AbortWithStatusJSON(http.StatusForbidden, d)
		return false
	}
	return true
}

type adminLoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, exp, err := s.admin.LoginWithIP(c.Request.Context(), req.Login, req.Password, c.ClientIP())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.ids.SetAdminToken(token); err != nil {
		s.log.Warn("persist admin token", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": exp})
}

// requireAdmin accepts a Bearer token and aborts with the admin-login
// redirect when it is missing or invalid.
func (s *Server) requireAdmin(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" || s.admin.VerifyToken(token) != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"route": "admin-login"})
		return
	}
	c.Next()
}

func (s *Server) saveSettings(c *gin.Context) {
	var edited model.Settings
	if err := c.ShouldBindJSON(&edited); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.admin.SaveSettings(c.Request.Context(), edited); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot().Users)
}

func (s *Server) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.admin.Metrics())
}

// fail maps service errors to status codes.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, errs.ErrRemoteUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
