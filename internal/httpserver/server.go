// Package httpserver exposes the probe report receiver: a small HTTP
// surface that accepts pushed report text, audits it, and relays extracted
// metrics to Zabbix.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callscope/callscope/internal/auditlog"
	"github.com/callscope/callscope/internal/probe"
	"github.com/callscope/callscope/internal/sender"
)

const serviceName = "Remote Log Server"

// Server is the probe report receiver.
type Server struct {
	addr       string
	clientID   string
	zabbixHost string
	sink       sender.Sender
	audit      *auditlog.Logger
	logger     *zap.Logger
	server     *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
	startTime  time.Time
	now        func() time.Time
}

// NewServer creates a receiver bound to addr. Extracted metrics are
// delivered through sink attributed to zabbixHost; every accepted message is
// appended to audit first.
func NewServer(addr, clientID, zabbixHost string, sink sender.Sender, audit *auditlog.Logger, logger *zap.Logger) *Server {
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:       addr,
		clientID:   clientID,
		zabbixHost: zabbixHost,
		sink:       sink,
		audit:      audit,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		now:        time.Now,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := s.router()

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.POST("/log", s.handleLog)
	r.GET("/", s.handleStatus)
	return r
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		c.Next()

		s.logger.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// handleLog accepts one probe report, audits it, and relays every metric
// token it contains. Sink failures are reported in the summary body only;
// the endpoint stays 200 so a degraded Zabbix backend never takes the audit
// path down with it.
func (s *Server) handleLog(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or non-JSON body"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON body must contain a 'message' field"})
		return
	}

	// Audit before parsing so the raw report survives even when extraction
	// or delivery goes sideways.
	if err := s.audit.Record(req.Message); err != nil {
		s.logger.Error("audit log write failed", zap.Error(err))
	}

	var sent, failed int
	for _, sample := range probe.Extract(req.Message, s.zabbixHost, s.now()) {
		if err := s.sink.Send(c.Request.Context(), sample); err != nil {
			failed++
			continue
		}
		sent++
	}

	summary := fmt.Sprintf("Log received. Sent %d metrics to Zabbix for host %s. Failed: %d.",
		sent, s.zabbixHost, failed)

	status := "success"
	if failed > 0 {
		status = "warning"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "message": summary})
}

// handleStatus reports process identity without side effects.
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "running",
		"service":       serviceName,
		"client_id":     s.clientID,
		"zabbix_target": s.zabbixHost,
		"uptime":        time.Since(s.startTime).String(),
	})
}
