// Package server exposes the two lifecycle entry points over HTTP: the
// identity-provider post-verification hook and the authenticated tier
// upgrade call.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"

	"github.com/lambdahouse/accounts"
	"github.com/lambdahouse/accounts/gate"
	"github.com/lambdahouse/accounts/internal/directory"
	"github.com/lambdahouse/accounts/internal/httpx"
	"github.com/lambdahouse/accounts/internal/metrics"
)

// WorkflowStarter is the executor surface the entry points need.
type WorkflowStarter interface {
	StartCreation(ctx context.Context, in accounts.CreationInput) (string, error)
	StartUpgrade(ctx context.Context, in accounts.UpgradeInput) (string, error)
	UpgradeAndWait(ctx context.Context, in accounts.UpgradeInput) (accounts.UpgradeResult, string, error)
}

type Server struct {
	engine    *gin.Engine
	flows     WorkflowStarter
	directory directory.Directory
}

type ServerOptions struct {
	Flows      WorkflowStarter
	Directory  directory.Directory
	AuthSecret []byte
}

func NewServer(options ServerOptions) *Server {
	s := &Server{
		flows:     options.Flows,
		directory: options.Directory,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Instrument())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/hooks/post-confirmation", s.postConfirmationHandler)
	r.POST("/upgrade", authMiddleware(options.AuthSecret), s.upgradeHandler)

	s.engine = r
	return s
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	wait := httpx.ServeContext(ctx, l, &http.Server{Handler: s.engine})
	return wait()
}

type postConfirmationRequest struct {
	IdentityID    string `json:"identityId" binding:"required"`
	Email         string `json:"email" binding:"required"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	ContactNumber string `json:"contactNumber"`
}

// postConfirmationHandler is invoked by the identity provider once per
// successful verification. Any failure here is returned as a server error,
// which aborts the caller's verification flow; the provider re-delivers.
func (s *Server) postConfirmationHandler(c *gin.Context) {
	var req postConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := s.directory.AddToGroup(ctx, req.IdentityID, gate.GroupUser); err != nil {
		slog.Error("adding verified identity to user group", err, "identityID", req.IdentityID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign initial group"})
		return
	}

	ref, err := s.flows.StartCreation(ctx, accounts.CreationInput{
		IdentityID:    req.IdentityID,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		slog.Error("starting creation workflow", err, "identityID", req.IdentityID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start account creation"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"executionReference": ref})
}

type upgradeRequest struct {
	IdentityID string `json:"identityId" binding:"required"`
}

type upgradeResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	ExecutionReference string `json:"executionReference,omitempty"`
}

// upgradeHandler always answers with a structured {success, message}
// body, even on internal failure. Gate denials are user-visible and
// distinct from workflow errors.
func (s *Server) upgradeHandler(c *gin.Context) {
	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, upgradeResponse{Message: err.Error()})
		return
	}
	claims := claimsFrom(c)

	if d := gate.Authorize(claims.Subject, claims.Groups, req.IdentityID); !d.Allowed {
		c.JSON(http.StatusOK, upgradeResponse{Message: d.Reason})
		return
	}
	// Optimistic check against the presented claims; the workflow's grant
	// step is idempotent if the claims turn out to be stale.
	if d := gate.CheckNotYetMember(claims.Groups, gate.GroupPaid); !d.Allowed {
		c.JSON(http.StatusOK, upgradeResponse{Message: d.Reason})
		return
	}

	ctx := c.Request.Context()
	in := accounts.UpgradeInput{IdentityID: req.IdentityID}

	if c.Query("wait") == "true" {
		result, ref, err := s.flows.UpgradeAndWait(ctx, in)
		if err != nil {
			slog.Error("upgrade workflow failed", err, "identityID", req.IdentityID)
			c.JSON(http.StatusOK, upgradeResponse{
				Message:            "failed to complete user upgrade",
				ExecutionReference: ref,
			})
			return
		}
		message := "user upgraded successfully"
		if !result.Delivered {
			message = "user upgraded successfully (notification not delivered)"
		}
		c.JSON(http.StatusOK, upgradeResponse{
			Success:            true,
			Message:            message,
			ExecutionReference: ref,
		})
		return
	}

	ref, err := s.flows.StartUpgrade(ctx, in)
	if err != nil {
		slog.Error("starting upgrade workflow", err, "identityID", req.IdentityID)
		c.JSON(http.StatusOK, upgradeResponse{Message: "failed to initiate user upgrade process"})
		return
	}
	c.JSON(http.StatusOK, upgradeResponse{
		Success:            true,
		Message:            "user upgrade process initiated successfully",
		ExecutionReference: ref,
	})
}
