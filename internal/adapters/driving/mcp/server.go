package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for margin.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "margin",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp server on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Debug("mcp server on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// open restores the newest snapshot if the document has no annotations
// yet, then loads the document in a fresh session. The caller closes the
// returned session.
func (s *Server) open(ctx context.Context, documentID string) (driving.DocumentSession, *alertLog, error) {
	if documentID == "" {
		return nil, nil, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	if err := s.restore(ctx, documentID); err != nil {
		return nil, nil, err
	}

	alerts := &alertLog{}
	session := s.ports.NewSession(alerts)
	if err := session.Open(ctx, documentID); err != nil {
		session.Close()
		return nil, nil, fmt.Errorf("loading document %q: %w", documentID, err)
	}
	return session, alerts, nil
}

func (s *Server) restore(ctx context.Context, documentID string) error {
	if s.ports.Snapshots == nil || len(s.ports.Annotations.Annotations(documentID)) > 0 {
		return nil
	}

	snap, err := s.ports.Snapshots.Latest(ctx, documentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	n := s.ports.Annotations.Restore(documentID, snap.Annotations)
	logger.Debug("mcp restored %d annotations for %q", n, documentID)
	return nil
}
