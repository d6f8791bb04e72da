package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/margin/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for margin resources.
	uriScheme = "margin://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Identifiers of all documents the provider serves",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's current annotations.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/annotations",
		Name:        "document-annotations",
		Description: "Current annotations of a document with its page metadata",
		MIMEType:    "application/json",
	}, s.handleAnnotationsResource)

	// Template for the newest saved snapshot.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/snapshot",
		Name:        "document-snapshot",
		Description: "Newest saved snapshot of a document",
		MIMEType:    "application/json",
	}, s.handleSnapshotResource)
}

// handleDocumentsResource returns the list of document identifiers.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	ids, err := s.ports.Documents.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type documentInfo struct {
		ID  string `json:"id"`
		URI string `json:"uri"`
	}

	infos := make([]documentInfo, len(ids))
	for i, id := range ids {
		infos[i] = documentInfo{
			ID:  id,
			URI: uriScheme + "documents/" + id + "/annotations",
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleAnnotationsResource returns a snapshot of the current annotations
// without saving it.
func (s *Server) handleAnnotationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI, "/annotations")
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	session, _, err := s.open(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, err
	}
	defer session.Close()

	snap := s.ports.Annotations.Snapshot(docID, session.State().Document)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling annotations: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleSnapshotResource returns the newest saved snapshot of a document.
func (s *Server) handleSnapshotResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Snapshots == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI, "/snapshot")
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snap, err := s.ports.Snapshots.Latest(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractDocumentID extracts the document ID from a URI like
// margin://documents/{documentId}/annotations.
func extractDocumentID(uri, suffix string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
