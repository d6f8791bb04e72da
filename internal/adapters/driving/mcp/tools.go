package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/margin/internal/core/domain"
)

// DocumentInput selects a document.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document identifier"`
}

// AnnotationOutput represents a single annotation.
type AnnotationOutput struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Page      int       `json:"page"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}

// ListAnnotationsOutput is the output schema for the list_annotations tool.
type ListAnnotationsOutput struct {
	DocumentID  string             `json:"document_id"`
	Title       string             `json:"title"`
	PageCount   int                `json:"page_count"`
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// AddAnnotationInput is the input schema for the add_annotation tool.
type AddAnnotationInput struct {
	DocumentID string  `json:"document_id" jsonschema:"the document identifier"`
	Text       string  `json:"text" jsonschema:"the annotation text"`
	Page       int     `json:"page" jsonschema:"1-based page number"`
	X          float64 `json:"x" jsonschema:"horizontal position from the page's left edge (0-800)"`
	Y          float64 `json:"y" jsonschema:"vertical position from the page's top edge (0-1131)"`
}

// MoveAnnotationInput is the input schema for the move_annotation tool.
type MoveAnnotationInput struct {
	DocumentID   string  `json:"document_id" jsonschema:"the document identifier"`
	AnnotationID string  `json:"annotation_id" jsonschema:"the annotation to move"`
	Page         int     `json:"page,omitempty" jsonschema:"1-based page number (default: unchanged)"`
	X            float64 `json:"x" jsonschema:"new horizontal position"`
	Y            float64 `json:"y" jsonschema:"new vertical position"`
}

// EditAnnotationInput is the input schema for the edit_annotation tool.
type EditAnnotationInput struct {
	DocumentID   string `json:"document_id" jsonschema:"the document identifier"`
	AnnotationID string `json:"annotation_id" jsonschema:"the annotation to edit"`
	Text         string `json:"text" jsonschema:"the new annotation text"`
}

// AnnotationIDInput selects one annotation.
type AnnotationIDInput struct {
	DocumentID   string `json:"document_id" jsonschema:"the document identifier"`
	AnnotationID string `json:"annotation_id" jsonschema:"the annotation identifier"`
}

// AnnotationResultOutput is returned by tools that change one annotation.
type AnnotationResultOutput struct {
	Annotation *AnnotationOutput `json:"annotation,omitempty"`
	Deleted    bool              `json:"deleted,omitempty"`
}

// SaveSnapshotOutput is the output schema for the save_snapshot tool.
type SaveSnapshotOutput struct {
	DocumentID       string    `json:"document_id"`
	TotalAnnotations int       `json:"total_annotations"`
	SavedAt          time.Time `json:"saved_at"`
	Messages         []string  `json:"messages,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents available for annotation",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "Load a document and list its annotations in page order",
	}, s.handleListAnnotations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_annotation",
		Description: "Place a text annotation on a document page",
	}, s.handleAddAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "move_annotation",
		Description: "Move an annotation to a new position",
	}, s.handleMoveAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "edit_annotation",
		Description: "Replace the text of an annotation",
	}, s.handleEditAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_annotation",
		Description: "Delete an annotation",
	}, s.handleDeleteAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_snapshot",
		Description: "Save a snapshot of a document's annotations to the configured sink",
	}, s.handleSaveSnapshot)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Documents == nil {
		return nil, ListDocumentsOutput{}, ErrListingUnsupported
	}

	ids, err := s.ports.Documents.Documents(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("listing documents: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return nil, ListDocumentsOutput{Documents: ids, Count: len(ids)}, nil
}

// handleListAnnotations handles the list_annotations tool invocation.
func (s *Server) handleListAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, ListAnnotationsOutput, error) {
	session, _, err := s.open(ctx, input.DocumentID)
	if err != nil {
		return nil, ListAnnotationsOutput{}, err
	}
	defer session.Close()

	doc := session.State().Document
	output := ListAnnotationsOutput{
		DocumentID:  doc.ID,
		Title:       doc.Title,
		PageCount:   doc.PageCount(),
		Annotations: []AnnotationOutput{},
	}
	for _, page := range session.AnnotationsByPage() {
		for i := range page {
			output.Annotations = append(output.Annotations, toOutput(page[i]))
		}
	}
	output.Count = len(output.Annotations)

	return nil, output, nil
}

// handleAddAnnotation handles the add_annotation tool invocation.
func (s *Server) handleAddAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddAnnotationInput,
) (*mcp.CallToolResult, AnnotationResultOutput, error) {
	session, _, err := s.open(ctx, input.DocumentID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	defer session.Close()

	pos := domain.Position{X: input.X, Y: input.Y, PageIndex: input.Page - 1}
	a, err := session.AddAnnotation(input.Text, pos)
	if err != nil {
		return nil, AnnotationResultOutput{}, fmt.Errorf("adding annotation: %w", err)
	}

	out := toOutput(a)
	return nil, AnnotationResultOutput{Annotation: &out}, nil
}

// handleMoveAnnotation handles the move_annotation tool invocation.
func (s *Server) handleMoveAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MoveAnnotationInput,
) (*mcp.CallToolResult, AnnotationResultOutput, error) {
	session, _, err := s.open(ctx, input.DocumentID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	defer session.Close()

	current, err := s.find(input.DocumentID, input.AnnotationID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}

	pageIndex := current.Position.PageIndex
	if input.Page > 0 {
		pageIndex = input.Page - 1
	}
	if !session.State().Document.HasPage(pageIndex) {
		return nil, AnnotationResultOutput{}, fmt.Errorf("%w: page %d", domain.ErrInvalidPosition, pageIndex+1)
	}

	session.MoveAnnotation(input.AnnotationID, pageIndex, input.X, input.Y)

	moved, err := s.find(input.DocumentID, input.AnnotationID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	out := toOutput(moved)
	return nil, AnnotationResultOutput{Annotation: &out}, nil
}

// handleEditAnnotation handles the edit_annotation tool invocation.
func (s *Server) handleEditAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditAnnotationInput,
) (*mcp.CallToolResult, AnnotationResultOutput, error) {
	session, _, err := s.open(ctx, input.DocumentID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	defer session.Close()

	if _, err := s.find(input.DocumentID, input.AnnotationID); err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	text := input.Text
	s.ports.Annotations.Update(input.DocumentID, input.AnnotationID, domain.AnnotationPatch{Text: &text})

	edited, err := s.find(input.DocumentID, input.AnnotationID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	out := toOutput(edited)
	return nil, AnnotationResultOutput{Annotation: &out}, nil
}

// handleDeleteAnnotation handles the delete_annotation tool invocation.
func (s *Server) handleDeleteAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotationIDInput,
) (*mcp.CallToolResult, AnnotationResultOutput, error) {
	session, _, err := s.open(ctx, input.DocumentID)
	if err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	defer session.Close()

	if _, err := s.find(input.DocumentID, input.AnnotationID); err != nil {
		return nil, AnnotationResultOutput{}, err
	}
	session.DeleteAnnotation(input.AnnotationID)

	return nil, AnnotationResultOutput{Deleted: true}, nil
}

// handleSaveSnapshot handles the save_snapshot tool invocation.
func (s *Server) handleSaveSnapshot(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, SaveSnapshotOutput, error) {
	session, alerts, err := s.open(ctx, input.DocumentID)
	if err != nil {
		return nil, SaveSnapshotOutput{}, err
	}
	defer session.Close()

	snap, err := session.Save(ctx)
	if err != nil {
		return nil, SaveSnapshotOutput{}, err
	}

	return nil, SaveSnapshotOutput{
		DocumentID:       snap.DocumentID,
		TotalAnnotations: snap.TotalAnnotations,
		SavedAt:          snap.SavedAt,
		Messages:         alerts.Messages(),
	}, nil
}

// find returns the current copy of an annotation.
func (s *Server) find(documentID, annotationID string) (domain.Annotation, error) {
	for _, a := range s.ports.Annotations.Annotations(documentID) {
		if a.ID == annotationID {
			return a, nil
		}
	}
	return domain.Annotation{}, fmt.Errorf("%w: %q", domain.ErrAnnotationNotFound, annotationID)
}

func toOutput(a domain.Annotation) AnnotationOutput {
	return AnnotationOutput{
		ID:        a.ID,
		Text:      a.Text,
		Page:      a.Position.PageIndex + 1,
		X:         a.Position.X,
		Y:         a.Position.Y,
		CreatedAt: a.CreatedAt,
	}
}
