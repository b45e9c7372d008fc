// ABOUTME: MCP tool handler implementations for the meeting assistant server
// ABOUTME: Validates arguments, calls the pipeline, and returns JSON tool results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quorumlabs/quorum/internal/core"
	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline *core.Pipeline
	index    storage.VectorIndex
}

// AddDiscussionPoint handles the add_discussion_point tool
func (h *Handlers) AddDiscussionPoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := request.RequireString("meeting_id")
	if err != nil {
		return mcp.NewToolResultError("meeting_id argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	participant := request.GetString("participant", "")

	point, err := h.pipeline.AddDiscussionPoint(meetingID, participant, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add discussion point: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"point_id":   point.ID,
		"meeting_id": point.MeetingID,
		"addressed":  point.Addressed,
	})
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := request.RequireString("meeting_id")
	if err != nil {
		return mcp.NewToolResultError("meeting_id argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	filename := request.GetString("filename", "")

	recordID, err := h.pipeline.IngestDocument(meetingID, filename, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ingest document: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"record_id":  recordID,
		"meeting_id": meetingID,
		"filename":   filename,
	})
}

// ProcessTranscript handles the process_transcript tool
func (h *Handlers) ProcessTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := request.RequireString("meeting_id")
	if err != nil {
		return mcp.NewToolResultError("meeting_id argument is required and must be a string"), nil
	}
	transcript, err := request.RequireString("transcript")
	if err != nil {
		return mcp.NewToolResultError("transcript argument is required and must be a string"), nil
	}
	pointTexts := request.GetStringSlice("points", nil)

	points := make([]models.DiscussionPoint, len(pointTexts))
	for i, text := range pointTexts {
		points[i] = models.DiscussionPoint{
			ID:        fmt.Sprintf("point_%d", i),
			MeetingID: meetingID,
			Content:   text,
		}
	}

	updated, results, err := h.pipeline.ProcessTranscript(meetingID, transcript, points)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to process transcript: %v", err)), nil
	}

	addressed := []string{}
	unaddressed := []string{}
	for _, p := range updated {
		if p.Addressed {
			addressed = append(addressed, p.Content)
		} else {
			unaddressed = append(unaddressed, p.Content)
		}
	}

	return jsonResult(map[string]interface{}{
		"meeting_id":  meetingID,
		"addressed":   addressed,
		"unaddressed": unaddressed,
		"results":     results,
	})
}

// GenerateAgenda handles the generate_agenda tool
func (h *Handlers) GenerateAgenda(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := request.RequireString("meeting_id")
	if err != nil {
		return mcp.NewToolResultError("meeting_id argument is required and must be a string"), nil
	}
	points := request.GetStringSlice("points", nil)

	agenda, err := h.pipeline.GenerateAgenda(meetingID, points)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("agenda generation failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"meeting_id": meetingID,
		"agenda":     agenda,
	})
}

// GenerateSummary handles the generate_summary tool
func (h *Handlers) GenerateSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := request.RequireString("meeting_id")
	if err != nil {
		return mcp.NewToolResultError("meeting_id argument is required and must be a string"), nil
	}
	transcript, err := request.RequireString("transcript")
	if err != nil {
		return mcp.NewToolResultError("transcript argument is required and must be a string"), nil
	}
	addressed := request.GetStringSlice("addressed", nil)
	unaddressed := request.GetStringSlice("unaddressed", nil)

	summary, err := h.pipeline.GenerateSummary(meetingID, transcript, addressed, unaddressed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary generation failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"meeting_id": meetingID,
		"summary":    summary,
	})
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := h.index.Count()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count records: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"records":   count,
		"dimension": h.index.Dimension(),
	})
}

// jsonResult marshals a response map into a text tool result
func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
