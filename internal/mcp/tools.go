// ABOUTME: MCP tool definitions and registration for the meeting assistant server
// ABOUTME: Defines JSON schemas for the six meeting tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quorumlabs/quorum/internal/core"
	"github.com/quorumlabs/quorum/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, index storage.VectorIndex) *Handlers {
	handlers := &Handlers{
		pipeline: pipeline,
		index:    index,
	}

	// 1. add_discussion_point - propose a topic for an upcoming meeting
	server.AddTool(mcp.Tool{
		Name:        "add_discussion_point",
		Description: "Add a discussion point a participant wants addressed in a meeting. The point is embedded and indexed for agenda generation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"meeting_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the meeting",
				},
				"participant": map[string]interface{}{
					"type":        "string",
					"description": "Name of the participant proposing the point",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "The discussion point text",
				},
			},
			Required: []string{"meeting_id", "content"},
		},
	}, handlers.AddDiscussionPoint)

	// 2. ingest_document - index a supporting document
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a supporting document for a meeting. The document is embedded and indexed so agendas and summaries can cite it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"meeting_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the meeting",
				},
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Original filename, kept as provenance metadata",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full document text",
				},
			},
			Required: []string{"meeting_id", "content"},
		},
	}, handlers.IngestDocument)

	// 3. process_transcript - match points against a transcript and index it
	server.AddTool(mcp.Tool{
		Name:        "process_transcript",
		Description: "Process a meeting transcript: decide which discussion points were addressed via embedding similarity and index every transcript sentence for retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"meeting_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the meeting",
				},
				"transcript": map[string]interface{}{
					"type":        "string",
					"description": "Full transcript text",
				},
				"points": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Discussion point texts to match against the transcript",
				},
			},
			Required: []string{"meeting_id", "transcript"},
		},
	}, handlers.ProcessTranscript)

	// 4. generate_agenda - RAG agenda artifact
	server.AddTool(mcp.Tool{
		Name:        "generate_agenda",
		Description: "Generate a meeting agenda from discussion points plus relevant document context retrieved from this meeting's indexed documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"meeting_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the meeting",
				},
				"points": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Ordered discussion point texts",
				},
			},
			Required: []string{"meeting_id"},
		},
	}, handlers.GenerateAgenda)

	// 5. generate_summary - RAG summary artifact
	server.AddTool(mcp.Tool{
		Name:        "generate_summary",
		Description: "Generate a post-meeting summary from the transcript and point lists, grounded by context retrieved across all indexed meetings.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"meeting_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the meeting",
				},
				"transcript": map[string]interface{}{
					"type":        "string",
					"description": "Full transcript text",
				},
				"addressed": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Discussion points that were addressed",
				},
				"unaddressed": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Discussion points that were not addressed",
				},
			},
			Required: []string{"meeting_id", "transcript"},
		},
	}, handlers.GenerateSummary)

	// 6. index_stats - inspect the vector index
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report the number of indexed records and the embedding dimension.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
