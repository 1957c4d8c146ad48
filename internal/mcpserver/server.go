package mcpserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"sketchgen/internal/config"
	"sketchgen/internal/generation"
	"sketchgen/internal/history"
	"sketchgen/internal/output"
	"sketchgen/internal/trigger"
)

// Server exposes generation activations as MCP tools. It owns one headless
// page, so activations through MCP follow the same placeholder/indicator
// lifecycle as the TUI.
type Server struct {
	mcpServer *mcp.Server
	trigger   *trigger.Trigger
	page      *trigger.Page
	history   *history.Log
	endpoint  string
	log       zerolog.Logger

	inflight sync.WaitGroup
}

// NewServer creates a new MCP server instance.
func NewServer(cfg config.Config, fetcher generation.Fetcher, log zerolog.Logger) (*Server, error) {
	page := trigger.NewPage(cfg.PlaceholderImage)
	ids := trigger.IDs{Control: cfg.ControlID, Surface: cfg.SurfaceID, Indicator: cfg.IndicatorID}
	handles, err := trigger.Resolve(page.Elements(trigger.DefaultIDs()), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve headless page: %w", err)
	}

	hist := history.New(cfg.HistoryCapacity)

	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	s := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		page:      page,
		history:   hist,
		endpoint:  cfg.EndpointURL(),
		log:       log,
		trigger: trigger.New(handles, fetcher, cfg.PlaceholderImage,
			trigger.WithLogger(log),
			trigger.WithSingleFlight(cfg.SingleFlight),
			trigger.WithObserver(hist.Record),
		),
	}

	s.registerTools()
	return s, nil
}

// GenerateImageArgs defines the input for generate_image tool.
type GenerateImageArgs struct{}

// GenerateImageResult defines the output for generate_image tool.
type GenerateImageResult struct {
	ImageURL    string `json:"imageUrl" jsonschema:"image reference now displayed (placeholder on failure)"`
	Placeholder bool   `json:"placeholder" jsonschema:"true when the activation fell back to the placeholder"`
	Kind        string `json:"kind" jsonschema:"success, missing_result, request_failure or skipped"`
	Error       string `json:"error,omitempty" jsonschema:"diagnostic detail for failures"`
	DurationMs  int64  `json:"durationMs" jsonschema:"request duration in milliseconds"`
	Sequence    uint64 `json:"sequence" jsonschema:"activation sequence number"`
}

// RecentActivationsArgs defines the input for recent_activations tool.
type RecentActivationsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of activations to return"`
}

// RecentActivationsResult wraps history results.
type RecentActivationsResult struct {
	Activations   []GenerateImageResult `json:"activations" jsonschema:"newest first"`
	Total         int                   `json:"total" jsonschema:"activations retained in history"`
	AvgDurationMs int64                 `json:"avgDurationMs" jsonschema:"average request duration"`
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_image",
		Description: "Request one image from the generation endpoint and return the image reference now on display. Failures return the placeholder reference with the failure kind.",
	}, s.handleGenerateImage)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_activations",
		Description: "List recent generate_image activations with their outcome, image reference and duration.",
	}, s.handleRecentActivations)
}

// handleGenerateImage runs one activation. Generation failures are reported
// in the result, not as tool errors.
func (s *Server) handleGenerateImage(ctx context.Context, _ *mcp.CallToolRequest, _ GenerateImageArgs) (*mcp.CallToolResult, GenerateImageResult, error) {
	s.inflight.Add(1)
	defer s.inflight.Done()

	payload := output.RunPipeline(ctx, s.trigger, s.history, s.endpoint, 5)
	return nil, toResult(payload.Outcome), nil
}

// handleRecentActivations reads the activation history.
func (s *Server) handleRecentActivations(ctx context.Context, _ *mcp.CallToolRequest, args RecentActivationsArgs) (*mcp.CallToolResult, RecentActivationsResult, error) {
	limit := args.Limit
	if limit == 0 {
		limit = 10
	}
	if limit < 0 {
		return nil, RecentActivationsResult{}, fmt.Errorf("invalid limit: %d", limit)
	}
	if limit > 100 {
		limit = 100
	}

	recent := s.history.Recent(limit)
	res := RecentActivationsResult{
		Activations: make([]GenerateImageResult, 0, len(recent)),
	}
	for _, o := range recent {
		res.Activations = append(res.Activations, toResult(o))
	}
	sum := s.history.Summarize()
	res.Total = sum.Total
	res.AvgDurationMs = sum.AvgDuration.Milliseconds()
	return nil, res, nil
}

func toResult(o trigger.Outcome) GenerateImageResult {
	return GenerateImageResult{
		ImageURL:    o.ImageRef,
		Placeholder: o.Placeholder(),
		Kind:        string(o.Kind),
		Error:       o.ErrDetail,
		DurationMs:  o.Duration.Milliseconds(),
		Sequence:    o.Seq,
	}
}

// Start starts the MCP server using stdio transport.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info().Str("endpoint", s.endpoint).Msg("starting sketchgen MCP server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves one session over t. Used with in-memory transports.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

// Close waits until every generate_image call in flight has settled, or ctx
// is done.
func (s *Server) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
