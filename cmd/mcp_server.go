package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/danielealbano/android-remote-control-mcp/internal/format"
	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	"github.com/danielealbano/android-remote-control-mcp/internal/resolve"
	"github.com/danielealbano/android-remote-control-mcp/internal/tree"
	"github.com/danielealbano/android-remote-control-mcp/internal/version"
)

// mcpServer wraps the MCP server with the device provider. providerMu
// serializes tool calls: every call re-snapshots the live tree, and the
// parallel walk used by resolution is not reentrant-safe against a
// concurrent request mutating its view of the tree.
type mcpServer struct {
	provider   *platform.Provider
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
	log        *zap.Logger
}

// newMCPServer creates and configures an MCP server with all device tools.
func newMCPServer(cfg ServeConfig, log *zap.Logger) (*mcpServer, error) {
	provider, err := platform.NewProvider(platform.Options{
		ADBPath: cfg.ADB.Path,
		Serial:  cfg.ADB.Serial,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		provider: provider,
		log:      log,
	}
	s.mcp = mcpserver.NewMCPServer(
		"android-remote-control-mcp",
		version.Version,
	)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg ServeConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Snapshot the device UI as compact tab-separated text. Node ids stay stable across re-reads of unchanged structure and can be passed to click, set_text, and scroll."),
		),
		s.handleSnapshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List the live windows with their metadata (window id, kind, package, title, layer, focus)."),
		),
		s.handleWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Search the UI for elements by field value across all windows."),
			mcp.WithString("field", mcp.Description("Field to match: text, content-desc, resource-id, or class (default text)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to search for")),
			mcp.WithBoolean("exact", mcp.Description("Require byte equality instead of case-insensitive substring containment")),
		),
		s.handleFind,
	)

	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Click a node by id from a previous snapshot."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node id")),
			mcp.WithBoolean("long", mcp.Description("Long-click instead of click")),
		),
		s.handleClick,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_text",
			mcp.WithDescription("Set the text of an editable node by id."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node id")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to set")),
		),
		s.handleSetText,
	)

	s.mcp.AddTool(
		mcp.NewTool("scroll",
			mcp.WithDescription("Scroll a scrollable node by id."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node id")),
			mcp.WithString("direction", mcp.Description("Scroll direction: up, down, left, or right (default down)")),
		),
		s.handleScroll,
	)

	s.mcp.AddTool(
		mcp.NewTool("wait_idle",
			mcp.WithDescription("Poll structural fingerprints until the UI stops changing or the timeout expires. Use after an action that triggers animations or loading."),
			mcp.WithNumber("interval", mcp.Description("Polling interval in milliseconds (default 500)")),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default 10)")),
			mcp.WithNumber("settle", mcp.Description("Consecutive identical polls required (default 2)")),
		),
		s.handleWaitIdle,
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the device screen as an image."),
			mcp.WithString("image_format", mcp.Description("png or jpg (default png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default 80)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default 0.5)")),
		),
		s.handleScreenshot,
	)
}

// resultToText serializes a result struct to YAML for an MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal result: %v", err)
	}
	return string(b)
}

func (s *mcpServer) handleSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	snap, err := tree.SnapshotAll(s.provider)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(format.Format(snap, readMetrics(s.provider))), nil
}

func (s *mcpServer) handleWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	snap, err := tree.SnapshotAll(s.provider)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(windowsResult(snap))), nil
}

func (s *mcpServer) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	fieldName := StringParam(params, "field", "text")
	value := StringParam(params, "value", "")
	exact := BoolParam(params, "exact", false)

	field, ok := model.ParseField(fieldName)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown field %q (use text, content-desc, resource-id, or class)", fieldName)), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	snap, err := tree.SnapshotAll(s.provider)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matches := model.Find(snap.Windows, field, value, exact)
	return mcp.NewToolResultText(resultToText(FindResult{
		Field:    fieldName,
		Value:    value,
		Exact:    exact,
		Degraded: snap.Degraded,
		Count:    len(matches),
		Matches:  matches,
	})), nil
}

// handleNodeAction resolves the node and performs the action under the
// provider lock, reporting the distinct failure kinds in the result text.
func (s *mcpServer) handleNodeAction(nodeID string, action platform.Action, args platform.PerformArgs) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result := ActionResult{OK: true, Action: string(action), NodeID: nodeID}
	if err := resolve.Do(s.provider, nodeID, action, args); err != nil {
		result.OK = false
		result.Error = err.Error()
		s.log.Warn("action failed",
			zap.String("action", string(action)),
			zap.String("node_id", nodeID),
			zap.Error(err))
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	action := platform.ActionClick
	if BoolParam(params, "long", false) {
		action = platform.ActionLongClick
	}
	return s.handleNodeAction(StringParam(params, "id", ""), action, platform.PerformArgs{})
}

func (s *mcpServer) handleSetText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.handleNodeAction(
		StringParam(params, "id", ""),
		platform.ActionSetText,
		platform.PerformArgs{Text: StringParam(params, "text", "")})
}

func (s *mcpServer) handleScroll(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	dir, err := platform.ParseScrollDirection(StringParam(params, "direction", "down"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.handleNodeAction(
		StringParam(params, "id", ""),
		platform.ActionScroll,
		platform.PerformArgs{Direction: dir})
}

func (s *mcpServer) handleWaitIdle(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	interval := time.Duration(IntParam(params, "interval", 500)) * time.Millisecond
	timeout := time.Duration(IntParam(params, "timeout", 10)) * time.Second
	settle := IntParam(params, "settle", 2)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	return mcp.NewToolResultText(resultToText(waitForIdle(s.provider, interval, timeout, settle))), nil
}

func (s *mcpServer) handleScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	imageFormat := StringParam(params, "image_format", "png")
	quality := IntParam(params, "quality", 80)
	scale := FloatParam(params, "scale", 0.5)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if s.provider.Screenshotter == nil {
		return mcp.NewToolResultError("screenshots not available on this backend"), nil
	}
	data, err := s.provider.Screenshotter.Capture(imageFormat, quality, scale)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mime := "image/png"
	if imageFormat == "jpg" || imageFormat == "jpeg" {
		mime = "image/jpeg"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: mime,
			},
		},
	}, nil
}
