// Command malibu-mcp is a stdio MCP server that exposes the audit API to
// MCP-capable clients by proxying requests to a running malibu server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// auditRequest mirrors the Malibu API request model.
type auditRequest struct {
	URL              string `json:"url"`
	Timeout          int    `json:"timeout,omitempty"`
	Stealth          bool   `json:"stealth,omitempty"`
	SkipInteractions bool   `json:"skip_interactions,omitempty"`
	SkipJourney      bool   `json:"skip_journey,omitempty"`
}

// auditResponse mirrors the Malibu API response model.
type auditResponse struct {
	Success bool            `json:"success"`
	Report  json.RawMessage `json:"report"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// mapRequest mirrors the Malibu map API request model.
type mapRequest struct {
	URL  string `json:"url"`
	Page string `json:"page,omitempty"`
}

// mapResponse mirrors the Malibu map API response model.
type mapResponse struct {
	Success  bool            `json:"success"`
	Findings json.RawMessage `json:"findings"`
	Markdown string          `json:"markdown"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("MALIBU_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("MALIBU_API_KEY")

	s := server.NewMCPServer(
		"malibu",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	auditPageTool := mcp.NewTool("audit_page",
		mcp.WithDescription("Run a full UX audit against a live page with a headless browser: load performance, DOM structure, accessibility score, interaction health, navigation and responsive layout checks. Returns the complete audit report as JSON."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to audit"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Navigation timeout in seconds (default: 30, max: 120)"),
		),
		mcp.WithBoolean("stealth",
			mcp.Description("Enable anti-bot-detection evasions before navigation"),
		),
		mcp.WithBoolean("skip_interactions",
			mcp.Description("Skip the button/input probe, leaving the page unmutated"),
		),
		mcp.WithBoolean("skip_journey",
			mcp.Description("Skip the navigation-link probe"),
		),
	)
	s.AddTool(auditPageTool, handleAuditPage(apiURL, apiKey))

	mapPageTool := mcp.NewTool("map_page",
		mcp.WithDescription("Map a page's UI landmarks from a static HTML snapshot: locates the expected elements, classifies each by its toolkit component and returns a nested-bullet markdown map plus structured findings."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the HTML snapshot to map"),
		),
		mcp.WithString("page",
			mcp.Description("Landmark plan to apply: 'dashboard' (default) or 'history'"),
			mcp.Enum("dashboard", "history"),
		),
	)
	s.AddTool(mapPageTool, handleMapPage(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the Malibu API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleAuditPage(apiURL, apiKey string) server.ToolHandlerFunc {
	// Audits hold a browser through navigation, probing and viewport
	// sweeps, so the client timeout is generous.
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := auditRequest{
			URL:              url,
			Timeout:          request.GetInt("timeout", 0),
			Stealth:          request.GetBool("stealth", false),
			SkipInteractions: request.GetBool("skip_interactions", false),
			SkipJourney:      request.GetBool("skip_journey", false),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/audit", reqBody)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var auditResp auditResponse
		if err := json.Unmarshal(respBody, &auditResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !auditResp.Success {
			errMsg := "audit failed"
			if auditResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", auditResp.Error.Code, auditResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(string(auditResp.Report)), nil
	}
}

func handleMapPage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := mapRequest{
			URL:  url,
			Page: request.GetString("page", ""),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/map", reqBody)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var mapResp mapResponse
		if err := json.Unmarshal(respBody, &mapResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !mapResp.Success {
			errMsg := "map failed"
			if mapResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", mapResp.Error.Code, mapResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		sb.WriteString(mapResp.Markdown)
		if len(mapResp.Findings) > 0 {
			sb.WriteString("\n\nFindings (JSON):\n")
			sb.Write(mapResp.Findings)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
