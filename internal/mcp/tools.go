// ABOUTME: MCP tool definitions and handlers for article and saved-list operations
// ABOUTME: Provides tools to fetch the aggregated stream and manage saved articles

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/threatwire/internal/models"
	"github.com/harper/threatwire/internal/timeutil"
)

// Type definitions for input/output structures

type FetchArticlesInput struct {
	Source *string `json:"source,omitempty"`
	Period *string `json:"period,omitempty"`
	Limit  *int    `json:"limit,omitempty"`
}

type ArticleOutput struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Saved         bool   `json:"saved"`
}

type FetchArticlesOutput struct {
	Articles []ArticleOutput `json:"articles"`
	Count    int             `json:"count"`
}

type ListSourcesOutput struct {
	Sources []string `json:"sources"`
	Count   int      `json:"count"`
}

type SavedArticleOutput struct {
	ArticleOutput
	SavedAt time.Time `json:"saved_at"`
}

type ListSavedOutput struct {
	Articles []SavedArticleOutput `json:"articles"`
	Count    int                  `json:"count"`
}

type SaveArticleInput struct {
	Ref string `json:"ref"`
}

type SaveArticleOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type RemoveSavedInput struct {
	ID string `json:"id"`
}

type RemoveSavedOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerTools() {
	s.registerFetchArticlesTool()
	s.registerListSourcesTool()
	s.registerListSavedTool()
	s.registerSaveArticleTool()
	s.registerRemoveSavedTool()
}

func (s *Server) registerFetchArticlesTool() {
	tool := mcp.Tool{
		Name:        "fetch_articles",
		Description: "Fetch the aggregated cybersecurity news stream from all configured sources. Articles are deduplicated and sorted newest first. Optionally filter by source name or period ('today', 'yesterday', 'week', 'month') and cap the result count. Each article carries a stable id usable with save_article.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Optional source name filter. Example: 'Krebs on Security'",
				},
				"period": map[string]interface{}{
					"type":        "string",
					"description": "Optional recency filter: 'today', 'yesterday', 'week', or 'month'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of articles to return. Example: 20",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleFetchArticles)
}

func (s *Server) registerListSourcesTool() {
	tool := mcp.Tool{
		Name:        "list_sources",
		Description: "List the configured news source names in aggregation order. The source list is fixed configuration; sources cannot be added or removed at runtime.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListSources)
}

func (s *Server) registerListSavedTool() {
	tool := mcp.Tool{
		Name:        "list_saved",
		Description: "List the articles the user saved for offline viewing, most recently saved first, with their saved_at timestamps.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListSaved)
}

func (s *Server) registerSaveArticleTool() {
	tool := mcp.Tool{
		Name:        "save_article",
		Description: "Save an article from the current aggregated stream for offline viewing. Identify it by id or by URL. Saving an already-saved article is a no-op, not an error.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ref": map[string]interface{}{
					"type":        "string",
					"description": "Article id or URL. Example: 'https://example.com/story' or 'The Hacker News-1a2b3c'",
				},
			},
			Required: []string{"ref"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleSaveArticle)
}

func (s *Server) registerRemoveSavedTool() {
	tool := mcp.Tool{
		Name:        "remove_saved",
		Description: "Remove an article from the saved list by id. Removing an id that is not saved returns success=false, not an error.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "The saved article id",
				},
			},
			Required: []string{"id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRemoveSaved)
}

func (s *Server) handleFetchArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input FetchArticlesInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	articles := s.aggregator.FetchAll(ctx)

	if input.Source != nil && *input.Source != "" {
		filtered := articles[:0]
		for _, a := range articles {
			if strings.EqualFold(a.Source, *input.Source) {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	if input.Period != nil && *input.Period != "" {
		cutoff, ok := timeutil.ParsePeriod(*input.Period)
		if !ok {
			return nil, fmt.Errorf("unknown period %q", *input.Period)
		}
		filtered := articles[:0]
		for _, a := range articles {
			if timeutil.InPeriod(a.PublishedAt, cutoff) {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	if input.Limit != nil && *input.Limit >= 0 && len(articles) > *input.Limit {
		articles = articles[:*input.Limit]
	}

	savedIDs, err := s.store.ContainsIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to read saved ids: %w", err)
	}

	output := FetchArticlesOutput{
		Articles: make([]ArticleOutput, len(articles)),
		Count:    len(articles),
	}
	for i, a := range articles {
		output.Articles[i] = articleOutput(a, savedIDs[a.ID])
	}
	return jsonResult(output)
}

func (s *Server) handleListSources(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := s.aggregator.SourceNames()
	return jsonResult(ListSourcesOutput{Sources: names, Count: len(names)})
}

func (s *Server) handleListSaved(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	saved, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list saved articles: %w", err)
	}

	output := ListSavedOutput{
		Articles: make([]SavedArticleOutput, len(saved)),
		Count:    len(saved),
	}
	for i, sa := range saved {
		output.Articles[i] = SavedArticleOutput{
			ArticleOutput: articleOutput(sa.Article, true),
			SavedAt:       sa.SavedAt,
		}
	}
	return jsonResult(output)
}

func (s *Server) handleSaveArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SaveArticleInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	articles := s.aggregator.FetchAll(ctx)
	for _, a := range articles {
		if a.ID == input.Ref || strings.EqualFold(a.URL, input.Ref) {
			saved, err := s.store.Save(a)
			if err != nil {
				return nil, fmt.Errorf("failed to save article: %w", err)
			}
			msg := "article saved"
			if !saved {
				msg = "article was already saved"
			}
			return jsonResult(SaveArticleOutput{Success: saved, Message: msg, ID: a.ID})
		}
	}

	return jsonResult(SaveArticleOutput{
		Success: false,
		Message: fmt.Sprintf("no article matching %q in the current stream", input.Ref),
	})
}

func (s *Server) handleRemoveSaved(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RemoveSavedInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	removed, err := s.store.Remove(input.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove saved article: %w", err)
	}
	msg := "article removed"
	if !removed {
		msg = fmt.Sprintf("no saved article with id %q", input.ID)
	}
	return jsonResult(RemoveSavedOutput{Success: removed, Message: msg})
}

func articleOutput(a models.Article, saved bool) ArticleOutput {
	return ArticleOutput{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		URL:           a.URL,
		Source:        a.Source,
		PublishedDate: a.Published,
		ImageURL:      a.ImageURL,
		Saved:         saved,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
