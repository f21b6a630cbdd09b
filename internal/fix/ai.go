package fix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blackwell-systems/fixforge/internal/scan"
)

const (
	claudeAPIURL     = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion = "2023-06-01"
	defaultModel     = "claude-sonnet-4-20250514"
	maxTokens        = 1024
	apiTimeout       = 60 * time.Second
)

// fixSystemPrompt constrains the model to a single concrete rewrite.
const fixSystemPrompt = `You are an expert code reviewer. You are given one static-analysis finding: the line of code, the issue description, and its severity. Respond with a single concrete suggested fix for that line.

Rules:
- Respond with the fix only: either a corrected line of code or one short imperative sentence.
- Do not explain, apologize, or add surrounding prose.
- Never invent context beyond the line shown.`

// ClaudeModel proposes fixes through the Claude Messages API. The zero value
// is not usable; construct it with NewClaudeModel.
type ClaudeModel struct {
	apiKey string
	model  string
	client *http.Client
}

// NewClaudeModel builds a model client. An empty model name selects the
// default.
func NewClaudeModel(apiKey, model string) (*ClaudeModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for fix proposals")
	}
	if model == "" {
		model = defaultModel
	}
	return &ClaudeModel{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: apiTimeout},
	}, nil
}

// Propose sends one issue to the API and returns the proposed fix text.
func (c *ClaudeModel) Propose(ctx context.Context, issue scan.Issue) (string, error) {
	text, err := c.call(ctx, buildIssuePrompt(issue))
	if err != nil {
		return "", fmt.Errorf("proposing fix for line %d: %w", issue.LineNumber, err)
	}
	return stripFences(text), nil
}

// buildIssuePrompt renders a single finding as the user message.
func buildIssuePrompt(issue scan.Issue) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Issue: %s\n", issue.Description))
	sb.WriteString(fmt.Sprintf("Severity: %s\n", issue.Severity))
	if issue.CWE != "" {
		sb.WriteString(fmt.Sprintf("Weakness: %s\n", issue.CWE))
	}
	sb.WriteString(fmt.Sprintf("Line %d:\n%s\n", issue.LineNumber, issue.CodeSnippet))
	return sb.String()
}

// claudeAPIRequest is the request body for the Claude Messages API.
type claudeAPIRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []claudeAPIMessage `json:"messages"`
}

type claudeAPIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeAPIResponse struct {
	ID      string                  `json:"id"`
	Type    string                  `json:"type"`
	Content []claudeAPIContentBlock `json:"content"`
	Error   *claudeAPIError         `json:"error,omitempty"`
}

type claudeAPIContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// call sends one Messages API request and returns the joined text blocks.
func (c *ClaudeModel) call(ctx context.Context, userPrompt string) (string, error) {
	reqBody := claudeAPIRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    fixSystemPrompt,
		Messages: []claudeAPIMessage{
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var apiResp claudeAPIResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var textParts []string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			textParts = append(textParts, block.Text)
		}
	}
	if len(textParts) == 0 {
		return "", fmt.Errorf("no text content in API response")
	}
	return strings.Join(textParts, ""), nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
