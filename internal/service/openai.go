package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/connectsphere/connectsphere-api/internal/model"
)

// ErrMalformedOutput means the model answered but its text could not be
// parsed into the expected shape. Callers degrade to a fallback payload.
var ErrMalformedOutput = errors.New("malformed model output")

// OpenAIClient wraps the OpenAI Chat Completions API
type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ── OpenAI API request/response types ─────────────────

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// complete sends a single user prompt and returns the model's text
func (c *OpenAIClient) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	reqBody := chatRequest{
		Model:     "gpt-4o",
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ── Profile summarization ─────────────────────────────

// SummarizeProfile asks the model for a prose summary of a student's
// onboarding data. The result backfills Profile.AISummary.
func (c *OpenAIClient) SummarizeProfile(ctx context.Context, p *model.Profile) (string, error) {
	prompt := fmt.Sprintf(
		"Analyze the following student profile and generate a summary:\nResume: %s\nActivities: %s\nHobbies: %s\nProjects: %s\nCareer Goals: %s\nIndustries: %s",
		p.ResumeText, p.Activities, p.Hobbies, p.Projects, p.CareerGoals, p.Industries,
	)

	summary, err := c.complete(ctx, prompt, 500)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// ── Matching ──────────────────────────────────────────

// Match is one professional the model recommends to a student
type Match struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// MatchedOpportunity is one listing the model recommends to a student
type MatchedOpportunity struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// MatchResult is the recommendation set returned to a student
type MatchResult struct {
	Matches       []Match              `json:"matches"`
	Opportunities []MatchedOpportunity `json:"opportunities"`
}

// RecommendMatches sends the full profile to the model and parses its
// answer. The model's text is untrusted: a response that does not decode
// into MatchResult comes back as ErrMalformedOutput, not a guess.
func (c *OpenAIClient) RecommendMatches(ctx context.Context, p *model.Profile) (*MatchResult, error) {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling profile: %w", err)
	}

	prompt := "Based on the following profile, recommend professionals and opportunities in JSON format:\n" + string(profileJSON)

	text, err := c.complete(ctx, prompt, 1000)
	if err != nil {
		return nil, err
	}

	text = stripCodeFences(strings.TrimSpace(text))

	var result MatchResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	return &result, nil
}

// ── Student recommendations ───────────────────────────

// StudentRecommendation is one student the model surfaces to a professional
type StudentRecommendation struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// RecommendStudents forwards every profile summary to the model and asks
// for a ranked list. Accepts either a bare JSON array or a {"students":
// [...]} wrapper, since the prompt does not pin the envelope down.
func (c *OpenAIClient) RecommendStudents(ctx context.Context, profiles []model.ProfileSummary) ([]StudentRecommendation, error) {
	profilesJSON, err := json.Marshal(profiles)
	if err != nil {
		return nil, fmt.Errorf("marshaling profiles: %w", err)
	}

	prompt := "Based on the following student profiles, recommend top students in JSON format:\n" + string(profilesJSON)

	text, err := c.complete(ctx, prompt, 1000)
	if err != nil {
		return nil, err
	}

	text = stripCodeFences(strings.TrimSpace(text))

	var students []StudentRecommendation
	if err := json.Unmarshal([]byte(text), &students); err == nil {
		return students, nil
	}

	var wrapped struct {
		Students []StudentRecommendation `json:"students"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Students != nil {
		return wrapped.Students, nil
	}

	return nil, fmt.Errorf("%w: not a student list", ErrMalformedOutput)
}

// ── Assistant ─────────────────────────────────────────

// Answer forwards a free-text query verbatim and returns the model's reply
func (c *OpenAIClient) Answer(ctx context.Context, query string) (string, error) {
	return c.complete(ctx, query, 500)
}

// ── Outreach email copy ───────────────────────────────

// DraftOutreachEmail generates personalized connection-request copy
func (c *OpenAIClient) DraftOutreachEmail(ctx context.Context, message, recipientName string) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a personalized outreach email based on the message: %s for recipient: %s",
		message, recipientName,
	)

	body, err := c.complete(ctx, prompt, 300)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

// stripCodeFences removes markdown ```json ... ``` wrappers
func stripCodeFences(text string) string {
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
