package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fixed request parameters for the completion call.
const (
	requestTimeout     = 30 * time.Second
	temperature        = 0.3
	maxTokens          = 2000
	systemMessageText  = "You are an assistant"
	yandexModelPattern = "gpt://%s/yandexgpt/latest"
)

// YandexClient calls the Yandex foundation-models completion endpoint.
type YandexClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	folderID   string
	logger     *zap.Logger
}

// YandexConfig holds configuration for creating a YandexClient.
type YandexConfig struct {
	Endpoint string // Completion endpoint URL
	APIKey   string // Required at call time
	FolderID string // Required at call time; also the model namespace
}

// NewYandexClient creates a client for the Yandex completion endpoint.
// Credential completeness is checked per call so a misconfigured client
// reports which values are missing instead of failing at construction.
func NewYandexClient(cfg *YandexConfig, logger *zap.Logger) *YandexClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YandexClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		folderID:   cfg.FolderID,
		logger:     logger.Named("llm"),
	}
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []message         `json:"messages"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message message `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// missing returns the names of required configuration values that are
// absent.
func (c *YandexClient) missing() []string {
	var missing []string
	if c.apiKey == "" {
		missing = append(missing, "YANDEX_API_KEY")
	}
	if c.folderID == "" {
		missing = append(missing, "YANDEX_FOLDER_ID")
	}
	return missing
}

// Complete sends the combined prompt as a single user message and returns
// the model's answer text verbatim. No network call is attempted when
// required configuration values are missing.
func (c *YandexClient) Complete(ctx context.Context, prompt string) (string, error) {
	if missing := c.missing(); len(missing) > 0 {
		return "", NewError(ErrorTypeConfig,
			fmt.Sprintf("missing environment variables: %s", strings.Join(missing, ", ")),
			false, nil)
	}

	body, err := json.Marshal(completionRequest{
		ModelURI: fmt.Sprintf(yandexModelPattern, c.folderID),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
		Messages: []message{
			{Role: "system", Text: systemMessageText},
			{Role: "user", Text: prompt},
		},
	})
	if err != nil {
		return "", NewError(ErrorTypeUnknown, "encode request", false, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", NewError(ErrorTypeUnknown, "build request", false, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("x-folder-id", c.folderID)

	c.logger.Debug("Completion request",
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newHTTPError(resp.StatusCode, errorDetail(respBody, resp.StatusCode))
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", NewError(ErrorTypeShape, "unexpected response format", false, err)
	}
	if len(parsed.Result.Alternatives) == 0 {
		return "", NewError(ErrorTypeShape, "unexpected response format: no alternatives in response", false, nil)
	}

	answer := parsed.Result.Alternatives[0].Message.Text
	c.logger.Info("Completion request completed",
		zap.Int("answer_len", len(answer)),
		zap.Duration("elapsed", time.Since(start)))

	return answer, nil
}

// errorDetail extracts a failure description from a non-200 response body:
// the body's error message field if parseable, else the raw body, else a
// generic HTTP-status message.
func errorDetail(body []byte, statusCode int) string {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	if len(bytes.TrimSpace(body)) > 0 {
		return string(body)
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// Ensure YandexClient implements Completer at compile time.
var _ Completer = (*YandexClient)(nil)
