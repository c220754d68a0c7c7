package openai

import (
	"sync"

	"github.com/frido22/ai-paper-agent/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ReasoningOpenAIClient implements ai.ReasoningClient against an
// OpenAI-compatible chat completion endpoint. It tracks accumulated
// usage metrics across all calls.
//
// A ReasoningOpenAIClient should be created using NewReasoningOpenAIClient.
type ReasoningOpenAIClient struct {
	extractionModel string
	evalModel       string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewReasoningOpenAIClientParams defines the configuration parameters for
// creating a new ReasoningOpenAIClient.
//
// ExtractionModel is used for argument component/relation extraction.
// EvalModel is used for paper consistency scoring; it falls back to
// ExtractionModel when empty.
type NewReasoningOpenAIClientParams struct {
	ExtractionModel string
	EvalModel       string

	ChatURL string
	ChatKey string
}

// NewReasoningOpenAIClient creates and returns a new ReasoningOpenAIClient
// configured with the provided parameters.
//
// Example:
//
//	client := openai.NewReasoningOpenAIClient(openai.NewReasoningOpenAIClientParams{
//		ExtractionModel: "gpt-4o",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//	})
func NewReasoningOpenAIClient(
	params NewReasoningOpenAIClientParams,
) *ReasoningOpenAIClient {
	evalModel := params.EvalModel
	if evalModel == "" {
		evalModel = params.ExtractionModel
	}

	return &ReasoningOpenAIClient{
		extractionModel: params.ExtractionModel,
		evalModel:       evalModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

// Metrics returns the usage accumulated over the client's lifetime.
func (c *ReasoningOpenAIClient) Metrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}

func (c *ReasoningOpenAIClient) modifyMetrics(m ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics.InputTokens += m.InputTokens
	c.metrics.OutputTokens += m.OutputTokens
	c.metrics.TotalTokens += m.TotalTokens
	c.metrics.DurationMs += m.DurationMs
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
