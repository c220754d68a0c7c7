package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	mid "github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/ai"
	oai "github.com/frido22/ai-paper-agent/pkg/ai/ollama"
	gai "github.com/frido22/ai-paper-agent/pkg/ai/openai"
	"github.com/frido22/ai-paper-agent/pkg/argument"
	"github.com/frido22/ai-paper-agent/pkg/logger"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.New(util.GetEnvString("REGISTRY_PATH", "data/papers.db"))
	if err != nil {
		logger.Fatal("Failed to open paper registry", "err", err)
	}
	defer reg.Close()

	app := &mid.App{
		Registry:      reg,
		AiClient:      NewReasoningClient(),
		ExtractConfig: ExtractConfigFromEnv(),
		APIKey:        util.GetEnv("API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(echomw.CORS())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("256M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// NewReasoningClient builds the reasoning client selected by AI_ADAPTER.
// The default adapter is OpenAI-compatible chat completions.
func NewReasoningClient() ai.ReasoningClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewReasoningOllamaClient(oai.NewReasoningOllamaClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 1)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewReasoningOpenAIClient(gai.NewReasoningOpenAIClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),
			EvalModel:       util.GetEnv("AI_EVAL_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}
}

// ExtractConfigFromEnv builds the extraction configuration, starting from
// defaults and applying environment overrides.
func ExtractConfigFromEnv() argument.Config {
	cfg := argument.DefaultConfig()
	cfg.PagesPerChunk = util.GetEnvInt("PAGES_PER_CHUNK", cfg.PagesPerChunk)
	cfg.MaxChunkTokens = util.GetEnvInt("MAX_CHUNK_TOKENS", cfg.MaxChunkTokens)
	cfg.MaxRetries = util.GetEnvInt("AI_MAX_RETRIES", cfg.MaxRetries)
	cfg.Model = util.GetEnv("AI_EXTRACT_MODEL")
	return cfg
}
