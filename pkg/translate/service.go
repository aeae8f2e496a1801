package translate

import (
	"context"

	"go.uber.org/zap"

	"github.com/sqlbridge/engine/pkg/llm"
	"github.com/sqlbridge/engine/pkg/logging"
	"github.com/sqlbridge/engine/pkg/models"
	"github.com/sqlbridge/engine/pkg/prompts"
	"github.com/sqlbridge/engine/pkg/retry"
)

// Service sequences the translation pipeline: build prompt, call the
// completion backend, parse the answer. It holds no per-request state.
type Service struct {
	completer llm.Completer
	builder   *prompts.Builder
	parser    *Parser
	retryCfg  *retry.Config
	logger    *zap.Logger
}

// NewService creates a translation service. A nil retryCfg applies the
// default bounded-backoff policy; pass a config with MaxRetries 0 to
// disable retrying.
func NewService(completer llm.Completer, builder *prompts.Builder, retryCfg *retry.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retryCfg == nil {
		retryCfg = retry.DefaultConfig()
	}
	return &Service{
		completer: completer,
		builder:   builder,
		parser:    NewParser(logger),
		retryCfg:  retryCfg,
		logger:    logger.Named("translate"),
	}
}

// Translate converts a natural-language question into a TranslationResult
// against the given schema document. Completion failures are returned as a
// failure result tagged as an LLM API error with an empty RawResponse;
// they are never propagated as errors.
func (s *Service) Translate(ctx context.Context, question, schemaDocument string) models.TranslationResult {
	pair := s.builder.Build(question, schemaDocument)

	answer, err := retry.DoWithResult(ctx, s.retryCfg, func() (string, error) {
		return s.completer.Complete(ctx, pair.Combined())
	})
	result := models.NewModelResult(answer, err)

	if !result.Succeeded() {
		s.logger.Warn("Completion call failed", zap.String("error", result.Error))
		return models.TranslationFailure("LLM API error: "+result.Error, "")
	}

	s.logger.Debug("Model answer received",
		zap.String("answer", logging.TruncateString(result.Answer, 500)))

	return s.parser.Parse(result.Answer)
}
