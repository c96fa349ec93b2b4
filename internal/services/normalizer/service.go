package normalizer

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeout bounds the external translator call when no timeout is
// configured. The normalizer must never block a move submission
// indefinitely.
const DefaultTimeout = 2 * time.Second

// Translator converts free-form text plus a position into a single
// candidate move token. Implementations are best-effort: any error means
// "no candidate" and the caller falls back to the cleaned raw text.
type Translator interface {
	Translate(ctx context.Context, text string, position string) (string, error)
}

// Service turns raw participant input into a candidate move token via a
// two-stage pipeline: a deterministic local cleanup that always runs,
// then an optional bounded external translation.
type Service struct {
	translator Translator // nil disables the external stage
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a normalizer. A nil translator skips the external stage.
func New(translator Translator, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		translator: translator,
		timeout:    timeout,
		logger:     logger.With(slog.String("component", "normalizer")),
	}
}

// Normalize produces the candidate token for raw input. Translator
// failure or timeout is absorbed: the result is then the locally cleaned
// input, which may still fail later as bad notation or an illegal move.
func (s *Service) Normalize(ctx context.Context, raw string, position string) string {
	cleaned := Clean(raw)

	if s.translator == nil {
		return cleaned
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	token, err := s.translator.Translate(ctx, cleaned, position)
	if err != nil {
		s.logger.Debug("translator unavailable, falling back to cleaned input",
			slog.String("input", cleaned),
			slog.String("error", err.Error()),
		)
		return cleaned
	}

	token = Clean(token)
	if token == "" {
		return cleaned
	}
	return token
}

// Clean applies the deterministic local cleanup: whitespace trimming and
// canonicalizing ASCII castling shorthand ("0-0", "o-o-o", "00") to the
// standard O-O / O-O-O spellings. It runs regardless of whether the
// external translator is used.
func Clean(raw string) string {
	token := strings.TrimSpace(raw)

	// Longest spelling first so "0-0-0" is not read as "0-0".
	castling := strings.ToUpper(strings.ReplaceAll(token, "0", "O"))
	switch castling {
	case "O-O-O", "OOO":
		return "O-O-O"
	case "O-O", "OO":
		return "O-O"
	}

	return token
}
