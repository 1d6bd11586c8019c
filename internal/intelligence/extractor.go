package intelligence

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/matchday/internal/llm"
)

// DefaultLookbackDays is the window used for "last games" style questions.
const DefaultLookbackDays = 30

// ExtractorService turns a free-text question into QueryParameters.
type ExtractorService interface {
	Extract(ctx context.Context, question string) (*QueryParameters, error)
}

// ExtractorConfig fixes the values the prompt embeds. Now supplies the
// reference date for relative phrases. Log receives dropped-field warnings.
type ExtractorConfig struct {
	Season       int
	LookbackDays int
	Now          func() time.Time
	Log          logrus.FieldLogger
}

type extractorService struct {
	client llm.LLMClient
	cfg    ExtractorConfig
}

// NewExtractorService creates an ExtractorService backed by an LLM client.
func NewExtractorService(client llm.LLMClient, cfg ExtractorConfig) ExtractorService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultLookbackDays
	}
	if cfg.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Log = l
	}
	return &extractorService{client: client, cfg: cfg}
}

// Extract makes one model call. A failed call or output that is not JSON is
// an *ExtractionError; a question without teams is ErrNoTeamIdentified.
// Unusable optional fields are dropped rather than failing the question.
func (s *extractorService) Extract(ctx context.Context, question string) (*QueryParameters, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: buildExtractSystemPrompt(s.cfg.Season, s.cfg.Now(), s.cfg.LookbackDays),
		UserPrompt:   "Pergunta: " + question,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ExtractionError{Cause: err}
	}

	params, err := llm.ExtractJSON[QueryParameters](resp.Text, nil)
	if err != nil {
		return nil, &ExtractionError{Raw: resp.Text, Cause: err}
	}

	for _, note := range params.normalize(s.cfg.Season) {
		s.cfg.Log.WithField("field_issue", note).Warn("dropping extracted field")
	}
	if len(params.Teams) == 0 {
		return nil, ErrNoTeamIdentified
	}
	return &params, nil
}
