package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/matchday/internal/contract"
	"github.com/alexanderramin/matchday/internal/domain"
	"github.com/alexanderramin/matchday/internal/intelligence"
	"github.com/alexanderramin/matchday/internal/repository"
)

// Hints attached to terminal failures.
const (
	HintExampleQuestions = "Try questions like: 'Como está o Flamengo?' or 'Flamengo vs Palmeiras'"
	HintNoData           = "invalid API key or request limit reached"
)

// ErrNoDataCollected means every gateway call for the question failed.
var ErrNoDataCollected = errors.New("could not collect data from the football API")

// AskDeps wires the pipeline stages. History, Log and Clock are optional.
type AskDeps struct {
	Extractor   intelligence.ExtractorService
	Collector   *Collector
	Synthesizer intelligence.SynthesizerService
	Composer    intelligence.ComposerService
	History     repository.QuestionRepo
	Log         logrus.FieldLogger
	Clock       func() time.Time
}

type askService struct {
	deps     AskDeps
	log      logrus.FieldLogger
	now      func() time.Time
	observer UseCaseObserver
}

func NewAskService(deps AskDeps, observers ...UseCaseObserver) AskService {
	log := deps.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &askService{
		deps:     deps,
		log:      log,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *askService) Ask(ctx context.Context, req contract.AskRequest) (result *contract.AskResult, err error) {
	requestID := uuid.NewString()
	startedAt := s.now().UTC()
	fields := map[string]any{
		"request_id": requestID,
		"source":     req.Source,
	}
	log := s.log.WithField("request_id", requestID)

	defer func() {
		event := UseCaseEvent{
			Name:      "ask",
			StartedAt: startedAt,
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil && result != nil && result.IsAnswer(),
			Err:       err,
			Fields:    fields,
		}
		if result != nil {
			fields["outcome"] = outcome(result)
			if result.Failure != nil {
				event.Err = result.Failure
			}
		}
		s.observer.ObserveUseCase(ctx, event)
		if result != nil {
			s.record(ctx, log, req, requestID, startedAt, outcome(result))
		}
	}()

	if req.Question == "" {
		return contract.NewFailureResult(requestID, nil, &contract.Failure{
			Code:    contract.FailureEmptyQuestion,
			Message: "the question is empty",
			Hint:    HintExampleQuestions,
		}), nil
	}

	params, err := s.deps.Extractor.Extract(ctx, req.Question)
	if err != nil {
		return s.extractionFailure(requestID, err)
	}
	fields["teams"] = len(params.Teams)
	log.WithFields(logrus.Fields{
		"teams":         params.Teams,
		"analysis_type": params.AnalysisType,
		"question_type": params.QuestionType,
	}).Debug("parameters extracted")

	collection := s.deps.Collector.Collect(ctx, params.Teams, params.LeagueID, params.Season)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if collection.AllFailed() {
		log.WithField("errors", collection.Errors()).Warn("no data collected")
		return contract.NewFailureResult(requestID, params, &contract.Failure{
			Code:    contract.FailureNoData,
			Message: ErrNoDataCollected.Error(),
			Hint:    HintNoData,
			Params:  params,
		}), nil
	}
	log.WithField("entries", len(collection.Entries)).Debug("data collected")

	insight, err := s.deps.Synthesizer.Synthesize(ctx, req.Question, collection, params)
	if err != nil {
		return nil, err
	}
	fields["insight_stage"] = string(insight.Stage)

	answer := s.deps.Composer.Compose(ctx, req.Question, insight, collection)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields["answer_stage"] = string(answer.Stage)

	return contract.NewAnswerResult(requestID, params, answer), nil
}

func (s *askService) extractionFailure(requestID string, err error) (*contract.AskResult, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if errors.Is(err, intelligence.ErrNoTeamIdentified) {
		return contract.NewFailureResult(requestID, nil, &contract.Failure{
			Code:    contract.FailureNoTeam,
			Message: "could not identify any team in the question; please mention at least one team",
			Hint:    HintExampleQuestions,
		}), nil
	}

	failure := &contract.Failure{
		Code:    contract.FailureExtraction,
		Message: "could not interpret the question",
		Cause:   err.Error(),
	}
	var extErr *intelligence.ExtractionError
	if errors.As(err, &extErr) {
		failure.Raw = extErr.Raw
		failure.Cause = extErr.Cause.Error()
	}
	return contract.NewFailureResult(requestID, nil, failure), nil
}

// record appends the question to the history. Failures are logged and
// otherwise ignored.
func (s *askService) record(ctx context.Context, log logrus.FieldLogger, req contract.AskRequest, requestID string, askedAt time.Time, outcome string) {
	if s.deps.History == nil || req.Question == "" {
		return
	}
	q := &domain.Question{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Text:      req.Question,
		Source:    req.Source,
		Outcome:   outcome,
		AskedAt:   askedAt,
	}
	if err := s.deps.History.Record(ctx, q); err != nil {
		log.WithError(err).Warn("recording question history")
	}
}

func outcome(r *contract.AskResult) string {
	if r.Failure != nil {
		return string(r.Failure.Code)
	}
	return string(r.Kind)
}

type historyService struct {
	repo repository.QuestionRepo
}

func NewHistoryService(repo repository.QuestionRepo) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]*domain.Question, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, limit)
}
