package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/alexanderramin/matchday/internal/contract"
	"github.com/alexanderramin/matchday/internal/service"
)

const flushTimeout = 2 * time.Second

// InitSentry configures the global Sentry client. An empty dsn leaves
// Sentry disabled and is not an error.
func InitSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
		Tags:             map[string]string{"service": "matchday"},
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	return nil
}

// Flush waits for buffered events. Safe to call when Sentry is disabled.
func Flush() {
	sentry.Flush(flushTimeout)
}

// SentryObserver reports pipeline failures that point at an operational
// problem: unreadable model output, an unreachable football API, or an
// unexpected error. Questions without a team are user input and are skipped.
type SentryObserver struct {
	hub *sentry.Hub
}

// NewSentryObserver reports to hub, or to the current hub when nil.
func NewSentryObserver(hub *sentry.Hub) *SentryObserver {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryObserver{hub: hub}
}

func (o *SentryObserver) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	if !reportable(event.Err) {
		return
	}
	o.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("use_case", event.Name)
		for _, key := range []string{"request_id", "source", "outcome"} {
			if v, ok := event.Fields[key]; ok {
				scope.SetTag(key, fmt.Sprint(v))
			}
		}
		o.hub.CaptureException(event.Err)
	})
}

func reportable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var failure *contract.Failure
	if errors.As(err, &failure) {
		switch failure.Code {
		case contract.FailureExtraction, contract.FailureNoData:
			return true
		default:
			return false
		}
	}
	return true
}
