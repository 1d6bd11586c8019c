package contract

import (
	"strings"

	"github.com/alexanderramin/matchday/internal/intelligence"
)

type AskRequest struct {
	Question string
	Source   string // "cli", "shell" or "http"; used as a metrics label
}

func NewAskRequest(question, source string) AskRequest {
	return AskRequest{Question: strings.TrimSpace(question), Source: source}
}

type ResultKind string

const (
	ResultAnswer ResultKind = "answer"
	ResultError  ResultKind = "error"
)

type FailureCode string

const (
	FailureEmptyQuestion FailureCode = "empty_question"
	FailureExtraction    FailureCode = "extraction_failed"
	FailureNoTeam        FailureCode = "no_team_identified"
	FailureNoData        FailureCode = "no_data_collected"
)

// Failure is a terminal, user-visible outcome: the question has to be
// rephrased or retried later.
type Failure struct {
	Code    FailureCode                   `json:"code"`
	Message string                        `json:"error"`
	Hint    string                        `json:"hint,omitempty"`
	Raw     string                        `json:"raw,omitempty"`
	Cause   string                        `json:"exception,omitempty"`
	Params  *intelligence.QueryParameters `json:"attempted_params,omitempty"`
}

func (f *Failure) Error() string {
	return string(f.Code) + ": " + f.Message
}

// AskResult is either an answer or a failure, never both.
type AskResult struct {
	RequestID string                        `json:"request_id"`
	Kind      ResultKind                    `json:"kind"`
	Params    *intelligence.QueryParameters `json:"params,omitempty"`
	Answer    *intelligence.FinalAnswer     `json:"answer,omitempty"`
	Failure   *Failure                      `json:"failure,omitempty"`
}

func NewAnswerResult(requestID string, params *intelligence.QueryParameters, answer *intelligence.FinalAnswer) *AskResult {
	return &AskResult{RequestID: requestID, Kind: ResultAnswer, Params: params, Answer: answer}
}

func NewFailureResult(requestID string, params *intelligence.QueryParameters, failure *Failure) *AskResult {
	return &AskResult{RequestID: requestID, Kind: ResultError, Params: params, Failure: failure}
}

func (r *AskResult) IsAnswer() bool {
	return r.Kind == ResultAnswer && r.Answer != nil
}
