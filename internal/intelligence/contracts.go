package intelligence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AnalysisType is the kind of analysis the question asks for.
type AnalysisType string

const (
	AnalysisRecentPerformance AnalysisType = "recent_performance"
	AnalysisPrediction        AnalysisType = "prediction"
	AnalysisHeadToHead        AnalysisType = "head_to_head"
	AnalysisBetting           AnalysisType = "betting"
)

var validAnalysisTypes = map[AnalysisType]bool{
	AnalysisRecentPerformance: true, AnalysisPrediction: true,
	AnalysisHeadToHead: true, AnalysisBetting: true,
}

// IsValidAnalysisType returns true if a is a known analysis type.
func IsValidAnalysisType(a AnalysisType) bool {
	return validAnalysisTypes[a]
}

// QuestionType is what the user wants to know.
type QuestionType string

const (
	QuestionGoalsScored     QuestionType = "goals_scored"
	QuestionMatchPrediction QuestionType = "match_prediction"
	QuestionBettingTips     QuestionType = "betting_tips"
	QuestionTeamForm        QuestionType = "team_form"
	QuestionGeneral         QuestionType = "general"
)

var validQuestionTypes = map[QuestionType]bool{
	QuestionGoalsScored: true, QuestionMatchPrediction: true, QuestionBettingTips: true,
	QuestionTeamForm: true, QuestionGeneral: true,
}

// IsValidQuestionType returns true if q is a known question type.
func IsValidQuestionType(q QuestionType) bool {
	return validQuestionTypes[q]
}

// DateLayout is the format of date_from and date_to.
const DateLayout = "2006-01-02"

// QueryParameters is the structured reading of a user question. It is
// produced once per question and not modified after extraction.
type QueryParameters struct {
	Teams        []string     `json:"teams"`
	LeagueID     *int         `json:"league_id"`
	Season       int          `json:"season"`
	DateFrom     *string      `json:"date_from"`
	DateTo       *string      `json:"date_to"`
	AnalysisType AnalysisType `json:"analysis_type"`
	QuestionType QuestionType `json:"question_type"`
}

// HasHeadToHead reports whether the question names exactly two teams.
func (p *QueryParameters) HasHeadToHead() bool {
	return len(p.Teams) == 2
}

// normalize trims team names, drops blanks and coerces unknown enum values
// and a missing season to their defaults. Dates that are blank, malformed or
// out of order are cleared; the returned notes describe what was dropped.
func (p *QueryParameters) normalize(defaultSeason int) []string {
	teams := make([]string, 0, len(p.Teams))
	for _, t := range p.Teams {
		if t = strings.TrimSpace(t); t != "" {
			teams = append(teams, t)
		}
	}
	p.Teams = teams

	if !IsValidAnalysisType(p.AnalysisType) {
		p.AnalysisType = AnalysisRecentPerformance
	}
	if !IsValidQuestionType(p.QuestionType) {
		p.QuestionType = QuestionGeneral
	}
	if p.Season <= 0 {
		p.Season = defaultSeason
	}
	if p.LeagueID != nil && *p.LeagueID <= 0 {
		p.LeagueID = nil
	}
	return p.normalizeDates()
}

func (p *QueryParameters) normalizeDates() []string {
	var notes []string
	from, note := normalizeDate("date_from", &p.DateFrom)
	if note != "" {
		notes = append(notes, note)
	}
	to, note := normalizeDate("date_to", &p.DateTo)
	if note != "" {
		notes = append(notes, note)
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		notes = append(notes, fmt.Sprintf("date_from %s is after date_to %s", *p.DateFrom, *p.DateTo))
		p.DateFrom, p.DateTo = nil, nil
	}
	return notes
}

// normalizeDate trims *v and clears it unless it is a YYYY-MM-DD date.
func normalizeDate(field string, v **string) (time.Time, string) {
	if *v == nil {
		return time.Time{}, ""
	}
	s := strings.TrimSpace(**v)
	if s == "" {
		*v = nil
		return time.Time{}, ""
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		*v = nil
		return time.Time{}, fmt.Sprintf("%s must be YYYY-MM-DD, got %q", field, s)
	}
	*v = &s
	return t, ""
}

// ErrNoTeamIdentified means the question names no team the pipeline can
// look up. The user has to rephrase.
var ErrNoTeamIdentified = errors.New("no team identified in the question")

// ExtractionError is returned when the model's reading of the question is
// unusable. Raw holds the model text, empty when the call itself failed.
type ExtractionError struct {
	Raw   string
	Cause error
}

func (e *ExtractionError) Error() string {
	return "could not interpret the question: " + e.Cause.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Cause }
