// Package predictions submits health and lifestyle data for an AI risk
// assessment and renders whatever bundle comes back. The result is opaque to
// the client: displayed, never mutated, replaced wholesale on each run.
package predictions

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
)

type RiskAssessment struct {
	Condition          string   `json:"condition"`
	Likelihood         string   `json:"likelihood"`
	Percentage         int      `json:"percentage"`
	Factors            []string `json:"factors"`
	PreventiveMeasures []string `json:"preventiveMeasures"`
}

type Recommendations struct {
	Lifestyle  map[string][]string `json:"lifestyle"`
	Screenings []string            `json:"screenings"`
	NextSteps  []string            `json:"nextSteps"`
}

type Result struct {
	OverallHealthScore int              `json:"overallHealthScore"`
	RiskAssessments    []RiskAssessment `json:"riskAssessments"`
	PositiveFactors    []string         `json:"positiveFactors"`
	ImprovementAreas   []string         `json:"improvementAreas"`
	Recommendations    Recommendations  `json:"recommendations"`
	Disclaimer         string           `json:"disclaimer"`
}

type HistoryEntry struct {
	ID                 string    `json:"id"`
	OverallHealthScore int       `json:"overallHealthScore"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Service struct {
	api   gateway.Caller
	Form  *Form
	guard flight.Guard

	mu     sync.Mutex
	result *Result
}

func NewService(api gateway.Caller) *Service {
	return &Service{api: api, Form: NewForm()}
}

// Assess submits the full form and replaces the previous result. The form is
// left populated for follow-up edits.
func (s *Service) Assess(ctx context.Context) error {
	return s.guard.Do(func() error {
		env, err := s.api.Call(ctx, http.MethodPost, "/ai/predictions", s.Form.body())
		if err != nil {
			return err
		}

		var result Result
		if err := env.Decode(&result); err != nil {
			return err
		}

		s.mu.Lock()
		s.result = &result
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Service) Busy() bool {
	return s.guard.Loading()
}

func (s *Service) History(ctx context.Context) ([]HistoryEntry, error) {
	env, err := s.api.Call(ctx, http.MethodGet, "/ai/predictions/history", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Predictions []HistoryEntry `json:"predictions"`
	}
	if err := env.Decode(&payload); err == nil && payload.Predictions != nil {
		return payload.Predictions, nil
	}

	// Some backend revisions return the list directly under data.
	var entries []HistoryEntry
	if err := env.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
