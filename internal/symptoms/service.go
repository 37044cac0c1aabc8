// Package symptoms runs the AI symptom checker: a small form of selected
// symptoms plus context, one analysis request, and the returned assessment
// displayed as-is.
package symptoms

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
)

var ErrNoSymptoms = errors.New("select at least one symptom")

type UrgencyLevel string

const (
	UrgencyEmergency UrgencyLevel = "emergency"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyModerate  UrgencyLevel = "moderate"
	UrgencyMild      UrgencyLevel = "mild"
)

type Condition struct {
	Name           string   `json:"name"`
	Likelihood     string   `json:"likelihood"`
	Description    string   `json:"description"`
	CommonSymptoms []string `json:"commonSymptoms"`
}

type Analysis struct {
	UrgencyLevel       UrgencyLevel `json:"urgencyLevel"`
	UrgencyExplanation string       `json:"urgencyExplanation"`
	Summary            string       `json:"summary"`
	PossibleConditions []Condition  `json:"possibleConditions"`
	Recommendations    []string     `json:"recommendations"`
	SelfCareTips       []string     `json:"selfCareTips"`
	WhenToSeeDoctor    string       `json:"whenToSeeDoctor"`
	Disclaimer         string       `json:"disclaimer"`
}

type HistoryEntry struct {
	ID           string       `json:"id"`
	Symptoms     []string     `json:"symptoms"`
	UrgencyLevel UrgencyLevel `json:"urgencyLevel"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Form holds the checker's inputs. Age and gender are optional and are only
// serialized when the user has provided them.
type Form struct {
	mu       sync.Mutex
	symptoms []string
	duration string
	severity string
	age      int
	gender   string
}

func (f *Form) AddSymptom(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.symptoms {
		if s == name {
			return
		}
	}
	f.symptoms = append(f.symptoms, name)
}

func (f *Form) RemoveSymptom(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.symptoms {
		if s == name {
			f.symptoms = append(f.symptoms[:i], f.symptoms[i+1:]...)
			return
		}
	}
}

func (f *Form) Symptoms() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.symptoms))
	copy(out, f.symptoms)
	return out
}

func (f *Form) SetDuration(d string) { f.mu.Lock(); f.duration = d; f.mu.Unlock() }
func (f *Form) SetSeverity(s string) { f.mu.Lock(); f.severity = s; f.mu.Unlock() }
func (f *Form) SetAge(age int)       { f.mu.Lock(); f.age = age; f.mu.Unlock() }
func (f *Form) SetGender(g string)   { f.mu.Lock(); f.gender = g; f.mu.Unlock() }

func (f *Form) Reset() {
	f.mu.Lock()
	f.symptoms = nil
	f.duration = ""
	f.severity = ""
	f.age = 0
	f.gender = ""
	f.mu.Unlock()
}

func (f *Form) body() (map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.symptoms) == 0 {
		return nil, ErrNoSymptoms
	}

	symptoms := make([]string, len(f.symptoms))
	copy(symptoms, f.symptoms)

	body := map[string]interface{}{
		"symptoms": symptoms,
		"duration": f.duration,
		"severity": f.severity,
	}
	if f.age > 0 {
		body["age"] = f.age
	}
	if f.gender != "" {
		body["gender"] = f.gender
	}
	return body, nil
}

type Service struct {
	api   gateway.Caller
	Form  *Form
	guard flight.Guard

	mu       sync.Mutex
	analysis *Analysis
}

func NewService(api gateway.Caller) *Service {
	return &Service{api: api, Form: &Form{}}
}

// Analyze submits the form. A form without symptoms fails locally and issues
// no network call; the form stays populated either way.
func (s *Service) Analyze(ctx context.Context) error {
	return s.guard.Do(func() error {
		body, err := s.Form.body()
		if err != nil {
			return err
		}

		env, err := s.api.Call(ctx, http.MethodPost, "/ai/symptom-checker", body)
		if err != nil {
			return err
		}

		var analysis Analysis
		if err := env.Decode(&analysis); err != nil {
			return err
		}

		s.mu.Lock()
		s.analysis = &analysis
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) Analysis() *Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

func (s *Service) Busy() bool {
	return s.guard.Loading()
}

func (s *Service) History(ctx context.Context) ([]HistoryEntry, error) {
	env, err := s.api.Call(ctx, http.MethodGet, "/ai/symptom-checker/history", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		History []HistoryEntry `json:"history"`
	}
	if err := env.Decode(&payload); err == nil && payload.History != nil {
		return payload.History, nil
	}

	var entries []HistoryEntry
	if err := env.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
