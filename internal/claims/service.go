// Package claims lists insurance claims and submits new ones against unpaid
// bills. Required fields are checked locally before anything is sent.
package claims

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
)

// ErrMissingFields is the client-side rejection for an incomplete submission.
var ErrMissingFields = errors.New("Please fill in all required fields")

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

type Bill struct {
	ID          string  `json:"id"`
	ServiceName string  `json:"serviceName"`
	DoctorName  string  `json:"doctorName"`
	TotalAmount float64 `json:"totalAmount"`
	Paid        bool    `json:"paid"`
}

type Claim struct {
	ID                string     `json:"id"`
	InsuranceProvider string     `json:"insuranceProvider"`
	PolicyNumber      string     `json:"policyNumber"`
	ClaimAmount       float64    `json:"claimAmount"`
	Status            Status     `json:"status"`
	ApprovedAmount    float64    `json:"approvedAmount,omitempty"`
	SubmittedAt       *time.Time `json:"submittedAt,omitempty"`
	ProcessedAt       *time.Time `json:"processedAt,omitempty"`
	Bill              *Bill      `json:"bill,omitempty"`
	Description       string     `json:"description,omitempty"`
	RejectionReason   string     `json:"rejectionReason,omitempty"`
}

// Submission is the claim form: a selected unpaid bill, provider, policy
// number, and the amount claimed.
type Submission struct {
	BillID            string  `json:"billId"`
	InsuranceProvider string  `json:"insuranceProvider"`
	PolicyNumber      string  `json:"policyNumber"`
	ClaimAmount       float64 `json:"claimAmount"`
	Description       string  `json:"description,omitempty"`
}

func (s Submission) validate() error {
	if strings.TrimSpace(s.BillID) == "" ||
		strings.TrimSpace(s.InsuranceProvider) == "" ||
		strings.TrimSpace(s.PolicyNumber) == "" ||
		s.ClaimAmount <= 0 {
		return ErrMissingFields
	}
	return nil
}

type Service struct {
	api   gateway.Caller
	guard flight.Guard

	mu     sync.Mutex
	claims []Claim
}

func NewService(api gateway.Caller) *Service {
	return &Service{api: api}
}

func (s *Service) Refresh(ctx context.Context) error {
	return s.guard.Do(func() error {
		env, err := s.api.Call(ctx, http.MethodGet, "/billing/insurance-claims", nil)
		if err != nil {
			return err
		}

		var payload struct {
			Claims []Claim `json:"claims"`
		}
		if err := env.Decode(&payload); err != nil {
			return err
		}

		s.mu.Lock()
		s.claims = payload.Claims
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) Claims() []Claim {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Claim, len(s.claims))
	copy(out, s.claims)
	return out
}

func (s *Service) Busy() bool {
	return s.guard.Loading()
}

// EligibleBills returns the unpaid bills a claim can reference.
func (s *Service) EligibleBills(ctx context.Context) ([]Bill, error) {
	env, err := s.api.Call(ctx, http.MethodGet, "/billing/bills", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Bills []Bill `json:"bills"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}

	eligible := make([]Bill, 0, len(payload.Bills))
	for _, b := range payload.Bills {
		if !b.Paid {
			eligible = append(eligible, b)
		}
	}
	return eligible, nil
}

// Submit files a new claim. An incomplete submission fails with
// ErrMissingFields before any network call.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Claim, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}

	env, err := s.api.Call(ctx, http.MethodPost, "/billing/insurance-claims", sub)
	if err != nil {
		return nil, err
	}

	var claim Claim
	if err := env.Decode(&claim); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.claims = append([]Claim{claim}, s.claims...)
	s.mu.Unlock()

	return &claim, nil
}
