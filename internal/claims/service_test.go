package claims

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MRaysa/medai-client/internal/gateway"
)

type fakeAPI struct {
	calls    int
	lastPath string
	lastBody interface{}
	respond  func(path string) (*gateway.Envelope, error)
}

func (f *fakeAPI) Call(ctx context.Context, method, path string, body interface{}) (*gateway.Envelope, error) {
	f.calls++
	f.lastPath = path
	f.lastBody = body
	return f.respond(path)
}

func dataEnvelope(t *testing.T, v interface{}) *gateway.Envelope {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return &gateway.Envelope{Success: true, Data: data}
}

func TestSubmitWithoutRequiredFieldsIssuesNoCall(t *testing.T) {
	api := &fakeAPI{respond: func(string) (*gateway.Envelope, error) {
		return &gateway.Envelope{Success: true}, nil
	}}
	svc := NewService(api)

	incomplete := []Submission{
		{},
		{InsuranceProvider: "Acme Health", PolicyNumber: "P-1", ClaimAmount: 100},
		{BillID: "b1", PolicyNumber: "P-1", ClaimAmount: 100},
		{BillID: "b1", InsuranceProvider: "Acme Health", ClaimAmount: 100},
		{BillID: "b1", InsuranceProvider: "Acme Health", PolicyNumber: "P-1"},
		{BillID: "  ", InsuranceProvider: "Acme Health", PolicyNumber: "P-1", ClaimAmount: 100},
	}

	for _, sub := range incomplete {
		if _, err := svc.Submit(context.Background(), sub); !errors.Is(err, ErrMissingFields) {
			t.Errorf("expected ErrMissingFields for %+v, got %v", sub, err)
		}
	}
	if api.calls != 0 {
		t.Errorf("incomplete submissions must not reach the network, got %d calls", api.calls)
	}
}

func TestSubmitSendsClaimAndPrepends(t *testing.T) {
	api := &fakeAPI{respond: func(path string) (*gateway.Envelope, error) {
		return dataEnvelope(t, Claim{ID: "c-new", Status: StatusPending, ClaimAmount: 150}), nil
	}}
	svc := NewService(api)

	claim, err := svc.Submit(context.Background(), Submission{
		BillID:            "b1",
		InsuranceProvider: "Acme Health",
		PolicyNumber:      "POL-42",
		ClaimAmount:       150,
		Description:       "X-ray visit",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if api.lastPath != "/billing/insurance-claims" {
		t.Errorf("expected claims endpoint, got %q", api.lastPath)
	}
	sub, ok := api.lastBody.(Submission)
	if !ok || sub.BillID != "b1" || sub.PolicyNumber != "POL-42" {
		t.Errorf("unexpected request body %v", api.lastBody)
	}

	if claim.ID != "c-new" || claim.Status != StatusPending {
		t.Errorf("unexpected claim %+v", claim)
	}
	if got := svc.Claims(); len(got) != 1 || got[0].ID != "c-new" {
		t.Errorf("expected the new claim at the head of the list, got %v", got)
	}
}

func TestRefreshLoadsClaims(t *testing.T) {
	api := &fakeAPI{respond: func(path string) (*gateway.Envelope, error) {
		return dataEnvelope(t, map[string]interface{}{
			"claims": []Claim{
				{ID: "c1", Status: StatusApproved, ApprovedAmount: 80},
				{ID: "c2", Status: StatusRejected, RejectionReason: "Out of network"},
			},
		}), nil
	}}
	svc := NewService(api)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	got := svc.Claims()
	if len(got) != 2 || got[1].RejectionReason != "Out of network" {
		t.Errorf("unexpected claims %v", got)
	}
}

func TestEligibleBillsExcludesPaid(t *testing.T) {
	api := &fakeAPI{respond: func(path string) (*gateway.Envelope, error) {
		return dataEnvelope(t, map[string]interface{}{
			"bills": []Bill{
				{ID: "b1", ServiceName: "MRI Scan", TotalAmount: 400},
				{ID: "b2", ServiceName: "Consultation", TotalAmount: 90, Paid: true},
			},
		}), nil
	}}
	svc := NewService(api)

	bills, err := svc.EligibleBills(context.Background())
	if err != nil {
		t.Fatalf("EligibleBills failed: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != "b1" {
		t.Errorf("expected only unpaid bills, got %v", bills)
	}
}

func TestSubmitSurfacesServerError(t *testing.T) {
	api := &fakeAPI{respond: func(path string) (*gateway.Envelope, error) {
		return &gateway.Envelope{Success: false}, &gateway.APIError{Message: "Policy not found"}
	}}
	svc := NewService(api)

	_, err := svc.Submit(context.Background(), Submission{
		BillID:            "b1",
		InsuranceProvider: "Acme Health",
		PolicyNumber:      "BAD",
		ClaimAmount:       10,
	})

	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Policy not found" {
		t.Errorf("expected server message, got %v", err)
	}
	if len(svc.Claims()) != 0 {
		t.Error("failed submission must not touch the local list")
	}
}
