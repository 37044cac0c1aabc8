package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/MRaysa/medai-client/pkg/config"
)

func testApp() *fiber.App {
	return New(config.StubConfig{
		ReadTimeout:          5,
		WriteTimeout:         5,
		BodyLimit:            1 << 20,
		MaxRequestsPerMinute: 1000,
		Development:          true,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func TestChatEndpoint(t *testing.T) {
	app := testApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/ai/chat", map[string]string{"message": "I have a headache"})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("unexpected response: %d %v", status, body)
	}

	data, _ := body["data"].(map[string]interface{})
	if msg, _ := data["message"].(string); msg == "" {
		t.Error("expected a reply under data.message")
	}
}

func TestChatRequiresMessage(t *testing.T) {
	app := testApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/ai/chat", map[string]string{"message": "  "})
	if status != http.StatusBadRequest || body["success"] != false {
		t.Errorf("expected rejection, got %d %v", status, body)
	}
}

func TestSymptomCheckerUrgency(t *testing.T) {
	app := testApp()

	_, body := doJSON(t, app, http.MethodPost, "/api/ai/symptom-checker", map[string]interface{}{
		"symptoms": []string{"Fever", "Cough"},
		"duration": "1-3 days",
		"severity": "severe",
	})
	data, _ := body["data"].(map[string]interface{})
	if data["urgencyLevel"] != "urgent" {
		t.Errorf("expected urgent for severe symptoms, got %v", data["urgencyLevel"])
	}

	_, body = doJSON(t, app, http.MethodPost, "/api/ai/symptom-checker", map[string]interface{}{
		"symptoms": []string{"Chest Pain"},
		"severity": "mild",
	})
	data, _ = body["data"].(map[string]interface{})
	if data["urgencyLevel"] != "emergency" {
		t.Errorf("expected emergency for chest pain, got %v", data["urgencyLevel"])
	}
}

func TestClaimSubmitAndListRoundTrip(t *testing.T) {
	app := testApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/billing/insurance-claims", map[string]interface{}{
		"billId":            "bill-1",
		"insuranceProvider": "Acme Health",
		"policyNumber":      "POL-9",
		"claimAmount":       450.0,
	})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("submit failed: %d %v", status, body)
	}

	_, body = doJSON(t, app, http.MethodGet, "/api/billing/insurance-claims", nil)
	data, _ := body["data"].(map[string]interface{})
	claims, _ := data["claims"].([]interface{})
	if len(claims) != 1 {
		t.Fatalf("expected submitted claim in list, got %v", data)
	}
	claim, _ := claims[0].(map[string]interface{})
	if claim["status"] != "pending" || claim["policyNumber"] != "POL-9" {
		t.Errorf("unexpected claim %v", claim)
	}
}

func TestClaimSubmitValidatesRequiredFields(t *testing.T) {
	app := testApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/billing/insurance-claims", map[string]interface{}{
		"insuranceProvider": "Acme Health",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["message"] != "Please fill in all required fields" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestAlertsEndpointShape(t *testing.T) {
	app := testApp()

	_, body := doJSON(t, app, http.MethodGet, "/api/ai/alerts", nil)
	data, _ := body["data"].(map[string]interface{})
	if _, ok := data["alerts"].([]interface{}); !ok {
		t.Errorf("expected alerts array, got %v", data)
	}
	if _, ok := data["summary"].(map[string]interface{}); !ok {
		t.Errorf("expected summary object, got %v", data)
	}
}
