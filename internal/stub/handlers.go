package stub

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/pkg/logger"
)

type aiHandler struct{}

func (h *aiHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "Message is required")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"message": chatReply(req.Message)},
	})
}

func (h *aiHandler) Alerts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": cannedAlerts()})
}

func (h *aiHandler) DismissAlert(c *fiber.Ctx) error {
	var req struct {
		AlertID string `json:"alertId"`
	}
	if err := c.BodyParser(&req); err != nil || req.AlertID == "" {
		return badRequest(c, "alertId is required")
	}

	logger.Debug("Alert dismissed", zap.String("alert_id", req.AlertID))
	return c.JSON(fiber.Map{"success": true, "message": "Alert dismissed"})
}

func (h *aiHandler) Predict(c *fiber.Ctx) error {
	var req struct {
		HealthData map[string]string `json:"healthData"`
		Lifestyle  map[string]string `json:"lifestyle"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.HealthData) == 0 {
		return badRequest(c, "Health data is required")
	}

	return c.JSON(fiber.Map{"success": true, "data": cannedPrediction()})
}

func (h *aiHandler) PredictionHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"predictions": []fiber.Map{
				{"id": "pred-1", "overallHealthScore": 74, "createdAt": time.Now().AddDate(0, -1, 0)},
			},
		},
	})
}

func (h *aiHandler) CheckSymptoms(c *fiber.Ctx) error {
	var req struct {
		Symptoms []string `json:"symptoms"`
		Severity string   `json:"severity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Symptoms) == 0 {
		return badRequest(c, "At least one symptom is required")
	}

	return c.JSON(fiber.Map{"success": true, "data": cannedAnalysis(req.Symptoms, req.Severity)})
}

func (h *aiHandler) SymptomHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"history": []fiber.Map{
				{"id": "check-1", "symptoms": []string{"Cough"}, "urgencyLevel": "mild", "createdAt": time.Now().AddDate(0, 0, -14)},
			},
		},
	})
}

func (h *aiHandler) Wellness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": cannedWellness()})
}

// billingHandler keeps submitted claims in memory so a list after a submit
// round-trips during development.
type billingHandler struct {
	mu     sync.Mutex
	claims []fiber.Map
}

func (h *billingHandler) ListClaims(c *fiber.Ctx) error {
	h.mu.Lock()
	claims := make([]fiber.Map, len(h.claims))
	copy(claims, h.claims)
	h.mu.Unlock()

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"claims": claims}})
}

func (h *billingHandler) SubmitClaim(c *fiber.Ctx) error {
	var req struct {
		BillID            string  `json:"billId"`
		InsuranceProvider string  `json:"insuranceProvider"`
		PolicyNumber      string  `json:"policyNumber"`
		ClaimAmount       float64 `json:"claimAmount"`
		Description       string  `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.BillID == "" || req.InsuranceProvider == "" || req.PolicyNumber == "" || req.ClaimAmount <= 0 {
		return badRequest(c, "Please fill in all required fields")
	}

	claim := fiber.Map{
		"id":                uuid.NewString(),
		"insuranceProvider": req.InsuranceProvider,
		"policyNumber":      req.PolicyNumber,
		"claimAmount":       req.ClaimAmount,
		"status":            "pending",
		"submittedAt":       time.Now(),
		"description":       req.Description,
	}

	h.mu.Lock()
	h.claims = append([]fiber.Map{claim}, h.claims...)
	h.mu.Unlock()

	logger.Info("Stub claim submitted", zap.String("bill_id", req.BillID))
	return c.JSON(fiber.Map{"success": true, "data": claim})
}

func (h *billingHandler) ListBills(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": cannedBills()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
