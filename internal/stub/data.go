package stub

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Canned portal payloads for local development. Shapes mirror what the real
// backend returns so the SDK can be exercised end to end without it.

func cannedAlerts() fiber.Map {
	due := func(days int) time.Time { return time.Now().AddDate(0, 0, days) }

	alerts := []fiber.Map{
		{
			"id":       "alert-appointment-1",
			"priority": "high",
			"type":     "appointment",
			"title":    "Upcoming appointment",
			"message":  "Cardiology follow-up with Dr. Rahman.",
			"dueDate":  due(1),
			"action":   fiber.Map{"label": "View appointment", "link": "/appointments"},
		},
		{
			"id":       "alert-lab-1",
			"priority": "medium",
			"type":     "lab_test",
			"title":    "Lab results ready",
			"message":  "Your blood panel results are available.",
			"action":   fiber.Map{"label": "View results", "link": "/lab-results"},
		},
		{
			"id":       "alert-billing-1",
			"priority": "high",
			"type":     "billing",
			"title":    "Payment due",
			"message":  "An invoice of $120.00 is due this week.",
			"dueDate":  due(5),
		},
		{
			"id":       "alert-wellness-1",
			"priority": "low",
			"type":     "wellness",
			"title":    "Hydration reminder",
			"message":  "You logged less water than usual this week.",
		},
	}

	return fiber.Map{
		"alerts":  alerts,
		"summary": fiber.Map{"total": 4, "high": 2, "medium": 1, "low": 1},
	}
}

func cannedWellness() fiber.Map {
	return fiber.Map{
		"dailyTip": "Take a 10 minute walk after lunch to steady your blood sugar.",
		"categories": fiber.Map{
			"nutrition": fiber.Map{
				"tips":          []string{"Add one serving of vegetables to dinner", "Swap soda for sparkling water"},
				"calorieTarget": 2000,
			},
			"exercise": fiber.Map{
				"tips":          []string{"Stretch for five minutes after waking", "Take the stairs today"},
				"weeklyMinutes": 150,
			},
			"mentalHealth": fiber.Map{
				"tips":     []string{"Write down three things that went well", "Step away from screens an hour before bed"},
				"practice": "gratitude journaling",
			},
			"sleep": fiber.Map{
				"tips":       []string{"Keep a fixed bedtime", "Keep the bedroom cool and dark"},
				"idealHours": 8,
			},
		},
		"weeklyGoals":       []string{"Walk 10,000 steps a day", "Drink 8 glasses of water daily"},
		"motivationalQuote": "Take care of your body. It's the only place you have to live.",
		"healthFact":        "Your heart beats about 100,000 times every day.",
	}
}

func cannedPrediction() fiber.Map {
	return fiber.Map{
		"overallHealthScore": 78,
		"riskAssessments": []fiber.Map{
			{
				"condition":          "Type 2 Diabetes",
				"likelihood":         "low",
				"percentage":         12,
				"factors":            []string{"family history"},
				"preventiveMeasures": []string{"Maintain a balanced diet", "Annual glucose screening"},
			},
			{
				"condition":          "Hypertension",
				"likelihood":         "moderate",
				"percentage":         28,
				"factors":            []string{"elevated resting heart rate", "work stress"},
				"preventiveMeasures": []string{"Reduce sodium intake", "Regular aerobic exercise"},
			},
		},
		"positiveFactors":  []string{"Non-smoker", "Regular exercise routine"},
		"improvementAreas": []string{"Sleep duration", "Stress management"},
		"recommendations": fiber.Map{
			"lifestyle": fiber.Map{
				"diet":     []string{"More leafy greens", "Limit processed sugar"},
				"exercise": []string{"150 minutes of moderate activity weekly"},
			},
			"screenings": []string{"Blood pressure check every 6 months"},
			"nextSteps":  []string{"Discuss results with your physician"},
		},
		"disclaimer": "This assessment is informational and not a medical diagnosis.",
	}
}

func cannedAnalysis(symptoms []string, severity string) fiber.Map {
	urgency := "mild"
	explanation := "Your symptoms look manageable with self-care."

	for _, s := range symptoms {
		if strings.EqualFold(s, "chest pain") || strings.EqualFold(s, "shortness of breath") {
			urgency = "emergency"
			explanation = "These symptoms can signal a serious condition. Seek care immediately."
		}
	}
	if urgency == "mild" && strings.EqualFold(severity, "severe") {
		urgency = "urgent"
		explanation = "Severe symptoms should be seen by a doctor within 24 hours."
	} else if urgency == "mild" && strings.EqualFold(severity, "moderate") {
		urgency = "moderate"
		explanation = "Monitor your symptoms and see a doctor if they persist."
	}

	return fiber.Map{
		"urgencyLevel":       urgency,
		"urgencyExplanation": explanation,
		"summary":            "Based on the reported symptoms, a common viral illness is the most likely cause.",
		"possibleConditions": []fiber.Map{
			{
				"name":           "Common Cold",
				"likelihood":     "high",
				"description":    "A viral infection of the upper respiratory tract.",
				"commonSymptoms": []string{"Cough", "Runny Nose", "Sore Throat"},
			},
			{
				"name":           "Seasonal Influenza",
				"likelihood":     "moderate",
				"description":    "A contagious respiratory illness caused by influenza viruses.",
				"commonSymptoms": []string{"Fever", "Body Aches", "Fatigue"},
			},
		},
		"recommendations": []string{"Rest and stay hydrated", "Monitor your temperature"},
		"selfCareTips":    []string{"Warm fluids can ease a sore throat", "Sleep with your head slightly elevated"},
		"whenToSeeDoctor": "See a doctor if symptoms worsen or last beyond a week.",
		"disclaimer":      "This check is informational and not a medical diagnosis.",
	}
}

func cannedBills() fiber.Map {
	return fiber.Map{
		"bills": []fiber.Map{
			{"id": "bill-1", "serviceName": "MRI Scan", "doctorName": "Dr. Chowdhury", "totalAmount": 450.00, "paid": false},
			{"id": "bill-2", "serviceName": "Consultation", "doctorName": "Dr. Rahman", "totalAmount": 90.00, "paid": false},
			{"id": "bill-3", "serviceName": "Blood Panel", "doctorName": "Dr. Akter", "totalAmount": 65.00, "paid": true},
		},
	}
}

func chatReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "headache"):
		return "**Headaches** are often caused by dehydration or strain.\n- Drink water\n- Rest in a quiet, dark room\nSee a doctor if it lasts more than two days."
	case strings.Contains(lower, "appointment"):
		return "You can book an appointment from the Appointments page. Would you like tips on preparing for your visit?"
	case strings.Contains(lower, "sleep"):
		return "Good sleep hygiene helps:\n1. Keep a fixed bedtime\n2. Avoid screens an hour before bed\n3. Keep the room cool and dark"
	default:
		return "Thanks for your message. I can help with symptoms, wellness tips, appointments, and your health records. What would you like to know?"
	}
}
