// medaictl drives the MedAI portal client from the command line: chat turns,
// alert triage, health predictions, the symptom checker, wellness tips and
// insurance claims, against either the real portal or the local stub.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/alerts"
	"github.com/MRaysa/medai-client/internal/cache"
	"github.com/MRaysa/medai-client/internal/chat"
	"github.com/MRaysa/medai-client/internal/claims"
	"github.com/MRaysa/medai-client/internal/format"
	"github.com/MRaysa/medai-client/internal/gateway"
	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/internal/predictions"
	"github.com/MRaysa/medai-client/internal/symptoms"
	"github.com/MRaysa/medai-client/internal/wellness"
	"github.com/MRaysa/medai-client/pkg/config"
	appLogger "github.com/MRaysa/medai-client/pkg/logger"
)

const usage = `Usage: medaictl <command> [flags]

Commands:
  chat <message>       send a chat message and print the assistant's reply
  transcript           print the saved chat transcript
  alerts               list health alerts (-filter all|high|medium|low|<type>)
  dismiss <alert-id>   dismiss an alert
  predict              run a health prediction (-metric k=v, -lifestyle k=v)
  symptoms             analyze symptoms (-s <symptom>, -text, -duration, -severity, -age, -gender)
  wellness             show wellness tips and goals
  save-tip             save a wellness tip (-category, -tip)
  claims               list insurance claims
  submit-claim         submit a claim (-bill, -provider, -policy, -amount, -description)
  bills                list bills eligible for a claim
`

type app struct {
	cfg   *config.Config
	api   *gateway.Client
	store cache.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	metrics.Init()

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		appLogger.Fatal("Failed to open cache", zap.Error(err))
	}
	defer store.Close()

	a := &app{
		cfg:   cfg,
		api:   gateway.NewClient(cfg.Portal.BaseURL, cfg.Portal.AuthToken, cfg.Portal.Timeout()),
		store: store,
	}

	ctx := context.Background()
	command, args := os.Args[1], os.Args[2:]

	if err := a.run(ctx, command, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "chat":
		return a.chat(ctx, args)
	case "transcript":
		return a.transcript(ctx)
	case "alerts":
		return a.alerts(ctx, args)
	case "dismiss":
		return a.dismiss(ctx, args)
	case "predict":
		return a.predict(ctx, args)
	case "symptoms":
		return a.symptoms(ctx, args)
	case "wellness":
		return a.wellness(ctx)
	case "save-tip":
		return a.saveTip(ctx, args)
	case "claims":
		return a.claims(ctx)
	case "submit-claim":
		return a.submitClaim(ctx, args)
	case "bills":
		return a.bills(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) chat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("chat needs a message")
	}

	svc := chat.NewService(ctx, a.api, a.store, a.cfg.Portal.UserID)
	if err := svc.Send(ctx, strings.Join(args, " ")); err != nil {
		return err
	}

	msgs := svc.Messages()
	if len(msgs) == 0 {
		return nil
	}
	last := msgs[len(msgs)-1]
	if last.IsError {
		fmt.Printf("(error) %s\n", last.Content)
	} else {
		fmt.Println(last.Content)
	}
	return nil
}

func (a *app) transcript(ctx context.Context) error {
	svc := chat.NewService(ctx, a.api, a.store, a.cfg.Portal.UserID)
	for _, m := range svc.Messages() {
		marker := ""
		if m.IsError {
			marker = " (error)"
		}
		fmt.Printf("[%s] %s%s: %s\n", m.Timestamp.Format("15:04"), m.Role, marker, m.Content)
	}
	return nil
}

func (a *app) alerts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	filter := fs.String("filter", alerts.FilterAll, "priority or alert type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := alerts.NewService(ctx, a.api, a.store)
	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	sum := svc.Summary()
	fmt.Printf("%d alerts (%d high, %d medium, %d low)\n\n", sum.Total, sum.High, sum.Medium, sum.Low)

	now := time.Now()
	for _, al := range svc.Visible(*filter) {
		due := ""
		if al.DueDate != nil {
			due = " — due " + format.DueDateLabel(*al.DueDate, now)
		}
		fmt.Printf("[%s] %s (%s)%s\n    %s\n", al.Priority, al.Title, al.ID, due, al.Message)
		if al.Action != nil {
			fmt.Printf("    %s: %s\n", al.Action.Label, al.Action.Link)
		}
	}
	return nil
}

func (a *app) dismiss(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("dismiss needs exactly one alert id")
	}

	svc := alerts.NewService(ctx, a.api, a.store)
	if err := svc.Dismiss(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Alert dismissed")
	return nil
}

func (a *app) predict(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	var metricPairs, lifestylePairs keyValueList
	fs.Var(&metricPairs, "metric", "health metric as key=value (repeatable)")
	fs.Var(&lifestylePairs, "lifestyle", "lifestyle field as key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := predictions.NewService(a.api)
	for _, kv := range metricPairs {
		svc.Form.SetMetric(kv.key, kv.value)
	}
	for _, kv := range lifestylePairs {
		svc.Form.SetLifestyle(kv.key, kv.value)
	}

	if err := svc.Assess(ctx); err != nil {
		return err
	}

	res := svc.Result()
	if res == nil {
		return fmt.Errorf("no prediction returned")
	}

	fmt.Printf("Overall health score: %d/100\n\n", res.OverallHealthScore)
	for _, risk := range res.RiskAssessments {
		fmt.Printf("%s: %s likelihood (%d%%)\n", risk.Condition, risk.Likelihood, risk.Percentage)
	}
	printList("Positive factors", res.PositiveFactors)
	printList("Areas to improve", res.ImprovementAreas)
	printList("Recommended screenings", res.Recommendations.Screenings)
	printList("Next steps", res.Recommendations.NextSteps)
	if res.Disclaimer != "" {
		fmt.Printf("\n%s\n", res.Disclaimer)
	}
	return nil
}

func (a *app) symptoms(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("symptoms", flag.ExitOnError)
	var names stringList
	fs.Var(&names, "s", "a symptom (repeatable)")
	text := fs.String("text", "", "free-text description to extract symptoms from")
	duration := fs.String("duration", "", "how long the symptoms have lasted")
	severity := fs.String("severity", "", "mild, moderate or severe")
	age := fs.Int("age", 0, "patient age")
	gender := fs.String("gender", "", "patient gender")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := symptoms.NewService(a.api)
	for _, name := range names {
		svc.Form.AddSymptom(name)
	}
	if *text != "" {
		extracted, err := symptoms.ExtractSymptoms(*text)
		if err != nil {
			return err
		}
		for _, name := range extracted {
			svc.Form.AddSymptom(name)
		}
	}
	svc.Form.SetDuration(*duration)
	svc.Form.SetSeverity(*severity)
	svc.Form.SetAge(*age)
	svc.Form.SetGender(*gender)

	if err := svc.Analyze(ctx); err != nil {
		return err
	}

	an := svc.Analysis()
	if an == nil {
		return fmt.Errorf("no analysis returned")
	}

	fmt.Printf("Urgency: %s — %s\n\n%s\n", an.UrgencyLevel, an.UrgencyExplanation, an.Summary)
	for _, cond := range an.PossibleConditions {
		fmt.Printf("\n%s (%s likelihood)\n    %s\n", cond.Name, cond.Likelihood, cond.Description)
	}
	printList("Recommendations", an.Recommendations)
	printList("Self-care tips", an.SelfCareTips)
	if an.WhenToSeeDoctor != "" {
		fmt.Printf("\nSee a doctor: %s\n", an.WhenToSeeDoctor)
	}
	if an.Disclaimer != "" {
		fmt.Printf("\n%s\n", an.Disclaimer)
	}
	return nil
}

func (a *app) wellness(ctx context.Context) error {
	svc := wellness.NewService(ctx, a.api, a.store)
	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	b := svc.Bundle()
	if b == nil {
		return fmt.Errorf("no wellness content returned")
	}

	fmt.Printf("Tip of the day: %s\n", b.DailyTip)
	for name, cat := range b.Categories {
		printList(name, cat.Tips)
	}
	printList("Weekly goals", b.WeeklyGoals)
	if b.MotivationalQuote != "" {
		fmt.Printf("\n%q\n", b.MotivationalQuote)
	}
	if b.HealthFact != "" {
		fmt.Printf("Did you know? %s\n", b.HealthFact)
	}

	saved := svc.SavedTips()
	if len(saved) > 0 {
		fmt.Println("\nSaved tips:")
		for _, tip := range saved {
			fmt.Printf("  [%s] %s (%s)\n", tip.ID, tip.Tip, tip.Category)
		}
	}
	return nil
}

func (a *app) saveTip(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save-tip", flag.ExitOnError)
	category := fs.String("category", "", "tip category")
	tip := fs.String("tip", "", "tip text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tip == "" {
		return fmt.Errorf("save-tip needs -tip")
	}

	svc := wellness.NewService(ctx, a.api, a.store)
	saved := svc.SaveTip(ctx, *category, *tip)
	fmt.Printf("Saved tip %s\n", saved.ID)
	return nil
}

func (a *app) claims(ctx context.Context) error {
	svc := claims.NewService(a.api)
	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	list := svc.Claims()
	if len(list) == 0 {
		fmt.Println("No insurance claims")
		return nil
	}

	for _, cl := range list {
		fmt.Printf("%s  %s  %s  %s\n", cl.ID, cl.Status, format.Currency(cl.ClaimAmount), cl.InsuranceProvider)
		if cl.Status == claims.StatusApproved && cl.ApprovedAmount > 0 {
			fmt.Printf("    approved for %s\n", format.Currency(cl.ApprovedAmount))
		}
		if cl.RejectionReason != "" {
			fmt.Printf("    rejected: %s\n", cl.RejectionReason)
		}
	}
	return nil
}

func (a *app) submitClaim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit-claim", flag.ExitOnError)
	bill := fs.String("bill", "", "bill id")
	provider := fs.String("provider", "", "insurance provider")
	policy := fs.String("policy", "", "policy number")
	amount := fs.Float64("amount", 0, "claim amount")
	description := fs.String("description", "", "optional description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := claims.NewService(a.api)
	claim, err := svc.Submit(ctx, claims.Submission{
		BillID:            *bill,
		InsuranceProvider: *provider,
		PolicyNumber:      *policy,
		ClaimAmount:       *amount,
		Description:       *description,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Claim %s submitted (%s, %s)\n", claim.ID, claim.Status, format.Currency(claim.ClaimAmount))
	return nil
}

func (a *app) bills(ctx context.Context) error {
	svc := claims.NewService(a.api)
	bills, err := svc.EligibleBills(ctx)
	if err != nil {
		return err
	}

	if len(bills) == 0 {
		fmt.Println("No unpaid bills")
		return nil
	}
	for _, b := range bills {
		fmt.Printf("%s  %s  %s  %s\n", b.ID, b.ServiceName, b.DoctorName, format.Currency(b.TotalAmount))
	}
	return nil
}

func printList(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", heading)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type keyValue struct {
	key   string
	value string
}

// keyValueList collects repeatable key=value flags.
type keyValueList []keyValue

func (l *keyValueList) String() string {
	parts := make([]string, len(*l))
	for i, kv := range *l {
		parts[i] = kv.key + "=" + kv.value
	}
	return strings.Join(parts, ",")
}

func (l *keyValueList) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*l = append(*l, keyValue{key: key, value: value})
	return nil
}
