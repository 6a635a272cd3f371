package menu

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/veenakrishnan01/menu-analyser/internal/analyses"
	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
	"github.com/veenakrishnan01/menu-analyser/internal/extract"
	"github.com/veenakrishnan01/menu-analyser/internal/llm"
	"github.com/veenakrishnan01/menu-analyser/internal/quota"
	"github.com/veenakrishnan01/menu-analyser/internal/validate"
)

const menuText = `APPETIZERS
Garlic Bread 4.95
Crispy Calamari 9.50
MAINS
Grilled Salmon 18.95
Margherita Pizza 12.50
Beef Burger with fries 14.50
DESSERTS
Tiramisu 6.95
Chocolate Lava Cake 7.50`

const modelJSON = `{
	"revenue_score": 81,
	"summary": "Strong core menu with upsell potential.",
	"quick_wins": ["Add descriptions", "Badge bestsellers", "Bundle combos"],
	"visual_appeal": ["Add photos", "Group sections", "More whitespace"],
	"strategic_pricing": ["Charm pricing", "Anchor premium items", "Premium section"],
	"menu_design": ["Shorter categories", "Descriptive names", "Signature block"]
}`

type fakeModel struct {
	response string
	err      error
	calls    int
}

func (f *fakeModel) Generate(_ context.Context, _ string, _ *llm.Attachment) (string, error) {
	f.calls++
	return f.response, f.err
}

type recordingNotifier struct {
	analyses int
}

func (n *recordingNotifier) UserRegistered(string, string, string) {}
func (n *recordingNotifier) AnalysisCompleted(string, string, int) { n.analyses++ }

type fixture struct {
	service  *Service
	model    *fakeModel
	quotas   *quota.Manager
	records  *analyses.InMemoryRepository
	notifier *recordingNotifier
}

func newFixture(model *fakeModel, dailyLimit int) *fixture {
	return newFixtureWith(model, dailyLimit, extract.Config{})
}

func newFixtureWithMaxBytes(model *fakeModel, maxBytes int64) *fixture {
	return newFixtureWith(model, 10, extract.Config{MaxFileBytes: maxBytes})
}

func newFixtureWith(model *fakeModel, dailyLimit int, intake extract.Config) *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	records := analyses.NewInMemoryRepository()
	quotas := quota.NewManager(quota.NewInMemoryRepository(), dailyLimit)
	notifier := &recordingNotifier{}

	service := NewService(
		extract.NewResolver(model, intake, log),
		validate.NewValidator(validate.Thresholds{}),
		analysis.NewEngine(model, log),
		quotas,
		records,
		notifier,
		log,
	)
	return &fixture{service: service, model: model, quotas: quotas, records: records, notifier: notifier}
}

func textSubmission() Submission {
	return Submission{
		Source:       extract.Source{Kind: extract.SourceText, Text: menuText},
		BusinessName: "Trattoria Test",
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeModel{response: modelJSON}, 10)

	result, err := f.service.Analyze(ctx, "user-1", "owner@example.com", textSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RevenueScore != 81 {
		t.Fatalf("expected model score 81, got %d", result.RevenueScore)
	}

	records, err := f.records.ListByUser(ctx, "user-1")
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one persisted record, got %d (err %v)", len(records), err)
	}
	record := records[0]
	if record.MenuSource != analyses.SourceText {
		t.Fatalf("wrong source kind: %s", record.MenuSource)
	}
	if record.RevenueScore != 81 {
		t.Fatalf("denormalized score mismatch: %d", record.RevenueScore)
	}

	status, err := f.quotas.Snapshot(ctx, "user-1")
	if err != nil || status.Used != 1 {
		t.Fatalf("expected quota used 1, got %+v (err %v)", status, err)
	}
	if f.notifier.analyses != 1 {
		t.Fatalf("expected one notification, got %d", f.notifier.analyses)
	}
}

func TestAnalyzeRejectedContentSpendsNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeModel{response: modelJSON}, 10)

	sub := Submission{Source: extract.Source{
		Kind: extract.SourceText,
		Text: "Lorem ipsum dolor sit amet " + strings.Repeat("filler ", 30),
	}}

	_, err := f.service.Analyze(ctx, "user-1", "owner@example.com", sub)

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected a rejection, got %v", err)
	}
	if rejected.Reason != validate.ReasonDummyContent {
		t.Fatalf("expected dummy-content reason, got %s", rejected.Reason)
	}

	if f.model.calls != 0 {
		t.Fatal("rejected content must not reach the model")
	}
	status, _ := f.quotas.Snapshot(ctx, "user-1")
	if status.Used != 0 {
		t.Fatalf("rejected content must not spend quota, used=%d", status.Used)
	}
	records, _ := f.records.ListByUser(ctx, "user-1")
	if len(records) != 0 {
		t.Fatal("rejected content must not be persisted")
	}
}

func TestAnalyzeDeniedWhenQuotaExhausted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeModel{response: modelJSON}, 1)

	if _, err := f.service.Analyze(ctx, "user-1", "owner@example.com", textSubmission()); err != nil {
		t.Fatalf("first analysis should pass, got %v", err)
	}

	_, err := f.service.Analyze(ctx, "user-1", "owner@example.com", textSubmission())
	if !errors.Is(err, quota.ErrDailyLimitReached) {
		t.Fatalf("expected ErrDailyLimitReached, got %v", err)
	}
	if f.model.calls != 1 {
		t.Fatalf("denied request must not call the model, calls=%d", f.model.calls)
	}
}

func TestAnalyzeModelBusyDoesNotSpendQuota(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeModel{err: llm.ErrRateLimited}, 10)

	_, err := f.service.Analyze(ctx, "user-1", "owner@example.com", textSubmission())
	if !errors.Is(err, analysis.ErrModelBusy) {
		t.Fatalf("expected ErrModelBusy, got %v", err)
	}

	status, _ := f.quotas.Snapshot(ctx, "user-1")
	if status.Used != 0 {
		t.Fatalf("busy model must not spend quota, used=%d", status.Used)
	}
	records, _ := f.records.ListByUser(ctx, "user-1")
	if len(records) != 0 {
		t.Fatal("busy model must not persist a record")
	}
}

func TestAnalyzeModelErrorFallsBackAndPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeModel{err: errors.New("upstream down")}, 10)

	result, err := f.service.Analyze(ctx, "user-1", "owner@example.com", textSubmission())
	if err != nil {
		t.Fatalf("fallback path must not fail, got %v", err)
	}
	if !result.Valid() {
		t.Fatalf("fallback result invalid: %+v", result)
	}

	status, _ := f.quotas.Snapshot(ctx, "user-1")
	if status.Used != 1 {
		t.Fatalf("fallback analysis still spends quota, used=%d", status.Used)
	}
	records, _ := f.records.ListByUser(ctx, "user-1")
	if len(records) != 1 {
		t.Fatalf("fallback analysis must be persisted, got %d records", len(records))
	}
}

func TestAnalyzeURLRecordKeepsURL(t *testing.T) {
	extracted := extract.ExtractedText{
		Content:          menuText,
		OriginKind:       extract.SourceURL,
		OriginDescriptor: "https://example.com/menu",
	}
	record := buildRecord("user-1", Submission{BusinessName: "Cafe"}, extracted, analysis.Result{RevenueScore: 77})
	if record.MenuSource != analyses.SourceURL {
		t.Fatalf("wrong source kind: %s", record.MenuSource)
	}
	if record.MenuURL != "https://example.com/menu" {
		t.Fatalf("url not recorded: %q", record.MenuURL)
	}
}
