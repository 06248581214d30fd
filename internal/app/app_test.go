package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
	"github.com/thenoetrevino/tally/internal/testutil"
)

func TestNew(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)

	app := New(repo)

	if app == nil {
		t.Fatal("Expected app to be created, got nil")
	}
	if app.ProjectService == nil || app.TaskService == nil || app.ExpenditureService == nil ||
		app.TimeEntryService == nil || app.CommentService == nil {
		t.Error("Expected every service to be initialized")
	}
	if app.Engine().Mode() != models.CostTrackingExpenditures {
		t.Errorf("default mode = %q, want expenditures", app.Engine().Mode())
	}
	if app.ActorID() != 1 {
		t.Errorf("default actor = %d, want 1", app.ActorID())
	}
	if err := app.Close(); err != nil {
		t.Errorf("Expected Close to succeed, got error: %v", err)
	}
}

func TestOptionsReachServices(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	app := New(repo,
		WithCostTrackingMode(models.CostTrackingTaskCosts),
		WithDefaultCurrency("JPY"),
		WithClock(testutil.FixedClock(at)),
	)
	ctx := context.Background()

	budget := decimal.NewFromInt(100)
	p, err := app.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{Name: "P", Budget: &budget})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.Currency != "JPY" {
		t.Errorf("currency = %q, want JPY", p.Currency)
	}

	res, err := app.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{ProjectID: p.ID, Title: "T"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	done, err := app.TaskService.MarkComplete(ctx, res.Task.ID)
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if !done.Task.CompletedAt.Equal(at) {
		t.Errorf("completed_at = %v, want %v", done.Task.CompletedAt, at)
	}
	if done.Project.CostTrackingMode != models.CostTrackingTaskCosts {
		t.Errorf("metrics mode = %q, want task_costs", done.Project.CostTrackingMode)
	}
	if !app.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", app.Now(), at)
	}
}

func TestOpen(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "tally.db")
	cfg.Defaults.ActorID = 9

	app, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.ActorID() != 9 {
		t.Errorf("actor = %d, want 9", app.ActorID())
	}
	if _, err := app.ProjectService.ListProjects(context.Background()); err != nil {
		t.Errorf("ListProjects on a fresh database failed: %v", err)
	}
}

func TestNewRelayDrainsAppEvents(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	app := New(repo)
	ctx := context.Background()

	if _, err := app.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{Name: "P"}); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	var got []events.Type
	sink := events.FuncSink(func(_ context.Context, ev events.Event) error {
		got = append(got, ev.Type)
		return nil
	})

	r := app.NewRelay(config.Default().Relay, sink, prometheus.NewRegistry())
	stats, err := r.DrainOnce(ctx)
	if err != nil {
		t.Fatalf("DrainOnce failed: %v", err)
	}
	if stats.Delivered != 1 || len(got) != 1 || got[0] != events.ProjectCreated {
		t.Errorf("delivered %v (stats %+v), want one project.created", got, stats)
	}
}

func TestRelayConfig(t *testing.T) {
	c := config.Default().Relay
	c.BatchSize = 7
	c.Breaker.ConsecutiveFailures = 9

	rc := RelayConfig(c)
	if rc.BatchSize != 7 || rc.Breaker.ConsecutiveFailures != 9 || rc.PollInterval != c.PollInterval {
		t.Errorf("RelayConfig() = %+v", rc)
	}
}
