package views

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/canonical/scim-admin-ui/pkg/loader"
	gomock "github.com/golang/mock/gomock"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -build_flags=--mod=mod -package views -destination ./mock_interfaces.go -source=./interfaces.go

func newTestService(t *testing.T, ttl time.Duration) (*Service, *logging.MockLoggerInterface) {
	ctrl := gomock.NewController(t)

	mockLogger := logging.NewMockLoggerInterface(ctrl)
	mockMonitor := monitoring.NewMockMonitorInterface(ctrl)

	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	s := NewService(&Config{TTL: ttl}, trace.NewNoopTracerProvider().Tracer("views-test"), mockMonitor, mockLogger)

	return s, mockLogger
}

func TestNavigateExtractsRouteParams(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, time.Minute)

	v, err := s.CreateView(ctx)

	if err != nil {
		t.Fatalf("expected error to be nil got %v", err)
	}

	if _, err := v.Params("realm")(); !errors.Is(err, loader.ErrParameterUnavailable) {
		t.Fatalf("expected ErrParameterUnavailable before navigation got %v", err)
	}

	if _, err := s.Navigate(ctx, v.ID, "/realms/master/scim/service-provider?tab=bulk"); err != nil {
		t.Fatalf("expected error to be nil got %v", err)
	}

	params, err := v.Params("realm")()

	if err != nil {
		t.Fatalf("expected error to be nil got %v", err)
	}

	if !params.Equal(loader.ParameterSet{"realm": "master"}) {
		t.Fatalf("expected realm=master got %v", params)
	}

	snapshot := v.Snapshot()

	if snapshot.Pattern != "/realms/{realm}/scim/service-provider" {
		t.Fatalf("unexpected pattern %s", snapshot.Pattern)
	}

	if snapshot.Path != "/realms/master/scim/service-provider?tab=bulk" {
		t.Fatalf("unexpected path %s", snapshot.Path)
	}
}

func TestNavigateUnescapesParams(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, time.Minute)

	v, _ := s.CreateView(ctx)

	if _, err := s.Navigate(ctx, v.ID, "/realms/acme%2Fprod/scim"); err != nil {
		t.Fatalf("expected error to be nil got %v", err)
	}

	if realm, _ := v.Param("realm"); realm != "acme/prod" {
		t.Fatalf("expected realm acme/prod got %s", realm)
	}
}

func TestNavigateReplacesParams(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, time.Minute)

	v, _ := s.CreateView(ctx)

	s.Navigate(ctx, v.ID, "/realms/master/scim/resource-types/User")
	s.Navigate(ctx, v.ID, "/realms/demo")

	if !reflect.DeepEqual(v.Snapshot().Params, map[string]string{"realm": "demo"}) {
		t.Fatalf("expected only realm=demo got %v", v.Snapshot().Params)
	}

	if _, err := v.Params("realm", "id")(); !errors.Is(err, loader.ErrParameterUnavailable) {
		t.Fatalf("expected id to be unavailable got %v", err)
	}
}

func TestNavigateNoRoute(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, time.Minute)

	v, _ := s.CreateView(ctx)

	for _, path := range []string{"/clients", "realms/master", "/realms/master/users"} {
		if _, err := s.Navigate(ctx, v.ID, path); !errors.Is(err, ErrNoRoute) {
			t.Fatalf("expected ErrNoRoute for %s got %v", path, err)
		}
	}
}

func TestNavigateUnknownView(t *testing.T) {
	s, _ := newTestService(t, time.Minute)

	if _, err := s.Navigate(context.Background(), "missing", "/realms/master"); !errors.Is(err, ErrViewNotFound) {
		t.Fatalf("expected ErrViewNotFound got %v", err)
	}
}

func TestDeleteViewRunsCloseHooks(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, time.Minute)

	v, _ := s.CreateView(ctx)

	closed := 0
	v.OnClose(func() { closed++ })

	if err := s.DeleteView(ctx, v.ID); err != nil {
		t.Fatalf("expected error to be nil got %v", err)
	}

	if closed != 1 {
		t.Fatalf("expected close hook to run once got %v", closed)
	}

	if v.Context().Err() == nil {
		t.Fatalf("expected view context to be cancelled")
	}

	v.OnClose(func() { closed++ })

	if closed != 2 {
		t.Fatalf("expected hook registered after close to run straight away")
	}

	if err := s.DeleteView(ctx, v.ID); !errors.Is(err, ErrViewNotFound) {
		t.Fatalf("expected ErrViewNotFound got %v", err)
	}
}

func TestSweepRemovesIdleViews(t *testing.T) {
	ctx := context.Background()
	s, mockLogger := newTestService(t, time.Minute)

	now := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	idle, _ := s.CreateView(ctx)
	active, _ := s.CreateView(ctx)

	now = now.Add(45 * time.Second)
	s.GetView(ctx, active.ID)

	now = now.Add(30 * time.Second)

	mockLogger.EXPECT().Infof("swept %d idle views", 1).Times(1)

	if n := s.Sweep(ctx); n != 1 {
		t.Fatalf("expected 1 view swept got %v", n)
	}

	if _, err := s.GetView(ctx, idle.ID); !errors.Is(err, ErrViewNotFound) {
		t.Fatalf("expected idle view to be gone got %v", err)
	}

	if _, err := s.GetView(ctx, active.ID); err != nil {
		t.Fatalf("expected active view to survive got %v", err)
	}

	if idle.Context().Err() == nil {
		t.Fatalf("expected idle view context to be cancelled")
	}
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, 0)

	s.CreateView(ctx)

	if n := s.Sweep(ctx); n != 0 || s.Count() != 1 {
		t.Fatalf("expected no view swept got %v", n)
	}
}
