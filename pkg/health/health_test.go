// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package health

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

func staticCheck(status Status) CheckFunc {
	return func(ctx context.Context) CheckResult {
		return CheckResult{Status: status}
	}
}

func TestRegisterCheck(t *testing.T) {
	checker := NewChecker()
	checker.RegisterCheck("b", staticCheck(StatusHealthy))
	checker.RegisterCheck("a", staticCheck(StatusHealthy))
	checker.RegisterCheck("nil", nil)

	names := checker.CheckNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}

	checker.RegisterCheck("a", staticCheck(StatusDegraded))
	if got := len(checker.CheckNames()); got != 2 {
		t.Errorf("expected replacement to keep 2 checks, got %d", got)
	}

	checker.UnregisterCheck("a")
	checker.UnregisterCheck("missing")
	if got := checker.CheckNames(); len(got) != 1 || got[0] != "b" {
		t.Errorf("expected [b], got %v", got)
	}
}

func TestLive(t *testing.T) {
	result := NewChecker().Live(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", result.Status)
	}
	if result.Name != "liveness" {
		t.Errorf("expected name liveness, got %s", result.Name)
	}
}

func TestReady(t *testing.T) {
	checker := NewChecker()

	results := checker.Ready(context.Background())
	if len(results) != 1 || results[0].Name != "default" || results[0].Status != StatusHealthy {
		t.Errorf("expected default healthy result, got %+v", results)
	}

	checker.RegisterCheck("zeta", staticCheck(StatusDegraded))
	checker.RegisterCheck("alpha", func(ctx context.Context) CheckResult {
		return CheckResult{Name: "custom", Status: StatusHealthy}
	})

	results = checker.Ready(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "custom" {
		t.Errorf("expected explicit name to be kept, got %s", results[0].Name)
	}
	if results[1].Name != "zeta" {
		t.Errorf("expected registered name to fill in, got %s", results[1].Name)
	}
	if checker.IsHealthy(context.Background()) {
		t.Error("expected degraded check to make the service not healthy")
	}
}

func TestStartup(t *testing.T) {
	checker := NewChecker()

	if result := checker.Startup(context.Background()); result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy before MarkStarted, got %s", result.Status)
	}

	checker.MarkStarted()
	if !checker.IsStarted() {
		t.Error("expected IsStarted after MarkStarted")
	}
	if result := checker.Startup(context.Background()); result.Status != StatusHealthy {
		t.Errorf("expected healthy after MarkStarted, got %s", result.Status)
	}

	checker.MarkNotStarted()
	if checker.IsStarted() {
		t.Error("expected IsStarted to be false after MarkNotStarted")
	}
	if checker.Uptime() < 0 {
		t.Error("uptime should not be negative")
	}
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]CheckResult, len(tt.statuses))
			for i, status := range tt.statuses {
				results[i] = CheckResult{Status: status}
			}
			if got := AggregateStatus(results); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCheckErrorHandling(t *testing.T) {
	checker := NewChecker()
	checker.RegisterCheck("failing", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUnhealthy, Error: errors.New("boom").Error()}
	})

	results := checker.Ready(context.Background())
	if results[0].Error != "boom" {
		t.Errorf("expected error to propagate, got %q", results[0].Error)
	}
	if checker.IsHealthy(context.Background()) {
		t.Error("expected failing check to make the service unhealthy")
	}
}

func TestConcurrency(t *testing.T) {
	checker := NewChecker()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			checker.RegisterCheck("check", staticCheck(StatusHealthy))
			checker.MarkStarted()
		}()
		go func() {
			defer wg.Done()
			checker.Ready(context.Background())
			checker.Startup(context.Background())
		}()
	}
	wg.Wait()
}

func TestDictionaryCheck(t *testing.T) {
	result := DictionaryCheck()(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("expected healthy dictionary, got %s: %s", result.Status, result.Error)
	}
	if result.Name != "dictionary" {
		t.Errorf("expected name dictionary, got %s", result.Name)
	}
}

func TestSchemeCheck(t *testing.T) {
	for _, name := range shamir.SchemeNames() {
		t.Run(name, func(t *testing.T) {
			scheme, err := shamir.NewScheme(name)
			if err != nil {
				t.Fatal(err)
			}
			result := SchemeCheck(scheme)(context.Background())
			if result.Status != StatusHealthy {
				t.Errorf("expected healthy, got %s: %s", result.Status, result.Error)
			}
			if result.Name != "scheme:"+name {
				t.Errorf("unexpected check name %s", result.Name)
			}
		})
	}
}

type brokenScheme struct{}

func (brokenScheme) Name() string { return "broken" }

func (brokenScheme) Split(secret []byte, cfg shamir39.SplitConfig) ([]*shamir.Share, error) {
	return nil, errors.New("no randomness")
}

func (brokenScheme) Combine(shares []*shamir.Share) ([]byte, error) {
	return nil, errors.New("unreachable")
}

func TestSchemeCheckFailure(t *testing.T) {
	result := SchemeCheck(brokenScheme{})(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", result.Status)
	}
	if result.Error != "split failed: no randomness" {
		t.Errorf("unexpected error %q", result.Error)
	}
}
