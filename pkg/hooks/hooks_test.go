// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kevherro/janus/pkg/hooks"
)

func TestRegisterDefaults(t *testing.T) {
	r := hooks.NewRegistry(nil)

	hook := &hooks.Hook{Name: "notify", Event: hooks.EventOnFailure, Command: "true", Enabled: true}
	r.Register(hook)

	if hook.ID == "" {
		t.Error("Register did not assign an ID")
	}
	if hook.Timeout != 30 {
		t.Errorf("Timeout = %d, want default 30", hook.Timeout)
	}
	if got := r.Hooks(hooks.EventOnFailure); len(got) != 1 {
		t.Errorf("Hooks() = %d, want 1", len(got))
	}
}

func TestTriggerRunsInOrder(t *testing.T) {
	r := hooks.NewRegistry(nil)
	out := filepath.Join(t.TempDir(), "order.txt")

	r.Register(&hooks.Hook{Name: "first", Event: hooks.EventPreLint, Enabled: true,
		Command: "echo first >> " + out})
	r.Register(&hooks.Hook{Name: "second", Event: hooks.EventPreLint, Enabled: true,
		Command: "echo second >> " + out})

	results := r.Trigger(context.Background(), hooks.EventPreLint)
	if len(results) != 2 {
		t.Fatalf("Trigger() = %d results, want 2", len(results))
	}
	for _, res := range results {
		if !res.Success {
			t.Errorf("hook %s failed: %s", res.Name, res.Error)
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading order file: %v", err)
	}
	if strings.Join(strings.Fields(string(data)), ",") != "first,second" {
		t.Errorf("execution order = %q, want first then second", data)
	}
}

func TestTriggerSkipsDisabled(t *testing.T) {
	r := hooks.NewRegistry(nil)

	r.Register(&hooks.Hook{Name: "off", Event: hooks.EventPostTest, Command: "true"})

	if results := r.Trigger(context.Background(), hooks.EventPostTest); len(results) != 0 {
		t.Errorf("Trigger() ran %d disabled hook(s)", len(results))
	}
}

func TestTriggerFailureDoesNotAbort(t *testing.T) {
	r := hooks.NewRegistry(nil)

	r.Register(&hooks.Hook{Name: "broken", Event: hooks.EventOnSuccess, Enabled: true, Command: "exit 1"})
	r.Register(&hooks.Hook{Name: "after", Event: hooks.EventOnSuccess, Enabled: true, Command: "true"})

	results := r.Trigger(context.Background(), hooks.EventOnSuccess)
	if len(results) != 2 {
		t.Fatalf("Trigger() = %d results, want 2 (failure must not stop later hooks)", len(results))
	}
	if results[0].Success {
		t.Error("broken hook reported success")
	}
	if results[0].Error == "" {
		t.Error("broken hook has no error detail")
	}
	if !results[1].Success {
		t.Error("hook after the failure did not run cleanly")
	}
}

func TestTriggerNoHooksForEvent(t *testing.T) {
	r := hooks.NewRegistry(nil)

	if results := r.Trigger(context.Background(), hooks.EventPreBuild); len(results) != 0 {
		t.Errorf("Trigger() = %d results for unregistered event", len(results))
	}
}
