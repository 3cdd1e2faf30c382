// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package dashboard

import (
	"testing"

	"github.com/davetashner/dashkit/internal/dataset"
)

// stubKind is a minimal Kind implementation for testing.
type stubKind struct {
	name string
}

func (s *stubKind) Name() string        { return s.name }
func (s *stubKind) Description() string { return "stub" }
func (s *stubKind) Columns() []string   { return nil }
func (s *stubKind) Build(spec Spec, _ *dataset.Table) (*Dashboard, error) {
	return &Dashboard{Name: spec.Name, Kind: s.name}, nil
}

func TestRegisterAndGet(t *testing.T) {
	resetForTesting()

	Register(&stubKind{name: "test-kind"})

	got := Get("test-kind")
	if got == nil {
		t.Fatal("Get returned nil for registered kind")
	}
	if got.Name() != "test-kind" {
		t.Errorf("Name() = %q, want %q", got.Name(), "test-kind")
	}
}

func TestGetUnknown(t *testing.T) {
	resetForTesting()

	if got := Get("nonexistent"); got != nil {
		t.Errorf("Get returned %v for unregistered kind, want nil", got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	resetForTesting()

	Register(&stubKind{name: "dup"})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(&stubKind{name: "dup"})
}

func TestListSorted(t *testing.T) {
	resetForTesting()

	Register(&stubKind{name: "beta"})
	Register(&stubKind{name: "alpha"})

	names := List()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("List() = %v, want [alpha beta]", names)
	}
}
