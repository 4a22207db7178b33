// internal/core/domain/target_test.go
package domain

import (
	"testing"

	"passivemap/internal/platform/errors"
	"passivemap/internal/testutil"
)

func TestNewTarget(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantRoot string
		wantKind TargetKind
	}{
		{"plain domain", "example.com", "example.com", TargetKindDomain},
		{"trimmed and lowercased", "  Example.COM ", "example.com", TargetKindDomain},
		{"trailing dot", "example.com.", "example.com", TargetKindDomain},
		{"subdomain", "api.test.example.com", "api.test.example.com", TargetKindDomain},
		{"ipv4", " 8.8.8.8 ", "8.8.8.8", TargetKindIP},
		{"ipv6 canonicalised", "2001:DB8:0::1", "2001:db8::1", TargetKindIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewTarget(tt.raw)
			testutil.AssertNoError(t, err, "valid target")
			testutil.AssertEqual(t, target.Root, tt.wantRoot, "root")
			testutil.AssertEqual(t, target.Kind, tt.wantKind, "kind")
			testutil.AssertEqual(t, target.String(), tt.wantRoot, "string form")
		})
	}
}

func TestNewTarget_Rejects(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\t\n"} {
			_, err := NewTarget(raw)
			testutil.AssertErrorIs(t, err, ErrEmptyTarget, "empty target")
			testutil.AssertTrue(t, errors.IsInvalidInput(err), "classified as invalid input")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range testutil.FixtureInvalidTargets {
			_, err := NewTarget(raw)
			testutil.AssertErrorIs(t, err, ErrInvalidTarget, raw)
			testutil.AssertTrue(t, errors.IsInvalidInput(err), raw)
		}
	})
}

func TestTarget_IsInScope(t *testing.T) {
	target, err := NewTarget("example.com")
	testutil.AssertNoError(t, err, "valid target")

	tests := []struct {
		name string
		want bool
	}{
		{"example.com", true},
		{"foo.example.com", true},
		{"a.b.example.com", true},
		{"FOO.Example.com.", true},
		{"notexample.com", false},
		{"example.com.evil.com", false},
		{"bar.evil.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, target.IsInScope(tt.name), tt.want, "in scope")
		})
	}
}
