// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tfctl/stctl/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"stctl", "cp"},
			expected: []string{"stctl", "cp"},
		},
		{
			name:     "no duplicates",
			args:     []string{"stctl", "cp", "--output", "text", "--titles"},
			expected: []string{"stctl", "cp", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"stctl", "cp", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"stctl", "cp", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"stctl", "cp", "--titles", "--debug", "--titles"},
			expected: []string{"stctl", "cp", "--debug", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"stctl", "cp", "--output=json", "--titles", "--output=text"},
			expected: []string{"stctl", "cp", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"stctl", "cp", "--output=json", "--output", "text"},
			expected: []string{"stctl", "cp", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"stctl", "sync", "--account-name", "a", "--subscription", "foo", "--account-name", "b", "--subscription", "bar"},
			expected: []string{"stctl", "sync", "--account-name", "b", "--subscription", "bar"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"stctl", "cp", "@prod", "--output", "json", "--output", "text"},
			expected: []string{"stctl", "cp", "@prod", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"stctl", "cp", "-o", "json", "-o", "text"},
			expected: []string{"stctl", "cp", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"stctl", "cp", "--color", "--no-color"},
			expected: []string{"stctl", "cp", "--color", "--no-color"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"stctl", "cp", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"stctl", "cp", "--output", "c"},
		},
		{
			name:     "flag at end with no value treated as boolean",
			args:     []string{"stctl", "cp", "--titles", "--debug", "--titles"},
			expected: []string{"stctl", "cp", "--debug", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"stctl", "cp", "--alpha", "--beta", "--gamma"}
	result := deduplicateFlags(args)
	expected := []string{"stctl", "cp", "--alpha", "--beta", "--gamma"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// Positional args after flags should be preserved.
	args := []string{"stctl", "cp", "--output", "json", "/path", "--output", "text"}
	result := deduplicateFlags(args)
	expected := []string{"stctl", "cp", "/path", "--output", "text"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

// loadTestConfig points the config package at a temporary file and loads it.
func loadTestConfig(t *testing.T) {
	t.Helper()
	body := `cp:
  defaults:
    - --debug
  multi:
    - --output text
  many:
    - --debug
    - --output json
sync:
  defaults:
    - --cloud china
    - --subscription sub
`
	path := filepath.Join(t.TempDir(), "stctl.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STCTL_CFG_FILE", path)
	if _, err := config.Load(); err != nil {
		t.Fatal(err)
	}
}

func TestInjectConfigSet(t *testing.T) {
	loadTestConfig(t)

	tests := []struct {
		name      string
		args      []string
		key       string
		insertIdx int
		expected  []string
	}{
		{
			name:      "missing key returns args unchanged",
			args:      []string{"stctl", "cp", "--titles"},
			key:       "cp.none",
			insertIdx: 2,
			expected:  []string{"stctl", "cp", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"stctl", "cp", "--titles"},
			key:       "cp.defaults",
			insertIdx: 2,
			expected:  []string{"stctl", "cp", "--debug", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"stctl", "cp", "--titles"},
			key:       "cp.multi",
			insertIdx: 2,
			expected:  []string{"stctl", "cp", "--output", "text", "--titles"},
		},
		{
			name:      "multiple entries",
			args:      []string{"stctl", "cp"},
			key:       "cp.many",
			insertIdx: 2,
			expected:  []string{"stctl", "cp", "--debug", "--output", "json"},
		},
		{
			name:      "insert at index 3",
			args:      []string{"stctl", "cp", "--reveal", "--titles"},
			key:       "cp.defaults",
			insertIdx: 3,
			expected:  []string{"stctl", "cp", "--reveal", "--debug", "--titles"},
		},
		{
			name:      "complex multi-word entries",
			args:      []string{"stctl", "sync"},
			key:       "sync.defaults",
			insertIdx: 2,
			expected:  []string{"stctl", "sync", "--cloud", "china", "--subscription", "sub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := injectConfigSet(tt.args, tt.key, tt.insertIdx)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("injectConfigSet() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestProcessSetOnly(t *testing.T) {
	loadTestConfig(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "defaults injected without a set",
			args:     []string{"stctl", "cp", "--titles"},
			expected: []string{"stctl", "cp", "--debug", "--titles"},
		},
		{
			name:     "named set expanded in place",
			args:     []string{"stctl", "cp", "--titles", "@multi", "--reveal"},
			expected: []string{"stctl", "cp", "--titles", "--output", "text", "--reveal"},
		},
		{
			name:     "unknown set removed",
			args:     []string{"stctl", "cp", "@nope", "--titles"},
			expected: []string{"stctl", "cp", "--titles"},
		},
		{
			name:     "command only",
			args:     []string{"stctl"},
			expected: []string{"stctl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processSetOnly(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("processSetOnly(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestRedactArgs(t *testing.T) {
	args := []string{"stctl", "cp", "--account-key", "secret", "--source-sas=sv=1&sig=x", "--account-name", "acct"}
	expected := []string{"stctl", "cp", "--account-key", "REDACTED", "--source-sas=REDACTED", "--account-name", "acct"}

	if got := redactArgs(args); !reflect.DeepEqual(got, expected) {
		t.Errorf("redactArgs() = %v, want %v", got, expected)
	}
	if args[3] != "secret" {
		t.Errorf("redactArgs modified its input")
	}

	args = []string{"stctl", "cp", "--aws-access-key-id", "AKID", "--aws-secret-access-key", "s3cr3t"}
	expected = []string{"stctl", "cp", "--aws-access-key-id", "AKID", "--aws-secret-access-key", "REDACTED"}
	if got := redactArgs(args); !reflect.DeepEqual(got, expected) {
		t.Errorf("redactArgs() = %v, want %v", got, expected)
	}
}

func TestHandleNakedCommand(t *testing.T) {
	if got := handleNakedCommand([]string{"stctl"}); !reflect.DeepEqual(got, []string{"stctl", "--help"}) {
		t.Errorf("handleNakedCommand() = %v", got)
	}
	if got := handleNakedCommand([]string{"stctl", "cp"}); !reflect.DeepEqual(got, []string{"stctl", "cp"}) {
		t.Errorf("handleNakedCommand() = %v", got)
	}
}
