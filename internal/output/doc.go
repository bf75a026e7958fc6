// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders resolved copy endpoints as a table, JSON or YAML.
// Signatures in URIs are redacted unless explicitly revealed.
package output
