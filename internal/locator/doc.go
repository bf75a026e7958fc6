// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package locator parses a single location string, either a bare
// "container/path" or a full storage URL, into account, kind, container or
// share, object path, snapshot and embedded token.
package locator
