// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package credstore holds the credential forms stctl understands and the
// per-invocation Store that resolves an account's credential from explicit
// flags, a delegated login session, or a one-time management-plane key
// lookup.
package credstore
