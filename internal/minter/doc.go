// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package minter produces short-lived, minimally scoped signed access tokens.
// Sources get read (plus list for a container or share); destinations get
// write, add and create (plus list).
package minter
