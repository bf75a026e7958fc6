// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS configuration and presigns S3 GET URLs so S3 objects
// can be used as copy sources.
package aws
