// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other stctl packages to avoid import cycles.

package version

import (
	"runtime/debug"
	"strings"
)

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// ApplicationID returns the identifier sent as telemetry to Azure management
// endpoints. The SDK rejects ids longer than 24 characters or containing
// spaces, so the version is trimmed to fit.
func ApplicationID() string {
	id := "stctl/" + strings.ReplaceAll(Version, " ", "")
	if len(id) > 24 {
		id = id[:24]
	}
	return id
}
