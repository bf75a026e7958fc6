// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for stctl's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/stctl.yaml or $HOME/.config/stctl.yaml
//   - Windows: %APPDATA%/stctl.yaml
//
// STCTL_CFG_FILE overrides the location. Keys may be namespaced by command, so
// "cp.account-name" wins over "account-name" while running "stctl cp".
package config
