// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/stctl/internal/cacheutil"
	"github.com/tfctl/stctl/internal/command"
	"github.com/tfctl/stctl/internal/config"
	"github.com/tfctl/stctl/internal/log"
	"github.com/tfctl/stctl/internal/version"
)

var ctx = context.Background()

// defaultCacheHours is the cache.clean fallback.
const defaultCacheHours = 24

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)
		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	hours, _ := config.GetInt("cache.clean", defaultCacheHours)
	if err := cacheutil.Purge(hours); err != nil {
		log.Debugf("cache purge err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", redactArgs(args))

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument in place with the flags configured
// under "<command>.<set>". Without an @set, "<command>.defaults" is injected
// right after the command.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			removeIdx := idx + i
			set := a[1:]
			args = append(args[:removeIdx], args[removeIdx+1:]...)
			return injectConfigSet(args, args[1]+"."+set, removeIdx)
		}
	}

	return injectConfigSet(args, args[1]+".defaults", idx)
}

// injectConfigSet splits each entry of the string slice at key on whitespace
// and inserts the result at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil || len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	if insertIdx > len(args) {
		insertIdx = len(args)
	}
	tail := append([]string{}, args[insertIdx:]...)
	return append(append(args[:insertIdx], expanded...), tail...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins. A flag without "=" consumes the next token as its value unless
// that token is itself a flag. args[0] and args[1] are never touched.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		key    string
		tokens []string
	}

	var groups []group
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		g := group{key: name, tokens: []string{a}}
		if !hasValue && i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
			g.tokens = append(g.tokens, rest[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.key != "" && last[g.key] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// secretFlags carry values that must not reach the debug log.
var secretFlags = map[string]bool{
	"--account-key":              true,
	"--aws-secret-access-key":    true,
	"--aws-session-token":        true,
	"--connection-string":        true,
	"--sas-token":                true,
	"--source-account-key":       true,
	"--source-connection-string": true,
	"--source-sas":               true,
}

// redactArgs masks the values of secretFlags.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out); i++ {
		name, _, hasValue := strings.Cut(out[i], "=")
		if !secretFlags[name] {
			continue
		}
		if hasValue {
			out[i] = name + "=REDACTED"
		} else if i+1 < len(out) {
			out[i+1] = "REDACTED"
			i++
		}
	}
	return out
}
