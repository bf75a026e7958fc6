// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/stctl/internal/config"
	"github.com/tfctl/stctl/internal/meta"
	"github.com/tfctl/stctl/internal/output"
	"github.com/tfctl/stctl/internal/resolver"
)

// BuildAttrs returns the default attributes plus any extras from --attrs. "*"
// selects every attribute.
func BuildAttrs(cmd *cli.Command, defaults ...string) []string {
	al := slices.Clone(defaults)
	for _, a := range strings.Split(cmd.String("attrs"), ",") {
		a = strings.TrimSpace(a)
		switch {
		case a == "":
			continue
		case a == "*":
			return output.Attributes()
		case !slices.Contains(al, a):
			al = append(al, a)
		}
	}
	return al
}

// DumpSchemaIfRequested writes the attribute list when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd))
		return true
	}
	return false
}

// EmitPair renders a resolved pair per the common output flags.
func EmitPair(cmd *cli.Command, pair resolver.Pair) error {
	padding, _ := config.GetInt("padding", 2)
	return output.Write(writer(cmd), output.NewRows(pair, cmd.Bool("reveal")), output.Options{
		Format:  cmd.String("output"),
		Attrs:   BuildAttrs(cmd, output.DefaultAttrs...),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: padding,
	})
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr stctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "stctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// writer returns the root command's writer, defaulting to stdout.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil && cmd.Root() != nil && cmd.Root().Writer != nil {
		return cmd.Root().Writer
	}
	return os.Stdout
}
