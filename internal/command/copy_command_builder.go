// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/stctl/internal/meta"
)

// CopyCommandBuilder constructs a cli.Command for the copy subcommands (cp,
// sync) using a consistent pattern. The builder wires metadata, adds the
// endpoint, auth, engine and output flags, and sets up validators.
type CopyCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (ccb *CopyCommandBuilder) Build() *cli.Command {
	cfg := ccb.Meta.Config.Source

	flags := append([]cli.Flag{}, ccb.Flags...)
	flags = append(flags, NewDestinationFlags(ccb.Name, cfg)...)
	flags = append(flags, NewSourceFlags()...)
	flags = append(flags, NewAuthFlags(ccb.Name, cfg)...)
	flags = append(flags, NewEngineFlags(ccb.Name, cfg)...)
	flags = append(flags, newTLDRFlag(), newSchemaFlag())
	flags = append(flags, NewGlobalFlags()...)

	return &cli.Command{
		Name:      ccb.Name,
		Usage:     ccb.Usage,
		UsageText: ccb.UsageText,
		Metadata: map[string]any{
			"meta": ccb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: ccb.Action,
	}
}
