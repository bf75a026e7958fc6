// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/stctl/internal/aws"
	"github.com/tfctl/stctl/internal/config"
	"github.com/tfctl/stctl/internal/credstore"
	"github.com/tfctl/stctl/internal/log"
	"github.com/tfctl/stctl/internal/meta"
	"github.com/tfctl/stctl/internal/mgmt"
	"github.com/tfctl/stctl/internal/minter"
	"github.com/tfctl/stctl/internal/resolver"
)

// defaultIndexHours is how long the account to resource group index is
// trusted when cache.clean is not configured.
const defaultIndexHours = 24

// copyCommandAction resolves both endpoints of a cp or sync and either prints
// them or hands them to the transfer engine.
func copyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, cmd.Name) {
		return nil
	}
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	config.Config.Namespace = cmd.Name

	r, err := NewResolver(ctx, cmd, cmd.Name == "sync")
	if err != nil {
		return err
	}

	pair, err := r.Resolve(ctx, SourceInput(cmd), DestinationInput(cmd, m.Args))
	if err != nil {
		return err
	}

	if cmd.Bool("run") {
		return RunEngine(ctx, cmd.String("engine"), EngineArgs(cmd.Name, pair, cmd.Bool("recursive")), writer(cmd), nil)
	}
	return EmitPair(cmd, pair)
}

// SourceInput collects the source flags.
func SourceInput(cmd *cli.Command) resolver.Input {
	return resolver.Input{
		URI:              cmd.String("source-uri"),
		SAS:              cmd.String("source-sas"),
		Account:          cmd.String("source-account-name"),
		Key:              cmd.String("source-account-key"),
		ConnectionString: cmd.String("source-connection-string"),
		Container:        cmd.String("source-container"),
		Share:            cmd.String("source-share"),
		Path:             cmd.String("source-path"),
		Snapshot:         cmd.String("source-snapshot"),
	}
}

// DestinationInput collects the destination flags. Credentials typed on the
// command line win over ones that came from the environment or the config
// file: if any is typed, the untyped ones are dropped. With a destination URL
// every untyped credential, and an untyped account name, is dropped.
func DestinationInput(cmd *cli.Command, args []string) resolver.Input {
	in := resolver.Input{
		URI:              cmd.String("destination"),
		SAS:              cmd.String("sas-token"),
		Account:          cmd.String("account-name"),
		Key:              cmd.String("account-key"),
		ConnectionString: cmd.String("connection-string"),
		Container:        cmd.String("destination-container"),
		Share:            cmd.String("destination-share"),
		Path:             cmd.String("destination-path"),
		Snapshot:         cmd.String("destination-snapshot"),
	}

	creds := []struct {
		name  string
		value *string
	}{
		{"account-key", &in.Key},
		{"connection-string", &in.ConnectionString},
		{"sas-token", &in.SAS},
	}

	drop := in.URI != ""
	for _, c := range creds {
		if typed(args, c.name) {
			drop = true
		}
	}
	if drop {
		for _, c := range creds {
			if !typed(args, c.name) {
				*c.value = ""
			}
		}
	}
	if in.URI != "" && !typed(args, "account-name") {
		in.Account = ""
	}
	return in
}

// NewResolver wires the credential store, the management-plane lookup, the
// token minter and, for s3:// sources, the presigner.
func NewResolver(ctx context.Context, cmd *cli.Command, sync bool) (*resolver.Resolver, error) {
	cloud, err := mgmt.CloudFor(cmd.String("cloud"))
	if err != nil {
		return nil, err
	}

	suffix, protocol := cloud.Suffix, ""
	if cs := cmd.String("connection-string"); cs != "" {
		if parsed, err := credstore.ParseConnectionString(cs); err == nil {
			if parsed.EndpointSuffix != "" {
				suffix = parsed.EndpointSuffix
			}
			protocol = parsed.Protocol
		}
	}
	if es := cmd.String("endpoint-suffix"); es != "" {
		suffix = es
	}

	var (
		storeOpts []credstore.Option
		login     azcore.TokenCredential
	)
	if strings.EqualFold(cmd.String("auth-mode"), "login") {
		login, err = mgmt.NewLoginCredential(cloud.Configuration)
		if err != nil {
			return nil, err
		}
		storeOpts = append(storeOpts, credstore.WithLogin(login))
	}

	var keys credstore.KeyLookup
	if sub := cmd.String("subscription"); sub != "" {
		q, err := mgmt.NewARMQuerier(mgmt.ARMOptions{
			SubscriptionID: sub,
			Cloud:          cloud.Configuration,
			Credential:     login,
		})
		if err != nil {
			return nil, err
		}
		hours, _ := config.GetInt("cache.clean", defaultIndexHours)
		keys = mgmt.NewService(q, mgmt.WithIndexCache(sub, time.Duration(hours)*time.Hour))
	} else {
		log.Debugf("no subscription; account key lookup disabled")
	}

	opts := []resolver.Option{
		resolver.WithSuffix(suffix),
		resolver.WithProtocol(protocol),
		resolver.WithTTL(cmd.Duration("ttl")),
	}

	if src := cmd.String("source-uri"); strings.HasPrefix(strings.ToLower(src), "s3://") {
		cfg, err := aws.LoadAWSConfig(ctx, awsConfigOptions(cmd)...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, resolver.WithPresigner(aws.NewPresigner(cfg, s3Options(cmd)...)))
	}

	if cmd.Bool("run") {
		opts = append(opts, resolver.RequireSignedTokens())
	}
	if sync {
		opts = append(opts, resolver.ContainerScope())
	}

	return resolver.New(credstore.New(keys, storeOpts...), minter.NewSharedKeyMinter(), opts...), nil
}

// awsConfigOptions maps the --aws-* credential flags onto config loading.
func awsConfigOptions(cmd *cli.Command) []aws.Option {
	return []aws.Option{
		aws.WithProfile(cmd.String("aws-profile")),
		aws.WithRegion(cmd.String("aws-region")),
		aws.WithStaticCredentials(
			cmd.String("aws-access-key-id"),
			cmd.String("aws-secret-access-key"),
			cmd.String("aws-session-token"),
		),
	}
}

// s3Options points the presigner at an S3-compatible endpoint when asked.
func s3Options(cmd *cli.Command) []func(*s3v2.Options) {
	opts := []func(*s3v2.Options){aws.WithBaseEndpoint(cmd.String("aws-endpoint"))}
	if cmd.Bool("aws-path-style") {
		opts = append(opts, aws.WithPathStyle())
	}
	return opts
}

// typed reports whether the flag appears on the command line as --name,
// -name, --name=value or -name=value.
func typed(args []string, name string) bool {
	for _, a := range args {
		a, _, _ = strings.Cut(a, "=")
		if a == "--"+name || a == "-"+name {
			return true
		}
	}
	return false
}

func cpCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CopyCommandBuilder{
		Name:      "cp",
		Usage:     "resolve and copy a blob, file, container or share",
		UsageText: "stctl cp --destination URL | --account-name NAME --destination-container C [source options] [options]",
		Action:    copyCommandAction,
		Meta:      meta,
	}).Build()
}

func syncCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CopyCommandBuilder{
		Name:      "sync",
		Usage:     "resolve and synchronize a container or share",
		UsageText: "stctl sync --destination URL | --account-name NAME --destination-container C [source options] [options]",
		Action:    copyCommandAction,
		Meta:      meta,
	}).Build()
}
