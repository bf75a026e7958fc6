// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/stctl/internal/minter"
)

// newSchemaFlag and newTLDRFlag build fresh flags per command since cli flags
// carry parse state.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes available to --attrs and --sort",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by every copy command.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to add to results, or * for all",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:  "reveal",
			Usage: "show token signatures instead of redacting them",
			Value: false,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewDestinationFlags returns the flags describing the destination of a copy.
// ns and cfgPath enable config file fallbacks for the account name.
func NewDestinationFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "destination",
			Aliases: []string{"d"},
			Usage:   "destination URL",
		},
		&cli.StringFlag{
			Name:    "sas-token",
			Usage:   "shared access signature for the destination",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AZURE_STORAGE_SAS_TOKEN")),
		},
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:  "account-name",
			Usage: "destination storage account",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("STCTL_ACCOUNT_NAME"),
				cli.EnvVar("AZURE_STORAGE_ACCOUNT"),
			),
		}),
		&cli.StringFlag{
			Name:    "account-key",
			Usage:   "destination storage account key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AZURE_STORAGE_KEY")),
		},
		&cli.StringFlag{
			Name:    "connection-string",
			Usage:   "destination storage connection string",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AZURE_STORAGE_CONNECTION_STRING")),
		},
		&cli.StringFlag{
			Name:  "destination-container",
			Usage: "destination blob container",
		},
		&cli.StringFlag{
			Name:  "destination-share",
			Usage: "destination file share",
		},
		&cli.StringFlag{
			Name:  "destination-path",
			Usage: "destination path within the container or share",
		},
		&cli.StringFlag{
			Name:   "destination-snapshot",
			Usage:  "not supported; destinations cannot be snapshots",
			Hidden: true,
		},
	}
}

// NewSourceFlags returns the flags describing the source of a copy.
func NewSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source-uri",
			Aliases: []string{"u"},
			Usage:   "source URL (https:// or s3://)",
		},
		&cli.StringFlag{
			Name:  "source-sas",
			Usage: "shared access signature for the source",
		},
		&cli.StringFlag{
			Name:  "source-account-name",
			Usage: "source storage account. Defaults to the destination account",
		},
		&cli.StringFlag{
			Name:  "source-account-key",
			Usage: "source storage account key",
		},
		&cli.StringFlag{
			Name:  "source-connection-string",
			Usage: "source storage connection string",
		},
		&cli.StringFlag{
			Name:  "source-container",
			Usage: "source blob container",
		},
		&cli.StringFlag{
			Name:  "source-share",
			Usage: "source file share",
		},
		&cli.StringFlag{
			Name:  "source-path",
			Usage: "source path within the container or share",
		},
		&cli.StringFlag{
			Name:  "source-snapshot",
			Usage: "source blob or share snapshot",
		},
	}
}

// NewAuthFlags returns the flags that select the cloud, the management-plane
// subscription and how credentials are obtained.
func NewAuthFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "auth-mode",
			Usage:   "credential mode (key, login)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AZURE_STORAGE_AUTH_MODE")),
			Value:   "key",
			Validator: func(value string) error {
				return FlagValidators(value, AuthModeValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "cloud",
			Usage:   "cloud (public, china, usgov)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_CLOUD")),
			Value:   "public",
			Validator: func(value string) error {
				return FlagValidators(value, CloudValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "endpoint-suffix",
			Usage:   "storage endpoint suffix. Overrides --cloud",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_ENDPOINT_SUFFIX")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:  "subscription",
			Usage: "subscription used to look up account keys",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("STCTL_SUBSCRIPTION"),
				cli.EnvVar("AZURE_SUBSCRIPTION_ID"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "aws-profile",
			Usage:   "AWS shared config profile for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_PROFILE")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "aws-region",
			Usage:   "AWS region for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_REGION")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "aws-endpoint",
			Usage:   "S3-compatible endpoint URL for s3:// sources",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_ENDPOINT")),
		}),
		&cli.BoolFlag{
			Name:    "aws-path-style",
			Usage:   "use path-style S3 addressing (bucket in the path)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_PATH_STYLE")),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "aws-access-key-id",
			Usage:   "AWS access key id. Overrides the default credential chain",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_ACCESS_KEY_ID")),
		},
		&cli.StringFlag{
			Name:    "aws-secret-access-key",
			Usage:   "AWS secret access key, used with --aws-access-key-id",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_SECRET_ACCESS_KEY")),
		},
		&cli.StringFlag{
			Name:    "aws-session-token",
			Usage:   "AWS session token, used with --aws-access-key-id",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_AWS_SESSION_TOKEN")),
		},
		&cli.DurationFlag{
			Name:    "ttl",
			Usage:   "lifetime of minted tokens",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_TTL")),
			Value:   minter.DefaultTTL,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, TTLValidator)
			},
		},
	}
}

// NewEngineFlags returns the flags that hand resolved URIs to the transfer
// engine.
func NewEngineFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, &cli.StringFlag{
			Name:    "engine",
			Usage:   "transfer engine executable",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STCTL_ENGINE")),
			Value:   DefaultEngine,
		}),
		&cli.BoolFlag{
			Name:    "recursive",
			Aliases: []string{"r"},
			Usage:   "copy container or directory contents recursively",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:  "run",
			Usage: "run the transfer engine instead of printing the endpoints",
			Value: false,
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
