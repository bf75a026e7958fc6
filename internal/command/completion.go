// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/stctl/internal/meta"
)

const bashCompletionScript = `# bash completion for stctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_stctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "cp sync completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --reveal --schema --sort -s --titles -t --tldr"
    local dest="--destination -d --sas-token --account-name --account-key --connection-string --destination-container --destination-share --destination-path"
    local src="--source-uri -u --source-sas --source-account-name --source-account-key --source-connection-string --source-container --source-share --source-path --source-snapshot"
    local auth="--auth-mode --cloud --endpoint-suffix --subscription --aws-profile --aws-region --aws-endpoint --aws-path-style --aws-access-key-id --aws-secret-access-key --aws-session-token --ttl --engine --recursive -r --run"

    case "$cmd" in
        cp|sync)
            local opts="$common $dest $src $auth"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --auth-mode)
            COMPREPLY=( $(compgen -W "key login" -- "$cur") )
            return 0
            ;;
        --cloud)
            COMPREPLY=( $(compgen -W "public china usgov" -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _stctl stctl
`

const zshCompletionScript = `#compdef stctl

_stctl() {
  local -a cmds
  cmds=(
    'cp:resolve and copy a blob, file, container or share'
    'sync:resolve and synchronize a container or share'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--reveal[show token signatures]'
  '--schema[list attributes]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local -a endpoints
  endpoints=(
  '(-d --destination)'{-d,--destination}'[destination URL]:url'
  '--sas-token[destination SAS]:token'
  '--account-name[destination account]:account'
  '--account-key[destination account key]:key'
  '--connection-string[destination connection string]:connstr'
  '--destination-container[destination container]:container'
  '--destination-share[destination share]:share'
  '--destination-path[destination path]:path'
  '(-u --source-uri)'{-u,--source-uri}'[source URL]:url'
  '--source-sas[source SAS]:token'
  '--source-account-name[source account]:account'
  '--source-account-key[source account key]:key'
  '--source-connection-string[source connection string]:connstr'
  '--source-container[source container]:container'
  '--source-share[source share]:share'
  '--source-path[source path]:path'
  '--source-snapshot[source snapshot]:snapshot'
  '--auth-mode[credential mode]:mode:(key login)'
  '--cloud[cloud]:cloud:(public china usgov)'
  '--endpoint-suffix[storage endpoint suffix]:suffix'
  '--subscription[subscription id]:subscription'
  '--aws-profile[AWS profile]:profile'
  '--aws-region[AWS region]:region'
  '--aws-endpoint[S3-compatible endpoint URL]:url'
  '--aws-path-style[path-style S3 addressing]'
  '--aws-access-key-id[AWS access key id]:id'
  '--aws-secret-access-key[AWS secret access key]:secret'
  '--aws-session-token[AWS session token]:token'
  '--ttl[token lifetime]:duration'
  '--engine[transfer engine]:engine'
  '(-r --recursive)'{-r,--recursive}'[copy recursively]'
  '--run[run the transfer engine]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'stctl commands' cmds
    return
  fi

  case $words[2] in
    cp|sync)
      _arguments -C $common $endpoints
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _stctl stctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: stctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "stctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
