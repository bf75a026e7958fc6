// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"strings"
	"time"

	"github.com/tfctl/stctl/internal/credstore"
	"github.com/tfctl/stctl/internal/locator"
	"github.com/tfctl/stctl/internal/minter"
)

// Input is the raw, unvalidated description of one side of a copy: either a
// URI or the discrete fields, plus any credential flags.
type Input struct {
	URI              string
	SAS              string
	Account          string
	Key              string
	ConnectionString string
	Container        string
	Share            string
	Path             string
	Snapshot         string
}

func (in Input) hasURI() bool {
	return strings.TrimSpace(in.URI) != ""
}

func (in Input) hasDiscrete() bool {
	return in.Container != "" || in.Share != "" || in.Path != "" || in.Snapshot != ""
}

func (in Input) explicit() credstore.Explicit {
	return credstore.Explicit{Key: in.Key, ConnectionString: in.ConnectionString, SAS: in.SAS}
}

// Endpoint is the resolved form of one side of a copy.
type Endpoint struct {
	Role      minter.Role
	URI       string
	Account   string
	Kind      locator.Kind
	Container string
	Path      string
	Snapshot  string

	// SignedTokenAppended is true when the resolver added a token to URI.
	// Tokens already embedded in a user-supplied URL do not count.
	SignedTokenAppended bool
	// Minted is true when the appended token was signed by the resolver.
	Minted    bool
	ExpiresAt time.Time

	// Credential authorizes the endpoint when URI carries no token (an account
	// key or a delegated login).
	Credential credstore.Credential
}

// Context is the destination's resolved identity, passed explicitly into
// source resolution.
type Context struct {
	Account    string
	Suffix     string
	Kind       locator.Kind
	Credential credstore.Credential
}

// Pair is a fully resolved copy.
type Pair struct {
	Source      Endpoint
	Destination Endpoint
	Context     Context
}

// flagNames maps Input fields onto the command-line flags that set them so
// errors can name what the user typed.
type flagNames struct {
	uri, sas, account, key, connStr, container, share, path, snapshot string
}

var sourceFlags = flagNames{
	uri:       "--source-uri",
	sas:       "--source-sas",
	account:   "--source-account-name",
	key:       "--source-account-key",
	connStr:   "--source-connection-string",
	container: "--source-container",
	share:     "--source-share",
	path:      "--source-path",
	snapshot:  "--source-snapshot",
}

var destinationFlags = flagNames{
	uri:       "--destination",
	sas:       "--sas-token",
	account:   "--account-name",
	key:       "--account-key",
	connStr:   "--connection-string",
	container: "--destination-container",
	share:     "--destination-share",
	path:      "--destination-path",
	snapshot:  "--destination-snapshot",
}

func flagsFor(role minter.Role) flagNames {
	if role == minter.Destination {
		return destinationFlags
	}
	return sourceFlags
}

// accepted lists the valid combinations for a role, for ambiguity errors.
func (f flagNames) accepted() string {
	return "use either " + f.uri + " [" + f.sas + "], or " +
		f.container + "|" + f.share + " [" + f.path + "] with " +
		f.account + " [" + f.key + "|" + f.sas + "|" + f.connStr + "]"
}

// unusedWithURL names the flags that may not accompany a URL.
func (f flagNames) unusedWithURL(in Input) []string {
	var unused []string
	if in.Account != "" {
		unused = append(unused, f.account)
	}
	if in.Key != "" {
		unused = append(unused, f.key)
	}
	if in.ConnectionString != "" {
		unused = append(unused, f.connStr)
	}
	return unused
}
