// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"
	"time"

	"github.com/tfctl/stctl/internal/resolver"
)

// Row is the display form of one resolved endpoint. The json tags are the
// attribute names accepted by --attrs and --sort.
type Row struct {
	Role      string `json:"role"`
	Kind      string `json:"kind"`
	Account   string `json:"account"`
	Container string `json:"container"`
	Path      string `json:"path"`
	Snapshot  string `json:"snapshot"`
	Auth      string `json:"auth"`
	Minted    bool   `json:"minted"`
	Expires   string `json:"expires"`
	URI       string `json:"uri"`
}

// DefaultAttrs is the column set used when --attrs is not given.
var DefaultAttrs = []string{"role", "kind", "account", "auth", "expires", "uri"}

// NewRows builds the rows for a resolved pair, source first. Signatures are
// redacted unless reveal is set.
func NewRows(pair resolver.Pair, reveal bool) []Row {
	return []Row{
		newRow(pair.Source, reveal),
		newRow(pair.Destination, reveal),
	}
}

func newRow(ep resolver.Endpoint, reveal bool) Row {
	uri := ep.URI
	if !reveal {
		uri = Redact(uri)
	}

	auth := ep.Credential.Kind.String()
	if ep.SignedTokenAppended {
		auth = "sas"
	}

	var expires string
	if !ep.ExpiresAt.IsZero() {
		expires = ep.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return Row{
		Role:      ep.Role.String(),
		Kind:      ep.Kind.String(),
		Account:   ep.Account,
		Container: ep.Container,
		Path:      ep.Path,
		Snapshot:  ep.Snapshot,
		Auth:      auth,
		Minted:    ep.Minted,
		Expires:   expires,
		URI:       uri,
	}
}

// redactedKeys are the query parameters that carry signatures.
var redactedKeys = map[string]bool{
	"sig":                  true,
	"x-amz-signature":      true,
	"x-amz-credential":     true,
	"x-amz-security-token": true,
}

// Redact masks signature values in the query of uri.
func Redact(uri string) string {
	base, query, ok := strings.Cut(uri, "?")
	if !ok || query == "" {
		return uri
	}

	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		k, _, found := strings.Cut(pair, "=")
		if found && redactedKeys[strings.ToLower(k)] {
			pairs[i] = k + "=REDACTED"
		}
	}
	return base + "?" + strings.Join(pairs, "&")
}
