// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"net/url"
	"strings"

	"github.com/tfctl/stctl/internal/locator"
)

// assemble builds the endpoint URI without a token.
func (r *Resolver) assemble(ep Endpoint) string {
	return r.assembleWith(ep, "")
}

// assembleWith builds
//
//	<protocol>://<account>.<kind>.<suffix>/<container>[/<path>][?<token>][&snapshot=<id>]
//
// The object path is encoded as a single segment, so '/' becomes %2F.
func (r *Resolver) assembleWith(ep Endpoint, token string) string {
	var b strings.Builder
	b.WriteString(r.protocol)
	b.WriteString("://")
	b.WriteString(ep.Account)
	b.WriteByte('.')
	b.WriteString(ep.Kind.Discriminator())
	b.WriteByte('.')
	b.WriteString(r.suffix)
	b.WriteByte('/')
	b.WriteString(ep.Container)
	if ep.Path != "" {
		b.WriteByte('/')
		b.WriteString(locator.EncodePath(ep.Path))
	}

	var query []string
	if token = strings.TrimPrefix(token, "?"); token != "" {
		query = append(query, token)
	}
	if ep.Snapshot != "" {
		query = append(query, "snapshot="+url.QueryEscape(ep.Snapshot))
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(query, "&"))
	}

	return b.String()
}

// appendToken adds sas to the query of a user-supplied URL.
func appendToken(uri, sas string) string {
	sas = strings.TrimPrefix(sas, "?")
	switch {
	case sas == "":
		return uri
	case strings.HasSuffix(uri, "?"), strings.HasSuffix(uri, "&"):
		return uri + sas
	case strings.Contains(uri, "?"):
		return uri + "&" + sas
	default:
		return uri + "?" + sas
	}
}
