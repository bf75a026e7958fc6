// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package resolver turns the raw source and destination flags of a copy into
// absolute URIs with attached signed tokens.
//
// The destination is resolved first. Its account, kind and credential form a
// Context that source resolution uses for the same-account optimization: a
// source in the same account and of the same kind reuses the destination's
// credential with no key query and no new token. A source of a different kind
// in the same account still gets a minted token, since blob and file
// endpoints do not share authorization. A source in another account costs one
// key query and one token.
//
// URL inputs are opaque. The only thing the resolver adds to a URL is an
// explicitly supplied SAS token.
//
// Every failure wraps one of the Err* sentinels and names the flags involved.
package resolver
