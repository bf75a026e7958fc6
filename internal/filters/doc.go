// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects resolved endpoints with --filter expressions.
//
// A filter is key, operator and target. Keys are attribute names (or gjson
// paths) of the endpoint rows. Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains
//   - / : regular expression match
//
// Any operator may be negated with a leading "!". A bare key keeps rows where
// the attribute is non-empty and "!key" keeps rows where it is empty.
//
// Examples:
//
//   - "role=source"
//   - "auth!=key"
//   - "uri@chinacloudapi"
//   - "minted=true"
//   - "!snapshot"
//
// Entries are comma separated unless STCTL_FILTER_DELIM names another
// delimiter.
package filters
