// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMalformedURL is returned when a URL cannot be decomposed into at least a
// container or share component.
var ErrMalformedURL = errors.New("malformed storage URL")

// Locator is the structured form of a single user-supplied location. It is a
// value type and is never mutated after Parse returns it.
//
// Bare (non-URL) forms never carry Token or Snapshot.
type Locator struct {
	Raw       string
	IsURL     bool
	Account   string
	Kind      Kind
	Container string // blob container, file share or S3 bucket
	Path      string // blob name, file path or S3 key; may contain '/'
	Snapshot  string
	Token     string // query string minus the snapshot pair
}

// Parse turns moniker into a Locator. suffix is the storage endpoint suffix
// for the current cloud (e.g. "core.windows.net"); hosts outside it, or with
// an unrecognized discriminator, leave Account empty and Kind unresolved.
func Parse(moniker, suffix string) (Locator, error) {
	raw := strings.TrimSpace(moniker)
	if raw == "" {
		return Locator{}, nil
	}

	if strings.HasPrefix(strings.ToLower(raw), "s3://") {
		return parseS3(raw)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return parseBare(raw), nil
	}

	loc := Locator{Raw: raw, IsURL: true}
	loc.Account, loc.Kind = splitHost(u.Hostname(), suffix)

	p := strings.TrimPrefix(u.Path, "/")
	if p == "" {
		return Locator{}, fmt.Errorf("%w: %s has no container or share", ErrMalformedURL, raw)
	}
	loc.Container, loc.Path = splitFirst(p)
	if loc.Container == "" {
		return Locator{}, fmt.Errorf("%w: %s has an empty container or share", ErrMalformedURL, raw)
	}

	loc.Snapshot, loc.Token = splitQuery(u.RawQuery)

	return loc, nil
}

// Directory returns the directory part of a file path (everything before the
// last '/'), or "" when the path has no '/'.
func (l Locator) Directory() string {
	if i := strings.LastIndex(l.Path, "/"); i >= 0 {
		return l.Path[:i]
	}
	return ""
}

// FileName returns the final segment of the path. It is empty when the path
// ends in '/', which names a directory.
func (l Locator) FileName() string {
	if i := strings.LastIndex(l.Path, "/"); i >= 0 {
		return l.Path[i+1:]
	}
	return l.Path
}

// IsContainer reports whether the locator names a whole container or share
// rather than a single object.
func (l Locator) IsContainer() bool {
	return l.Path == ""
}

// EncodePath percent-encodes an object path as a single URL segment, so '/'
// becomes %2F. url.PathUnescape recovers the original.
func EncodePath(p string) string {
	return url.PathEscape(p)
}

// splitHost extracts the account and kind from "<account>.<kind>.<suffix>".
func splitHost(host, suffix string) (string, Kind) {
	host = strings.ToLower(host)
	suffix = strings.ToLower(strings.Trim(suffix, "."))
	if suffix == "" || !strings.HasSuffix(host, "."+suffix) {
		return "", KindUnresolved
	}

	labels := strings.Split(strings.TrimSuffix(host, "."+suffix), ".")
	if len(labels) != 2 || labels[0] == "" {
		return "", KindUnresolved
	}

	kind := KindFromDiscriminator(labels[1])
	if kind == KindUnresolved {
		return "", KindUnresolved
	}
	return labels[0], kind
}

// splitFirst splits s at the first '/'. The right side keeps any further '/'.
func splitFirst(s string) (string, string) {
	left, right, _ := strings.Cut(s, "/")
	return left, right
}

// splitQuery pulls the snapshot=<id> pair out of a raw query string. The
// remaining pairs, rejoined with '&', are the embedded token.
func splitQuery(rawQuery string) (snapshot, token string) {
	if !strings.Contains(rawQuery, "snapshot=") {
		return "", rawQuery
	}

	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if v, ok := strings.CutPrefix(pair, "snapshot="); ok && snapshot == "" {
			if unescaped, err := url.QueryUnescape(v); err == nil {
				v = unescaped
			}
			snapshot = v
			continue
		}
		if pair != "" {
			kept = append(kept, pair)
		}
	}
	return snapshot, strings.Join(kept, "&")
}

// parseBare handles "container[/path]" style input.
func parseBare(raw string) Locator {
	container, path := splitFirst(strings.TrimPrefix(raw, "/"))
	return Locator{
		Raw:       raw,
		Kind:      KindUnresolved,
		Container: container,
		Path:      path,
	}
}

// parseS3 handles "s3://bucket/key".
func parseS3(raw string) (Locator, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Host == "" {
		return Locator{}, fmt.Errorf("%w: %s has no bucket", ErrMalformedURL, raw)
	}

	return Locator{
		Raw:       raw,
		IsURL:     true,
		Kind:      KindS3,
		Container: u.Host,
		Path:      strings.TrimPrefix(u.Path, "/"),
	}, nil
}
