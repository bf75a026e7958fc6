// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tfctl/stctl/internal/credstore"
	"github.com/tfctl/stctl/internal/locator"
	"github.com/tfctl/stctl/internal/log"
	"github.com/tfctl/stctl/internal/minter"
)

// DefaultSuffix is the public-cloud storage endpoint suffix.
const DefaultSuffix = "core.windows.net"

// Presigner signs GET URLs for S3 sources.
type Presigner interface {
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, time.Time, error)
}

// Resolver turns raw Inputs into Endpoints. It is used for one command
// invocation and is not safe for concurrent use.
type Resolver struct {
	store     *credstore.Store
	minter    minter.Minter
	presigner Presigner

	suffix         string
	protocol       string
	ttl            time.Duration
	now            func() time.Time
	requireTokens  bool
	containerScope bool
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithSuffix sets the storage endpoint suffix, e.g. "core.chinacloudapi.cn".
func WithSuffix(suffix string) Option {
	return func(r *Resolver) {
		if suffix != "" {
			r.suffix = strings.Trim(suffix, ".")
		}
	}
}

// WithProtocol sets the URI scheme. Defaults to https.
func WithProtocol(protocol string) Option {
	return func(r *Resolver) {
		if protocol != "" {
			r.protocol = strings.ToLower(protocol)
		}
	}
}

// WithTTL sets the lifetime of minted tokens.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithPresigner enables S3 sources.
func WithPresigner(p Presigner) Option {
	return func(r *Resolver) { r.presigner = p }
}

// RequireSignedTokens mints tokens for every key-bearing endpoint, including
// destinations and same-account sources. Transfer engines that cannot accept
// account keys need this.
func RequireSignedTokens() Option {
	return func(r *Resolver) { r.requireTokens = true }
}

// ContainerScope scopes minted tokens to the whole container or share even
// when a path is given.
func ContainerScope() Option {
	return func(r *Resolver) { r.containerScope = true }
}

// New returns a Resolver backed by store and m.
func New(store *credstore.Store, m minter.Minter, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		minter:   m,
		suffix:   DefaultSuffix,
		protocol: "https",
		ttl:      minter.DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves the destination first, to establish the context account,
// then the source.
func (r *Resolver) Resolve(ctx context.Context, src, dst Input) (Pair, error) {
	d, rc, err := r.ResolveDestination(ctx, dst)
	if err != nil {
		return Pair{}, err
	}
	s, err := r.ResolveSource(ctx, src, rc)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Source: s, Destination: d, Context: rc}, nil
}

// ResolveDestination resolves the destination and returns the Context that
// source resolution needs.
func (r *Resolver) ResolveDestination(ctx context.Context, in Input) (Endpoint, Context, error) {
	flags := destinationFlags

	if err := disambiguate(in, flags); err != nil {
		return Endpoint{}, Context{}, err
	}

	if in.hasURI() {
		ep, err := r.resolveURL(ctx, in, minter.Destination)
		if err != nil {
			return Endpoint{}, Context{}, err
		}
		rc := Context{Account: ep.Account, Suffix: r.suffix, Kind: ep.Kind, Credential: ep.Credential}
		return ep, rc, nil
	}

	if in.Snapshot != "" {
		return Endpoint{}, Context{}, ambiguous("%s cannot be used for a destination", flags.snapshot)
	}

	kind, err := discreteKind(in, flags)
	if err != nil {
		return Endpoint{}, Context{}, err
	}

	account, err := r.discreteAccount(in, flags, "")
	if err != nil {
		return Endpoint{}, Context{}, err
	}

	cred, err := r.store.Resolve(ctx, account, in.explicit())
	if err != nil {
		return Endpoint{}, Context{}, r.credentialFailure(minter.Destination, account, err)
	}
	account = cred.Account

	ep := Endpoint{
		Role:       minter.Destination,
		Account:    account,
		Kind:       kind,
		Container:  in.Container + in.Share,
		Path:       in.Path,
		Credential: cred,
	}
	if err := r.authorize(&ep, cred); err != nil {
		return Endpoint{}, Context{}, err
	}
	if ep.URI == "" {
		ep.URI = r.assemble(ep)
	}

	rc := Context{Account: account, Suffix: r.suffix, Kind: kind, Credential: cred}
	log.Debugf("resolver: destination %s (%s, %s)", ep.Account, ep.Kind, cred)
	return ep, rc, nil
}

// ResolveSource resolves the source against the destination's Context.
func (r *Resolver) ResolveSource(ctx context.Context, in Input, rc Context) (Endpoint, error) {
	flags := sourceFlags

	if err := disambiguate(in, flags); err != nil {
		return Endpoint{}, err
	}

	if in.hasURI() {
		return r.resolveURL(ctx, in, minter.Source)
	}

	kind, err := discreteKind(in, flags)
	if err != nil {
		return Endpoint{}, err
	}

	if in.Snapshot != "" {
		if _, err := minter.ParseSnapshot(in.Snapshot); err != nil {
			return Endpoint{}, fmt.Errorf("%s: %w", flags.snapshot, err)
		}
	}

	account, err := r.discreteAccount(in, flags, rc.Account)
	if err != nil {
		return Endpoint{}, err
	}

	ep := Endpoint{
		Role:      minter.Source,
		Account:   account,
		Kind:      kind,
		Container: in.Container + in.Share,
		Path:      in.Path,
		Snapshot:  in.Snapshot,
	}

	explicit := in.explicit()
	same := explicit.IsZero() && !rc.Credential.IsZero() && r.sameAccount(account, rc)

	switch {
	case same && kind == rc.Kind:
		log.Debugf("resolver: source shares account and kind with destination")
		ep.Account = rc.Account
		ep.Credential = rc.Credential
		if r.requireTokens && rc.Credential.HasKey() {
			if err := r.mint(&ep, rc.Credential.Key()); err != nil {
				return Endpoint{}, err
			}
		} else if tok := rc.Credential.Token(); tok != "" {
			ep.URI = r.assembleWith(ep, tok)
			ep.SignedTokenAppended = true
			return ep, nil
		}

	case same:
		log.Debugf("resolver: source shares account with destination but is %s, not %s", kind, rc.Kind)
		ep.Account = rc.Account
		cred := rc.Credential
		if !cred.HasKey() && cred.Kind != credstore.DelegatedLogin {
			if cred, err = r.store.Resolve(ctx, account, credstore.Explicit{}); err != nil {
				return Endpoint{}, r.credentialFailure(minter.Source, account, err)
			}
		}
		ep.Credential = cred
		if cred.HasKey() {
			if err := r.mint(&ep, cred.Key()); err != nil {
				return Endpoint{}, err
			}
		}

	default:
		cred, err := r.store.Resolve(ctx, account, explicit)
		if err != nil {
			return Endpoint{}, r.credentialFailure(minter.Source, account, err)
		}
		ep.Account = cred.Account
		ep.Credential = cred
		switch {
		case cred.HasKey():
			if err := r.mint(&ep, cred.Key()); err != nil {
				return Endpoint{}, err
			}
		case cred.Kind == credstore.SignedToken:
			ep.URI = r.assembleWith(ep, cred.Token())
			ep.SignedTokenAppended = true
			return ep, nil
		}
	}

	if ep.URI == "" {
		ep.URI = r.assemble(ep)
	}
	log.Debugf("resolver: source %s (%s, minted=%t)", ep.Account, ep.Kind, ep.Minted)
	return ep, nil
}

// resolveURL handles the URL form of either role. The URL is opaque except
// for an explicit SAS, which is appended.
func (r *Resolver) resolveURL(ctx context.Context, in Input, role minter.Role) (Endpoint, error) {
	flags := flagsFor(role)

	loc, err := locator.Parse(in.URI, r.suffix)
	if err != nil {
		return Endpoint{}, err
	}
	if !loc.IsURL {
		return Endpoint{}, fmt.Errorf("%w: %s %q is not an http(s) URL", ErrMalformedLocationURL, flags.uri, in.URI)
	}

	if unused := flags.unusedWithURL(in); len(unused) > 0 {
		return Endpoint{}, fmt.Errorf("%w: %s given with %s", ErrUnusedParametersWithURL, strings.Join(unused, ", "), flags.uri)
	}

	ep := Endpoint{
		Role:      role,
		Account:   loc.Account,
		Kind:      loc.Kind,
		Container: loc.Container,
		Path:      loc.Path,
		Snapshot:  loc.Snapshot,
	}

	switch loc.Kind {
	case locator.KindS3:
		if role == minter.Destination {
			return Endpoint{}, fmt.Errorf("%w: S3 is only supported as a copy source", ErrMalformedLocationURL)
		}
		if in.SAS != "" {
			return Endpoint{}, fmt.Errorf("%w: %s given with an S3 %s", ErrUnusedParametersWithURL, flags.sas, flags.uri)
		}
		return r.presign(ctx, ep)

	case locator.KindBlob, locator.KindFile, locator.KindUnresolved:
		if role == minter.Destination && loc.Snapshot != "" {
			return Endpoint{}, ambiguous("a destination URL cannot name a snapshot")
		}
	}

	ep.URI = loc.Raw
	if in.SAS != "" {
		ep.URI = appendToken(loc.Raw, in.SAS)
		ep.SignedTokenAppended = true
		ep.Credential = credstore.Credential{Kind: credstore.SignedToken, Account: loc.Account, Secret: strings.TrimPrefix(in.SAS, "?")}
	} else if loc.Token != "" {
		ep.Credential = credstore.Credential{Kind: credstore.SignedToken, Account: loc.Account, Secret: loc.Token}
	}
	log.Debugf("resolver: %s URL form, no credential lookup", role)
	return ep, nil
}

func (r *Resolver) presign(ctx context.Context, ep Endpoint) (Endpoint, error) {
	if r.presigner == nil {
		return Endpoint{}, insufficient("S3 sources need AWS configuration")
	}
	if ep.Path == "" {
		return Endpoint{}, fmt.Errorf("%w: S3 sources must name a single object", ErrMalformedLocationURL)
	}
	uri, expires, err := r.presigner.PresignGet(ctx, ep.Container, ep.Path, r.ttl)
	if err != nil {
		return Endpoint{}, insufficient("%v", err)
	}
	ep.URI = uri
	ep.SignedTokenAppended = true
	ep.Minted = true
	ep.ExpiresAt = expires
	return ep, nil
}

// authorize attaches a destination token when the credential calls for one.
func (r *Resolver) authorize(ep *Endpoint, cred credstore.Credential) error {
	switch {
	case cred.Kind == credstore.SignedToken:
		ep.URI = r.assembleWith(*ep, cred.Token())
		ep.SignedTokenAppended = true
	case cred.HasKey() && r.requireTokens:
		return r.mint(ep, cred.Key())
	}
	return nil
}

// mint signs, or reuses, a token for ep and records it on the endpoint.
func (r *Resolver) mint(ep *Endpoint, key string) error {
	scope := minter.Scope{
		Account:   ep.Account,
		Kind:      ep.Kind,
		Container: ep.Container,
		Path:      ep.Path,
		Snapshot:  ep.Snapshot,
	}
	if r.containerScope {
		scope.Path = ""
		scope.Snapshot = ""
	}
	if loc := (locator.Locator{Kind: ep.Kind, Path: ep.Path}); ep.Kind == locator.KindFile && ep.Path != "" && loc.FileName() == "" {
		// File tokens cover a share or a single file, never a directory.
		log.Debugf("resolver: %s names directory %s; signing for the share", ep.Role, loc.Directory())
		scope.Path = ""
	}
	perms := minter.PermissionsFor(ep.Role, scope)
	cacheKey := scope.Key(perms)

	if q, exp, ok := r.store.Token(cacheKey, r.now()); ok {
		log.Debugf("resolver: reusing %s token for %s", ep.Role, ep.Account)
		ep.URI = r.assembleWith(*ep, q)
		ep.SignedTokenAppended, ep.Minted, ep.ExpiresAt = true, true, exp
		return nil
	}

	tok, err := r.minter.Mint(key, scope, perms, r.ttl)
	if err != nil {
		return insufficient("cannot sign a %s token for account %s: %v", ep.Role, ep.Account, err)
	}
	r.store.PutToken(cacheKey, tok.Query, tok.ExpiresAt)

	ep.URI = r.assembleWith(*ep, tok.Query)
	ep.SignedTokenAppended, ep.Minted, ep.ExpiresAt = true, true, tok.ExpiresAt
	return nil
}

// sameAccount compares the account name and the cloud it lives in.
func (r *Resolver) sameAccount(account string, rc Context) bool {
	if account == "" || rc.Account == "" {
		return false
	}
	suffix := rc.Suffix
	if suffix == "" {
		suffix = r.suffix
	}
	return strings.EqualFold(account, rc.Account) && strings.EqualFold(suffix, r.suffix)
}

// discreteAccount determines the account for a discrete-field input. An
// empty fallback means there is no context account to assume.
func (r *Resolver) discreteAccount(in Input, flags flagNames, fallback string) (string, error) {
	account := in.Account
	if account == "" && in.ConnectionString != "" {
		cs, err := credstore.ParseConnectionString(in.ConnectionString)
		if err != nil {
			return "", fmt.Errorf("%s: %w", flags.connStr, err)
		}
		account = cs.AccountName
	}
	if account != "" {
		return account, nil
	}

	if in.Key != "" {
		return "", fmt.Errorf("%w: %s given but %s is not", ErrCredentialWithoutAccount, flags.key, flags.account)
	}
	if fallback != "" {
		log.Debugf("resolver: assuming account %s", fallback)
		return fallback, nil
	}
	if in.SAS != "" || in.ConnectionString != "" {
		return "", fmt.Errorf("%w: cannot tell which account the token belongs to; set %s", ErrCredentialWithoutAccount, flags.account)
	}
	return "", insufficient("no account name; set %s", flags.account)
}

// credentialFailure maps a credential store error onto the taxonomy.
func (r *Resolver) credentialFailure(role minter.Role, account string, err error) error {
	switch {
	case errors.Is(err, credstore.ErrConflictingCredentials),
		errors.Is(err, credstore.ErrInvalidConnectionString):
		return err
	case errors.Is(err, credstore.ErrNoKeyLookup):
		flags := flagsFor(role)
		return insufficient("no credential for account %s; set %s, %s or %s", account, flags.key, flags.sas, flags.connStr)
	}
	return fmt.Errorf("%s storage account %s not found: %w: %w", role, account, ErrAccountNotFound, err)
}

// disambiguate enforces that exactly one of the URL and discrete forms is
// populated.
func disambiguate(in Input, flags flagNames) error {
	switch uri, discrete := in.hasURI(), in.hasDiscrete(); {
	case uri && discrete:
		return ambiguous("%s cannot be combined with discrete location flags; %s", flags.uri, flags.accepted())
	case !uri && !discrete:
		return ambiguous("no location given; %s", flags.accepted())
	}
	return nil
}

func discreteKind(in Input, flags flagNames) (locator.Kind, error) {
	switch {
	case in.Container != "" && in.Share != "":
		return locator.KindUnresolved, ambiguous("%s and %s are mutually exclusive", flags.container, flags.share)
	case in.Container != "":
		return locator.KindBlob, nil
	case in.Share != "":
		return locator.KindFile, nil
	}
	return locator.KindUnresolved, ambiguous("%s needs %s or %s", flags.path, flags.container, flags.share)
}
