// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package credstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/tfctl/stctl/internal/log"
)

// KeyLookup fetches the primary key of a storage account from the management
// plane. It is the only collaborator of the Store that performs I/O.
type KeyLookup interface {
	AccountKey(ctx context.Context, account string) (string, error)
}

// ErrNoKeyLookup is returned when a key is needed but the store was built
// without a KeyLookup.
var ErrNoKeyLookup = errors.New("no account key lookup configured")

// Store is the per-invocation credential cache. It is created once per command
// and handed to the resolver explicitly; nothing is persisted across commands.
// A Store is not safe for concurrent use.
type Store struct {
	keys  KeyLookup
	login azcore.TokenCredential

	creds    map[string]Credential
	failures map[string]error
	tokens   map[string]mintedToken
}

type mintedToken struct {
	query     string
	expiresAt time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithLogin marks a delegated login session as active for the invocation.
func WithLogin(tc azcore.TokenCredential) Option {
	return func(s *Store) { s.login = tc }
}

// New returns an empty Store. keys may be nil when no management-plane access
// is available; resolution then fails instead of querying.
func New(keys KeyLookup, opts ...Option) *Store {
	s := &Store{
		keys:     keys,
		creds:    map[string]Credential{},
		failures: map[string]error{},
		tokens:   map[string]mintedToken{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put records a resolved credential for its account.
func (s *Store) Put(c Credential) {
	if c.Account == "" || c.IsZero() {
		return
	}
	s.creds[normalize(c.Account)] = c
}

// Lookup returns the cached credential for account, if any.
func (s *Store) Lookup(account string) (Credential, bool) {
	c, ok := s.creds[normalize(account)]
	return c, ok
}

// Resolve returns the credential for account. The order is:
//  1. explicit flags for the role, used as-is (an active login wins, with a
//     warning)
//  2. the delegated login session
//  3. a previously resolved credential for the account
//  4. a single management-plane key lookup, cached for the invocation
func (s *Store) Resolve(ctx context.Context, account string, explicit Explicit) (Credential, error) {
	if !explicit.IsZero() {
		c, err := explicit.Credential(account)
		if err != nil {
			return Credential{}, err
		}
		if s.login != nil {
			log.Warnf("delegated login takes priority over the %s given for account %s", c.Kind, c.Account)
			return s.loginCredential(c.Account), nil
		}
		log.Debugf("credstore: explicit %s for %s", c.Kind, c.Account)
		return c, nil
	}

	if account == "" {
		return Credential{}, errors.New("cannot resolve a credential without an account name")
	}

	if s.login != nil {
		return s.loginCredential(account), nil
	}

	if c, ok := s.Lookup(account); ok {
		log.Debugf("credstore: cache hit for %s", account)
		return c, nil
	}
	if err, ok := s.failures[normalize(account)]; ok {
		return Credential{}, err
	}

	if s.keys == nil {
		return Credential{}, fmt.Errorf("account %s: %w", account, ErrNoKeyLookup)
	}

	log.Debugf("credstore: querying key for %s", account)
	key, err := s.keys.AccountKey(ctx, account)
	if err != nil {
		s.failures[normalize(account)] = err
		return Credential{}, err
	}

	c := Credential{Kind: AccountKey, Account: account, Secret: key}
	s.Put(c)
	return c, nil
}

// Token returns a previously minted token for scopeKey that is still valid at
// now.
func (s *Store) Token(scopeKey string, now time.Time) (string, time.Time, bool) {
	t, ok := s.tokens[scopeKey]
	if !ok || !now.Before(t.expiresAt) {
		return "", time.Time{}, false
	}
	return t.query, t.expiresAt, true
}

// PutToken caches a minted token until expiresAt.
func (s *Store) PutToken(scopeKey, query string, expiresAt time.Time) {
	s.tokens[scopeKey] = mintedToken{query: query, expiresAt: expiresAt}
}

func (s *Store) loginCredential(account string) Credential {
	return Credential{Kind: DelegatedLogin, Account: account, Login: s.login}
}

// Account names are case-insensitive.
func normalize(account string) string {
	return strings.ToLower(account)
}
