// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tfctl/stctl/internal/cacheutil"
	"github.com/tfctl/stctl/internal/log"
)

// ErrAccountNotFound is returned when no visible storage account has the
// requested name.
var ErrAccountNotFound = errors.New("storage account not found")

// AccountSummary is one entry of the management-plane account listing.
type AccountSummary struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resourceGroup"`
	ID            string `json:"id"`
	Location      string `json:"location"`
}

// Querier is the management-plane boundary. ListAccounts returns every
// account visible to the caller in one pass; PrimaryKey returns the first
// access key of an account.
type Querier interface {
	ListAccounts(ctx context.Context) ([]AccountSummary, error)
	PrimaryKey(ctx context.Context, resourceGroup, account string) (string, error)
}

// FindResourceGroup scans accounts once for name.
func FindResourceGroup(accounts []AccountSummary, name string) (string, error) {
	for _, a := range accounts {
		if strings.EqualFold(a.Name, name) {
			return a.ResourceGroup, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrAccountNotFound, name)
}

// Service resolves account keys over a Querier. It satisfies
// credstore.KeyLookup. Failures are returned immediately and never retried.
type Service struct {
	q Querier

	cacheScope  string
	cacheMaxAge time.Duration
	accounts    []AccountSummary
	listed      bool
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithIndexCache persists the account listing (names and resource groups) on
// disk beneath scope, typically the subscription id. Keys are never written
// to disk.
func WithIndexCache(scope string, maxAge time.Duration) ServiceOption {
	return func(s *Service) {
		s.cacheScope = scope
		s.cacheMaxAge = maxAge
	}
}

// NewService returns a Service backed by q.
func NewService(q Querier, opts ...ServiceOption) *Service {
	s := &Service{q: q}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const indexKey = "accounts"

// AccountKey returns the primary key of account.
func (s *Service) AccountKey(ctx context.Context, account string) (string, error) {
	rg, cached, err := s.resourceGroup(ctx, account)
	if err != nil {
		return "", err
	}

	key, err := s.q.PrimaryKey(ctx, rg, account)
	if err != nil && cached && errors.Is(err, ErrAccountNotFound) {
		// A disk entry is only a hint; a miss is answered from a fresh listing.
		log.WithField("account", account).Debugf("mgmt: cached resource group %s is stale", rg)
		s.dropIndex()
		if rg, _, err = s.resourceGroup(ctx, account); err != nil {
			return "", err
		}
		key, err = s.q.PrimaryKey(ctx, rg, account)
	}
	if err != nil {
		return "", err
	}
	return key, nil
}

// resourceGroup consults the cached listing, listing accounts at most once.
// The bool reports whether the answer came from disk.
func (s *Service) resourceGroup(ctx context.Context, account string) (string, bool, error) {
	if s.accounts == nil && !s.listed {
		s.loadIndex()
	}
	if !s.listed {
		if rg, err := FindResourceGroup(s.accounts, account); err == nil {
			log.WithField("account", account).Debugf("mgmt: resource group %s (cached)", rg)
			return rg, true, nil
		}

		accounts, err := s.q.ListAccounts(ctx)
		if err != nil {
			return "", false, err
		}
		s.listed = true
		s.accounts = accounts
		log.Debugf("mgmt: listed %d accounts", len(accounts))
		s.saveIndex()
	}

	rg, err := FindResourceGroup(s.accounts, account)
	if err != nil {
		return "", false, err
	}
	return rg, false, nil
}

func (s *Service) cacheDirs() []string {
	return []string{"mgmt", s.cacheScope}
}

func (s *Service) loadIndex() {
	if s.cacheScope == "" {
		return
	}
	var accounts []AccountSummary
	if cacheutil.ReadJSON(s.cacheDirs(), indexKey, s.cacheMaxAge, &accounts) {
		s.accounts = accounts
	}
}

func (s *Service) saveIndex() {
	if s.cacheScope == "" {
		return
	}
	if err := cacheutil.WriteJSON(s.cacheDirs(), indexKey, s.accounts); err != nil {
		log.WithError(err).Warnf("failed to cache account index")
	}
}

func (s *Service) dropIndex() {
	s.accounts = nil
	if s.cacheScope == "" {
		return
	}
	if err := cacheutil.Remove(s.cacheDirs(), indexKey); err != nil {
		log.WithError(err).Warnf("failed to drop account index")
	}
}
