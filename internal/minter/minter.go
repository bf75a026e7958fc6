// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package minter

import (
	"strings"
	"time"

	"github.com/tfctl/stctl/internal/locator"
)

// DefaultTTL is the lifetime of minted tokens. Tokens are handed straight to
// the transfer engine and never persisted.
const DefaultTTL = 15 * time.Minute

// Permission is a set of data-plane permissions.
type Permission uint8

const (
	Read Permission = 1 << iota
	Add
	Create
	Write
	List
)

// Has reports whether every bit of q is in p.
func (p Permission) Has(q Permission) bool {
	return p&q == q
}

// String renders the set in SAS order, e.g. "racwl".
func (p Permission) String() string {
	var b strings.Builder
	for _, f := range []struct {
		bit Permission
		c   byte
	}{{Read, 'r'}, {Add, 'a'}, {Create, 'c'}, {Write, 'w'}, {List, 'l'}} {
		if p.Has(f.bit) {
			b.WriteByte(f.c)
		}
	}
	return b.String()
}

// Role is the side of a copy an endpoint plays.
type Role int

const (
	Source Role = iota
	Destination
)

func (r Role) String() string {
	switch r {
	case Source:
		return "source"
	case Destination:
		return "destination"
	default:
		return "unknown"
	}
}

// Scope is the resource a token grants access to. An empty Path scopes the
// token to the whole container or share.
type Scope struct {
	Account   string
	Kind      locator.Kind
	Container string
	Path      string
	Snapshot  string
}

// IsContainer reports whether the scope is a whole container or share.
func (s Scope) IsContainer() bool {
	return s.Path == ""
}

// Key identifies a scope and permission set for token caching.
func (s Scope) Key(perms Permission) string {
	return strings.Join([]string{
		strings.ToLower(s.Account), s.Kind.String(), s.Container, s.Path, s.Snapshot, perms.String(),
	}, "|")
}

// PermissionsFor returns the minimum permissions a role needs on scope.
func PermissionsFor(role Role, scope Scope) Permission {
	var p Permission
	switch role {
	case Source:
		p = Read
	case Destination:
		p = Write | Add | Create
	}
	if scope.IsContainer() {
		p |= List
	}
	return p
}

// Token is a minted signed token.
type Token struct {
	Query     string // encoded query string, no leading '?'
	ExpiresAt time.Time
}

// Minter produces signed tokens from an account key.
type Minter interface {
	Mint(key string, scope Scope, perms Permission, ttl time.Duration) (Token, error)
}
