// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package credstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// Kind enumerates the credential forms an endpoint can be authorized with.
type Kind int

const (
	None Kind = iota
	AccountKey
	ConnectionBundle
	SignedToken
	DelegatedLogin
)

func (k Kind) String() string {
	switch k {
	case AccountKey:
		return "key"
	case ConnectionBundle:
		return "connection-string"
	case SignedToken:
		return "sas"
	case DelegatedLogin:
		return "login"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ErrConflictingCredentials is returned when more than one credential was
// supplied for the same endpoint.
var ErrConflictingCredentials = errors.New("conflicting credentials")

// Credential is the single authoritative credential of an endpoint. Secret
// holds the account key (AccountKey, ConnectionBundle) or the signed token
// (SignedToken). Login is only set for DelegatedLogin.
type Credential struct {
	Kind    Kind
	Account string
	Secret  string
	Login   azcore.TokenCredential
}

// IsZero reports whether no credential has been resolved.
func (c Credential) IsZero() bool {
	return c.Kind == None
}

// HasKey reports whether the credential can sign tokens.
func (c Credential) HasKey() bool {
	return (c.Kind == AccountKey || c.Kind == ConnectionBundle) && c.Secret != ""
}

// Key returns the account key, or "" for kinds that do not carry one.
func (c Credential) Key() string {
	if c.HasKey() {
		return c.Secret
	}
	return ""
}

// Token returns the signed token without a leading '?', or "".
func (c Credential) Token() string {
	if c.Kind != SignedToken {
		return ""
	}
	return strings.TrimPrefix(c.Secret, "?")
}

// String never reveals the secret.
func (c Credential) String() string {
	if c.Kind == None {
		return "none"
	}
	return fmt.Sprintf("%s(account=%s)", c.Kind, c.Account)
}

// Explicit carries the credential flags given for one role of a copy.
type Explicit struct {
	Key              string
	ConnectionString string
	SAS              string
}

// IsZero reports whether no explicit credential was given.
func (e Explicit) IsZero() bool {
	return e.Key == "" && e.ConnectionString == "" && e.SAS == ""
}

// Count returns how many credential flags are set.
func (e Explicit) Count() int {
	n := 0
	for _, v := range []string{e.Key, e.ConnectionString, e.SAS} {
		if v != "" {
			n++
		}
	}
	return n
}

// Credential turns the explicit flags into a Credential for account. Supplying
// more than one flag is ErrConflictingCredentials.
func (e Explicit) Credential(account string) (Credential, error) {
	if e.Count() > 1 {
		return Credential{}, fmt.Errorf("%w: supply only one of account key, connection string or SAS token", ErrConflictingCredentials)
	}

	switch {
	case e.Key != "":
		return Credential{Kind: AccountKey, Account: account, Secret: e.Key}, nil
	case e.SAS != "":
		return Credential{Kind: SignedToken, Account: account, Secret: strings.TrimPrefix(e.SAS, "?")}, nil
	case e.ConnectionString != "":
		cs, err := ParseConnectionString(e.ConnectionString)
		if err != nil {
			return Credential{}, err
		}
		if account == "" {
			account = cs.AccountName
		}
		if cs.AccountName != "" && !strings.EqualFold(cs.AccountName, account) {
			return Credential{}, fmt.Errorf("%w: connection string is for account %q, not %q", ErrConflictingCredentials, cs.AccountName, account)
		}
		if cs.AccountKey != "" {
			return Credential{Kind: ConnectionBundle, Account: account, Secret: cs.AccountKey}, nil
		}
		return Credential{Kind: SignedToken, Account: account, Secret: strings.TrimPrefix(cs.SharedAccessSignature, "?")}, nil
	}

	return Credential{}, nil
}
