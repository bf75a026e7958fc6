// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"fmt"

	"github.com/tfctl/stctl/internal/credstore"
	"github.com/tfctl/stctl/internal/locator"
	"github.com/tfctl/stctl/internal/minter"
)

// Every resolution failure wraps exactly one of these. None are transient.
var (
	ErrAmbiguousSpecification   = errors.New("ambiguous location specification")
	ErrMalformedLocationURL     = locator.ErrMalformedURL
	ErrCredentialWithoutAccount = errors.New("credential given without an account name")
	ErrUnusedParametersWithURL  = errors.New("unused parameters given in addition to a URL")
	ErrAccountNotFound          = errors.New("account lookup failed")
	ErrInsufficientCredential   = errors.New("no usable credential")
	ErrConflictingCredentials   = credstore.ErrConflictingCredentials
	ErrInvalidSnapshot          = minter.ErrInvalidSnapshot
)

func ambiguous(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAmbiguousSpecification, fmt.Sprintf(format, args...))
}

func insufficient(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInsufficientCredential, fmt.Sprintf(format, args...))
}
