// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ErrorContext carries input context for improving management API error
// messages.
type ErrorContext struct {
	Subscription  string
	ResourceGroup string
	Account       string
	Operation     string // e.g., "list storage accounts", "list account keys"
}

// FriendlyARM wraps a management-plane error with a contextual, user-friendly
// message while preserving the original error for errors.Is/As.
func FriendlyARM(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	op := nonEmpty(ctx.Operation, "request")
	sub := nonEmpty(ctx.Subscription, "<unknown>")

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s in subscription %s: authentication failed (401). Run 'az login' or set AZURE_CLIENT_ID, AZURE_TENANT_ID and AZURE_CLIENT_SECRET: %w",
				op, sub, err)

		case http.StatusForbidden:
			if ctx.Account != "" {
				return fmt.Errorf("%s: caller may not list keys of account %q (403); supply --account-key or --sas-token instead: %w",
					op, ctx.Account, err)
			}
			return fmt.Errorf("%s in subscription %s: caller is not authorized (403): %w", op, sub, err)

		case http.StatusNotFound:
			if ctx.Account != "" {
				return fmt.Errorf("%s: account %q not found in resource group %q (404): %w: %w",
					op, ctx.Account, nonEmpty(ctx.ResourceGroup, "<unknown>"), ErrAccountNotFound, err)
			}
			return fmt.Errorf("%s: subscription %s not found (404): %w", op, sub, err)
		}
	}

	return fmt.Errorf("%s in subscription %s for account=%q: %w", op, sub, ctx.Account, err)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
