// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/tfctl/stctl/internal/log"
	"github.com/tfctl/stctl/internal/version"
)

// ErrNoSubscription is returned when the management plane is needed but no
// subscription id is known.
var ErrNoSubscription = errors.New("no subscription id; set --subscription or AZURE_SUBSCRIPTION_ID")

// ARMOptions configures an ARMQuerier.
type ARMOptions struct {
	SubscriptionID string
	Cloud          cloud.Configuration
	// Credential defaults to azidentity.NewDefaultAzureCredential.
	Credential azcore.TokenCredential
}

// ARMQuerier is the Querier backed by the Azure Resource Manager storage
// accounts API.
type ARMQuerier struct {
	subscription string
	client       *armstorage.AccountsClient
}

// NewARMQuerier builds the accounts client. No request is made until a
// Querier method is called.
func NewARMQuerier(opts ARMOptions) (*ARMQuerier, error) {
	if opts.SubscriptionID == "" {
		return nil, ErrNoSubscription
	}

	cred := opts.Credential
	if cred == nil {
		var err error
		cred, err = NewLoginCredential(opts.Cloud)
		if err != nil {
			return nil, err
		}
	}

	client, err := armstorage.NewAccountsClient(opts.SubscriptionID, cred, &arm.ClientOptions{
		ClientOptions: clientOptions(opts.Cloud),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}

	return &ARMQuerier{subscription: opts.SubscriptionID, client: client}, nil
}

// NewLoginCredential returns the default Azure credential chain (environment,
// workload identity, managed identity, Azure CLI) for the given cloud.
func NewLoginCredential(c cloud.Configuration) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: clientOptions(c),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create login credential: %w", err)
	}
	return cred, nil
}

// ListAccounts drains the accounts pager once.
func (a *ARMQuerier) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	var accounts []AccountSummary

	pager := a.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, FriendlyARM(err, ErrorContext{
				Subscription: a.subscription,
				Operation:    "list storage accounts",
			})
		}
		for _, acct := range page.Value {
			if acct == nil || acct.Name == nil || acct.ID == nil {
				continue
			}
			summary := AccountSummary{Name: *acct.Name, ID: *acct.ID}
			if acct.Location != nil {
				summary.Location = *acct.Location
			}
			if rid, err := arm.ParseResourceID(*acct.ID); err == nil {
				summary.ResourceGroup = rid.ResourceGroupName
			} else {
				log.WithError(err).Warnf("skipping account with unparseable id %s", *acct.ID)
				continue
			}
			accounts = append(accounts, summary)
		}
	}

	return accounts, nil
}

// PrimaryKey returns key1, or the first key listed when key1 is absent.
func (a *ARMQuerier) PrimaryKey(ctx context.Context, resourceGroup, account string) (string, error) {
	ectx := ErrorContext{
		Subscription:  a.subscription,
		ResourceGroup: resourceGroup,
		Account:       account,
		Operation:     "list account keys",
	}

	resp, err := a.client.ListKeys(ctx, resourceGroup, account, nil)
	if err != nil {
		return "", FriendlyARM(err, ectx)
	}

	var first string
	for _, k := range resp.Keys {
		if k == nil || k.Value == nil {
			continue
		}
		if k.KeyName != nil && *k.KeyName == "key1" {
			return *k.Value, nil
		}
		if first == "" {
			first = *k.Value
		}
	}
	if first == "" {
		return "", fmt.Errorf("%s: account %q returned no keys", ectx.Operation, account)
	}
	return first, nil
}

func clientOptions(c cloud.Configuration) policy.ClientOptions {
	return policy.ClientOptions{
		Cloud: c,
		Telemetry: policy.TelemetryOptions{
			ApplicationID: version.ApplicationID(),
		},
	}
}
