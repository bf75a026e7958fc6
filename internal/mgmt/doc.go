// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package mgmt is the management-plane boundary. It finds the resource group
// owning a storage account by scanning the accounts visible to the caller and
// then fetches the account's primary key.
//
// Each lookup is a single attempt. A missing account is a configuration
// problem and is reported immediately. The account to resource-group index
// may be cached on disk (see internal/cacheutil); keys never are.
package mgmt
