// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package credstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConnectionString is returned for connection strings that carry
// neither an account key nor a shared access signature.
var ErrInvalidConnectionString = errors.New("invalid connection string")

// ConnectionString holds the parts of a storage connection string that the
// resolver cares about. Unknown keys are ignored.
type ConnectionString struct {
	AccountName           string
	AccountKey            string
	SharedAccessSignature string
	EndpointSuffix        string
	Protocol              string
}

// ParseConnectionString parses "Key=Value;Key=Value" pairs. Values may contain
// '=' (account keys are base64), so only the first '=' splits.
func ParseConnectionString(s string) (ConnectionString, error) {
	var cs ConnectionString
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return ConnectionString{}, fmt.Errorf("%w: %q is not a key=value pair", ErrInvalidConnectionString, k)
		}
		switch strings.ToLower(k) {
		case "accountname":
			cs.AccountName = v
		case "accountkey":
			cs.AccountKey = v
		case "sharedaccesssignature":
			cs.SharedAccessSignature = v
		case "endpointsuffix":
			cs.EndpointSuffix = v
		case "defaultendpointsprotocol":
			cs.Protocol = v
		}
	}

	if cs.AccountKey == "" && cs.SharedAccessSignature == "" {
		return ConnectionString{}, fmt.Errorf("%w: neither AccountKey nor SharedAccessSignature present", ErrInvalidConnectionString)
	}
	if cs.AccountKey != "" && cs.AccountName == "" {
		return ConnectionString{}, fmt.Errorf("%w: AccountKey without AccountName", ErrInvalidConnectionString)
	}

	return cs, nil
}
