// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package minter

import (
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	blobsas "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	filesas "github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/sas"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/service"

	"github.com/tfctl/stctl/internal/locator"
	"github.com/tfctl/stctl/internal/log"
)

var (
	// ErrNoKey is returned when asked to sign without an account key.
	ErrNoKey = errors.New("an account key is required to mint a token")
	// ErrUnsupportedKind is returned for scopes that are not blob or file.
	ErrUnsupportedKind = errors.New("tokens can only be minted for blob and file endpoints")
	// ErrInvalidSnapshot is returned for snapshot ids that are not timestamps.
	ErrInvalidSnapshot = errors.New("snapshot is not an RFC 3339 timestamp")
)

// ParseSnapshot parses a snapshot id such as 2024-01-02T03:04:05.1234567Z.
func ParseSnapshot(id string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSnapshot, id)
	}
	return ts, nil
}

// SharedKeyMinter signs service SAS tokens locally with the account key. It
// makes no network calls.
type SharedKeyMinter struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewSharedKeyMinter returns a SharedKeyMinter using the wall clock.
func NewSharedKeyMinter() *SharedKeyMinter {
	return &SharedKeyMinter{Now: time.Now}
}

// Mint signs a token for scope.
func (m *SharedKeyMinter) Mint(key string, scope Scope, perms Permission, ttl time.Duration) (Token, error) {
	if key == "" {
		return Token{}, ErrNoKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if scope.Snapshot != "" {
		if _, err := ParseSnapshot(scope.Snapshot); err != nil {
			return Token{}, err
		}
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	expiry := now().UTC().Add(ttl)

	var (
		query string
		err   error
	)
	switch scope.Kind {
	case locator.KindBlob:
		query, err = signBlob(key, scope, perms, expiry)
	case locator.KindFile:
		query, err = signFile(key, scope, perms, expiry)
	case locator.KindS3, locator.KindUnresolved:
		err = fmt.Errorf("%w: %s", ErrUnsupportedKind, scope.Kind)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedKind, scope.Kind)
	}
	if err != nil {
		return Token{}, err
	}

	log.Debugf("minter: %s token for %s/%s/%s (sp=%s)", scope.Kind, scope.Account, scope.Container, scope.Path, perms)
	return Token{Query: query, ExpiresAt: expiry}, nil
}

func signBlob(key string, scope Scope, perms Permission, expiry time.Time) (string, error) {
	cred, err := azblob.NewSharedKeyCredential(scope.Account, key)
	if err != nil {
		return "", fmt.Errorf("invalid account key for %s: %w", scope.Account, err)
	}

	values := blobsas.BlobSignatureValues{
		Protocol:      blobsas.ProtocolHTTPS,
		ExpiryTime:    expiry,
		ContainerName: scope.Container,
	}

	if scope.IsContainer() {
		p := blobsas.ContainerPermissions{
			Read:   perms.Has(Read),
			Add:    perms.Has(Add),
			Create: perms.Has(Create),
			Write:  perms.Has(Write),
			List:   perms.Has(List),
		}
		values.Permissions = p.String()
	} else {
		p := blobsas.BlobPermissions{
			Read:   perms.Has(Read),
			Add:    perms.Has(Add),
			Create: perms.Has(Create),
			Write:  perms.Has(Write),
			List:   perms.Has(List),
		}
		values.Permissions = p.String()
		values.BlobName = scope.Path
		if scope.Snapshot != "" {
			ts, err := ParseSnapshot(scope.Snapshot)
			if err != nil {
				return "", err
			}
			values.SnapshotTime = ts
		}
	}

	qp, err := values.SignWithSharedKey(cred)
	if err != nil {
		return "", fmt.Errorf("failed to sign blob token: %w", err)
	}
	return qp.Encode(), nil
}

func signFile(key string, scope Scope, perms Permission, expiry time.Time) (string, error) {
	cred, err := service.NewSharedKeyCredential(scope.Account, key)
	if err != nil {
		return "", fmt.Errorf("invalid account key for %s: %w", scope.Account, err)
	}

	values := filesas.SignatureValues{
		Protocol:   filesas.ProtocolHTTPS,
		ExpiryTime: expiry,
		ShareName:  scope.Container,
	}

	// The file surface has no add permission; create covers it.
	if scope.IsContainer() {
		p := filesas.SharePermissions{
			Read:   perms.Has(Read),
			Create: perms.Has(Create) || perms.Has(Add),
			Write:  perms.Has(Write),
			List:   perms.Has(List),
		}
		values.Permissions = p.String()
	} else {
		p := filesas.FilePermissions{
			Read:   perms.Has(Read),
			Create: perms.Has(Create) || perms.Has(Add),
			Write:  perms.Has(Write),
		}
		values.Permissions = p.String()
		values.FilePath = scope.Path
	}

	qp, err := values.SignWithSharedKey(cred)
	if err != nil {
		return "", fmt.Errorf("failed to sign file token: %w", err)
	}
	return qp.Encode(), nil
}
