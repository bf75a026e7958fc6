// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/stctl/internal/credstore"
	"github.com/tfctl/stctl/internal/locator"
	"github.com/tfctl/stctl/internal/minter"
)

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type fakeLookup struct {
	keys  map[string]string
	calls map[string]int
}

func (f *fakeLookup) AccountKey(_ context.Context, account string) (string, error) {
	f.calls[account]++
	k, ok := f.keys[account]
	if !ok {
		return "", fmt.Errorf("account %s is not visible", account)
	}
	return k, nil
}

func (f *fakeLookup) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type mintCall struct {
	key   string
	scope minter.Scope
	perms minter.Permission
}

type fakeMinter struct {
	calls []mintCall
}

func (f *fakeMinter) Mint(key string, scope minter.Scope, perms minter.Permission, ttl time.Duration) (minter.Token, error) {
	f.calls = append(f.calls, mintCall{key: key, scope: scope, perms: perms})
	return minter.Token{
		Query:     "sv=x&sig=" + scope.Account + "-" + perms.String(),
		ExpiresAt: fixedNow.Add(ttl),
	}, nil
}

type fakePresigner struct {
	calls int
}

func (f *fakePresigner) PresignGet(_ context.Context, bucket, key string, ttl time.Duration) (string, time.Time, error) {
	f.calls++
	return "https://" + bucket + ".s3.amazonaws.com/" + key + "?X-Amz-Signature=abc", fixedNow.Add(ttl), nil
}

type fakeLogin struct{}

func (fakeLogin) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "t", ExpiresOn: fixedNow.Add(time.Hour)}, nil
}

type harness struct {
	lookup *fakeLookup
	minter *fakeMinter
	store  *credstore.Store
	r      *Resolver
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		lookup: &fakeLookup{
			keys:  map[string]string{"src": "key-src", "dst": "key-dst", "acct": "key-acct"},
			calls: map[string]int{},
		},
		minter: &fakeMinter{},
	}
	h.store = credstore.New(h.lookup)
	h.r = New(h.store, h.minter, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
	return h
}

func TestResolve_CrossAccountScenario(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Account: "src", Container: "c2", Path: "a/b.txt"},
		Input{Account: "dst", Container: "c1"},
	)
	require.NoError(t, err)

	assert.Equal(t, "https://src.blob.core.windows.net/c2/a%2Fb.txt?sv=x&sig=src-r", pair.Source.URI)
	assert.True(t, pair.Source.SignedTokenAppended)
	assert.True(t, pair.Source.Minted)
	assert.Equal(t, fixedNow.Add(minter.DefaultTTL), pair.Source.ExpiresAt)

	assert.Equal(t, 1, h.lookup.calls["src"])
	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, mintCall{
		key:   "key-src",
		scope: minter.Scope{Account: "src", Kind: locator.KindBlob, Container: "c2", Path: "a/b.txt"},
		perms: minter.Read,
	}, h.minter.calls[0])

	// The destination carries its key rather than a token.
	assert.Equal(t, "https://dst.blob.core.windows.net/c1", pair.Destination.URI)
	assert.False(t, pair.Destination.SignedTokenAppended)
	assert.Equal(t, credstore.AccountKey, pair.Destination.Credential.Kind)
	assert.Equal(t, "dst", pair.Context.Account)
}

func TestResolve_SameAccountSameKind(t *testing.T) {
	for _, src := range []Input{
		{Container: "c2", Path: "x.txt"},
		{Account: "acct", Container: "c2", Path: "x.txt"},
		{Account: "ACCT", Container: "c2", Path: "x.txt"},
	} {
		h := newHarness()
		pair, err := h.r.Resolve(context.Background(), src, Input{Account: "acct", Container: "c1", Key: "given"})
		require.NoError(t, err)

		assert.Zero(t, h.lookup.total())
		assert.Empty(t, h.minter.calls)
		assert.Equal(t, "https://acct.blob.core.windows.net/c2/x.txt", pair.Source.URI)
		assert.Equal(t, "given", pair.Source.Credential.Key())
		assert.False(t, pair.Source.SignedTokenAppended)
	}
}

func TestResolve_SameAccountReusesDestinationToken(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Container: "c2", Path: "x.txt"},
		Input{Account: "acct", Container: "c1", SAS: "?sv=1&sig=d"},
	)
	require.NoError(t, err)

	assert.Equal(t, "https://acct.blob.core.windows.net/c1?sv=1&sig=d", pair.Destination.URI)
	assert.True(t, pair.Destination.SignedTokenAppended)
	assert.Equal(t, "https://acct.blob.core.windows.net/c2/x.txt?sv=1&sig=d", pair.Source.URI)
	assert.True(t, pair.Source.SignedTokenAppended)
	assert.False(t, pair.Source.Minted)
	assert.Zero(t, h.lookup.total())
	assert.Empty(t, h.minter.calls)
}

func TestResolve_SameAccountCrossKind(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Account: "acct", Share: "s1", Path: "d/f.txt"},
		Input{Account: "acct", Container: "c1", Key: "given"},
	)
	require.NoError(t, err)

	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, "given", h.minter.calls[0].key)
	assert.Equal(t, locator.KindFile, h.minter.calls[0].scope.Kind)
	assert.Equal(t, "https://acct.file.core.windows.net/s1/d%2Ff.txt?sv=x&sig=acct-r", pair.Source.URI)
	assert.Zero(t, h.lookup.total())
}

func TestResolve_SameAccountCrossKindWithOnlyToken(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Share: "s1"},
		Input{Account: "acct", Container: "c1", SAS: "sv=1&sig=d"},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, h.lookup.calls["acct"])
	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, "key-acct", h.minter.calls[0].key)
	assert.Equal(t, minter.Read|minter.List, h.minter.calls[0].perms)
	assert.Equal(t, "https://acct.file.core.windows.net/s1?sv=x&sig=acct-rl", pair.Source.URI)
}

// TestResolve_AccountEqualityProperty checks that equal accounts of the same
// kind never reach the collaborators and that different accounts cost
// exactly one key query and one mint for the source.
func TestResolve_AccountEqualityProperty(t *testing.T) {
	accounts := []string{"acct", "src", "dst"}
	kinds := []Input{{Container: "c"}, {Share: "s"}}

	for _, dstAccount := range accounts {
		for _, srcAccount := range accounts {
			for _, k := range kinds {
				h := newHarness()
				dst := k
				dst.Account = dstAccount
				dst.Key = "explicit"
				src := k
				src.Account = srcAccount
				src.Path = "obj"

				_, err := h.r.Resolve(context.Background(), src, dst)
				require.NoError(t, err)

				if srcAccount == dstAccount {
					assert.Zero(t, h.lookup.total())
					assert.Empty(t, h.minter.calls)
				} else {
					assert.Equal(t, 1, h.lookup.calls[srcAccount])
					assert.Equal(t, 1, h.lookup.total())
					assert.Len(t, h.minter.calls, 1)
				}
			}
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	h := newHarness()
	src := Input{Account: "src", Container: "c2", Path: "a/b.txt"}
	dst := Input{Account: "dst", Container: "c1"}

	first, err := h.r.Resolve(context.Background(), src, dst)
	require.NoError(t, err)
	second, err := h.r.Resolve(context.Background(), src, dst)
	require.NoError(t, err)

	assert.Equal(t, first.Source.URI, second.Source.URI)
	assert.Equal(t, first.Destination.URI, second.Destination.URI)
	assert.Equal(t, 1, h.lookup.calls["src"])
	assert.Equal(t, 1, h.lookup.calls["dst"])
	assert.Len(t, h.minter.calls, 1)
}

func TestResolve_URLWithSAS(t *testing.T) {
	tests := []struct {
		uri, sas, want string
	}{
		{"https://acct.blob.example/c1/x.txt?foo=bar", "tok=1", "https://acct.blob.example/c1/x.txt?foo=bar&tok=1"},
		{"https://acct.blob.example/c1/x.txt?foo=bar", "?tok=1", "https://acct.blob.example/c1/x.txt?foo=bar&tok=1"},
		{"https://acct.blob.core.windows.net/c1/x.txt", "?tok=1", "https://acct.blob.core.windows.net/c1/x.txt?tok=1"},
		{"https://acct.blob.core.windows.net/c1/x.txt", "", "https://acct.blob.core.windows.net/c1/x.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h := newHarness()
			ep, err := h.r.ResolveSource(context.Background(), Input{URI: tt.uri, SAS: tt.sas}, Context{Account: "acct", Kind: locator.KindBlob})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ep.URI)
			assert.Equal(t, tt.sas != "", ep.SignedTokenAppended)
			assert.Zero(t, h.lookup.total())
			assert.Empty(t, h.minter.calls)
		})
	}
}

func TestResolve_URLDestination(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Container: "c2", Path: "x"},
		Input{URI: "https://acct.blob.core.windows.net/c1?sv=1&sig=embedded"},
	)
	require.NoError(t, err)

	assert.Equal(t, "https://acct.blob.core.windows.net/c1?sv=1&sig=embedded", pair.Destination.URI)
	assert.False(t, pair.Destination.SignedTokenAppended)
	assert.Equal(t, "acct", pair.Context.Account)
	// The embedded destination token is reused for a same-account source.
	assert.Equal(t, "https://acct.blob.core.windows.net/c2/x?sv=1&sig=embedded", pair.Source.URI)
	assert.Zero(t, h.lookup.total())
}

// A destination URL without a token gives the source nothing to reuse, so
// a same-account source costs one key query and one mint.
func TestResolve_URLDestinationWithoutToken(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Container: "c2", Path: "x"},
		Input{URI: "https://acct.blob.core.windows.net/c1"},
	)
	require.NoError(t, err)

	assert.True(t, pair.Context.Credential.IsZero())
	assert.Equal(t, 1, h.lookup.calls["acct"])
	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, "key-acct", h.minter.calls[0].key)
	assert.Equal(t, "https://acct.blob.core.windows.net/c2/x?sv=x&sig=acct-r", pair.Source.URI)
}

func TestResolve_FileDirectorySignsShare(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Account: "src", Share: "s", Path: "dir/"},
		Input{Account: "dst", Container: "c1", Key: "k"},
	)
	require.NoError(t, err)

	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, "s", h.minter.calls[0].scope.Container)
	assert.Empty(t, h.minter.calls[0].scope.Path)
	assert.Equal(t, minter.Read|minter.List, h.minter.calls[0].perms)
	assert.Equal(t, "https://src.file.core.windows.net/s/dir%2F?sv=x&sig=src-rl", pair.Source.URI)
}

func TestResolve_Errors(t *testing.T) {
	dst := Input{Account: "dst", Container: "c1", Key: "k"}

	tests := []struct {
		name    string
		src     Input
		dst     Input
		wantErr error
		msg     string
	}{
		{
			name:    "url and discrete",
			src:     Input{URI: "https://acct.blob.core.windows.net/c/x", Container: "c"},
			dst:     dst,
			wantErr: ErrAmbiguousSpecification,
			msg:     "--source-uri",
		},
		{
			name:    "neither form",
			src:     Input{Account: "src"},
			dst:     dst,
			wantErr: ErrAmbiguousSpecification,
			msg:     "no location given",
		},
		{
			name:    "container and share",
			src:     Input{Container: "c", Share: "s"},
			dst:     dst,
			wantErr: ErrAmbiguousSpecification,
		},
		{
			name:    "path only",
			src:     Input{Path: "x"},
			dst:     dst,
			wantErr: ErrAmbiguousSpecification,
		},
		{
			name:    "url with snapshot flag",
			src:     Input{URI: "https://acct.blob.core.windows.net/c/x", Snapshot: "s"},
			dst:     dst,
			wantErr: ErrAmbiguousSpecification,
		},
		{
			name:    "destination snapshot",
			src:     Input{Container: "c"},
			dst:     Input{Account: "dst", Container: "c1", Snapshot: "s", Key: "k"},
			wantErr: ErrAmbiguousSpecification,
		},
		{
			name:    "destination url snapshot",
			src:     Input{Container: "c"},
			dst:     Input{URI: "https://dst.blob.core.windows.net/c1/x?snapshot=s"},
			wantErr: ErrAmbiguousSpecification,
		},
		{
			name:    "url with key",
			src:     Input{URI: "https://acct.blob.core.windows.net/c/x", Key: "k"},
			dst:     dst,
			wantErr: ErrUnusedParametersWithURL,
			msg:     "--source-account-key",
		},
		{
			name:    "url with account and sas",
			src:     Input{URI: "https://acct.blob.core.windows.net/c/x", Account: "acct", SAS: "sv=1"},
			dst:     dst,
			wantErr: ErrUnusedParametersWithURL,
			msg:     "--source-account-name",
		},
		{
			name:    "malformed url",
			src:     Input{URI: "https://acct.blob.core.windows.net/"},
			dst:     dst,
			wantErr: ErrMalformedLocationURL,
		},
		{
			name:    "bare text as url",
			src:     Input{URI: "c1/x.txt"},
			dst:     dst,
			wantErr: ErrMalformedLocationURL,
		},
		{
			name:    "key without account",
			src:     Input{Container: "c", Key: "k"},
			dst:     dst,
			wantErr: ErrCredentialWithoutAccount,
			msg:     "--source-account-name",
		},
		{
			name:    "destination sas without account",
			src:     Input{Container: "c"},
			dst:     Input{Container: "c1", SAS: "sv=1"},
			wantErr: ErrCredentialWithoutAccount,
		},
		{
			name:    "destination without account",
			src:     Input{Container: "c"},
			dst:     Input{Container: "c1"},
			wantErr: ErrInsufficientCredential,
			msg:     "--account-name",
		},
		{
			name:    "unknown source account",
			src:     Input{Account: "ghost", Container: "c"},
			dst:     dst,
			wantErr: ErrAccountNotFound,
			msg:     "source storage account ghost not found",
		},
		{
			name:    "conflicting source credentials",
			src:     Input{Account: "src", Container: "c", Key: "k", SAS: "sv=1"},
			dst:     dst,
			wantErr: ErrConflictingCredentials,
		},
		{
			name:    "malformed source snapshot",
			src:     Input{Account: "src", Container: "c", Path: "p", Snapshot: "yesterday"},
			dst:     dst,
			wantErr: ErrInvalidSnapshot,
			msg:     "--source-snapshot",
		},
		{
			name:    "s3 destination",
			src:     Input{Container: "c"},
			dst:     Input{URI: "s3://bucket/key"},
			wantErr: ErrMalformedLocationURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			_, err := h.r.Resolve(context.Background(), tt.src, tt.dst)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestResolve_NoKeyLookup(t *testing.T) {
	r := New(credstore.New(nil), &fakeMinter{})
	_, err := r.Resolve(context.Background(), Input{Account: "src", Container: "c"}, Input{Account: "dst", Container: "c", Key: "k"})
	assert.ErrorIs(t, err, ErrInsufficientCredential)
	assert.Contains(t, err.Error(), "--source-account-key")
}

func TestResolve_SourceSASAssumesContextAccount(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Container: "c2", Path: "x", SAS: "sv=2&sig=s"},
		Input{Account: "dst", Container: "c1", Key: "k"},
	)
	require.NoError(t, err)
	assert.Equal(t, "https://dst.blob.core.windows.net/c2/x?sv=2&sig=s", pair.Source.URI)
	assert.Zero(t, h.lookup.total())
	assert.Empty(t, h.minter.calls)
}

func TestResolve_Snapshot(t *testing.T) {
	h := newHarness()

	pair, err := h.r.Resolve(context.Background(),
		Input{Account: "src", Container: "c", Path: "p", Snapshot: "2026-01-01T00:00:00Z"},
		Input{Account: "dst", Container: "c1", Key: "k"},
	)
	require.NoError(t, err)
	assert.Equal(t, "https://src.blob.core.windows.net/c/p?sv=x&sig=src-r&snapshot=2026-01-01T00%3A00%3A00Z", pair.Source.URI)
	assert.Equal(t, "2026-01-01T00:00:00Z", h.minter.calls[0].scope.Snapshot)

	// Parsing the result recovers the snapshot and token.
	loc, err := locator.Parse(pair.Source.URI, DefaultSuffix)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01T00:00:00Z", loc.Snapshot)
	assert.Equal(t, "sv=x&sig=src-r", loc.Token)
}

func TestResolve_Login(t *testing.T) {
	h := newHarness()
	h.store = credstore.New(h.lookup, credstore.WithLogin(fakeLogin{}))
	h.r = New(h.store, h.minter)

	pair, err := h.r.Resolve(context.Background(),
		Input{Account: "src", Share: "s", Path: "x"},
		Input{Account: "dst", Container: "c1", Key: "ignored"},
	)
	require.NoError(t, err)

	assert.Equal(t, credstore.DelegatedLogin, pair.Destination.Credential.Kind)
	assert.Equal(t, credstore.DelegatedLogin, pair.Source.Credential.Kind)
	assert.Equal(t, "https://src.file.core.windows.net/s/x", pair.Source.URI)
	assert.Zero(t, h.lookup.total())
	assert.Empty(t, h.minter.calls)
}

func TestResolve_RequireSignedTokens(t *testing.T) {
	h := newHarness(RequireSignedTokens())

	pair, err := h.r.Resolve(context.Background(),
		Input{Container: "c2", Path: "x"},
		Input{Account: "acct", Container: "c1", Key: "k"},
	)
	require.NoError(t, err)

	require.Len(t, h.minter.calls, 2)
	assert.Equal(t, minter.Write|minter.Add|minter.Create|minter.List, h.minter.calls[0].perms)
	assert.Equal(t, minter.Read, h.minter.calls[1].perms)
	assert.Equal(t, "https://acct.blob.core.windows.net/c1?sv=x&sig=acct-acwl", pair.Destination.URI)
	assert.Equal(t, "https://acct.blob.core.windows.net/c2/x?sv=x&sig=acct-r", pair.Source.URI)
	assert.True(t, pair.Destination.Minted)
}

func TestResolve_ContainerScope(t *testing.T) {
	h := newHarness(ContainerScope())

	pair, err := h.r.Resolve(context.Background(),
		Input{Account: "src", Container: "c2", Path: "dir"},
		Input{Account: "dst", Container: "c1", Key: "k"},
	)
	require.NoError(t, err)

	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, "", h.minter.calls[0].scope.Path)
	assert.Equal(t, minter.Read|minter.List, h.minter.calls[0].perms)
	assert.Equal(t, "https://src.blob.core.windows.net/c2/dir?sv=x&sig=src-rl", pair.Source.URI)
}

func TestResolve_CrossCloudIsNotSameAccount(t *testing.T) {
	h := newHarness()

	rc := Context{
		Account:    "acct",
		Suffix:     "core.chinacloudapi.cn",
		Kind:       locator.KindBlob,
		Credential: credstore.Credential{Kind: credstore.AccountKey, Account: "acct", Secret: "china-key"},
	}
	ep, err := h.r.ResolveSource(context.Background(), Input{Account: "acct", Container: "c", Path: "x"}, rc)
	require.NoError(t, err)

	assert.Equal(t, 1, h.lookup.calls["acct"])
	require.Len(t, h.minter.calls, 1)
	assert.Equal(t, "key-acct", h.minter.calls[0].key)
	assert.Equal(t, "https://acct.blob.core.windows.net/c/x?sv=x&sig=acct-r", ep.URI)
}

func TestResolve_Suffix(t *testing.T) {
	h := newHarness(WithSuffix("core.usgovcloudapi.net"), WithProtocol("HTTP"))

	pair, err := h.r.Resolve(context.Background(),
		Input{URI: "https://acct.blob.core.usgovcloudapi.net/c2/x"},
		Input{Account: "acct", Container: "c1", SAS: "sv=1"},
	)
	require.NoError(t, err)
	assert.Equal(t, "http://acct.blob.core.usgovcloudapi.net/c1?sv=1", pair.Destination.URI)
	assert.Equal(t, "https://acct.blob.core.usgovcloudapi.net/c2/x", pair.Source.URI)
}

func TestResolve_S3(t *testing.T) {
	p := &fakePresigner{}
	h := newHarness(WithPresigner(p))

	ep, err := h.r.ResolveSource(context.Background(), Input{URI: "s3://bucket/dir/obj"}, Context{})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/dir/obj?X-Amz-Signature=abc", ep.URI)
	assert.Equal(t, locator.KindS3, ep.Kind)
	assert.True(t, ep.SignedTokenAppended)
	assert.Equal(t, 1, p.calls)

	_, err = h.r.ResolveSource(context.Background(), Input{URI: "s3://bucket/"}, Context{})
	assert.ErrorIs(t, err, ErrMalformedLocationURL)

	_, err = h.r.ResolveSource(context.Background(), Input{URI: "s3://bucket/k", SAS: "x"}, Context{})
	assert.ErrorIs(t, err, ErrUnusedParametersWithURL)

	_, err = newHarness().r.ResolveSource(context.Background(), Input{URI: "s3://bucket/k"}, Context{})
	assert.ErrorIs(t, err, ErrInsufficientCredential)
}

func TestAssemble(t *testing.T) {
	r := New(credstore.New(nil), &fakeMinter{})

	assert.Equal(t, "https://a.blob.core.windows.net/c",
		r.assemble(Endpoint{Account: "a", Kind: locator.KindBlob, Container: "c"}))
	assert.Equal(t, "https://a.file.core.windows.net/s/d%2Ff%20g.txt?tok",
		r.assembleWith(Endpoint{Account: "a", Kind: locator.KindFile, Container: "s", Path: "d/f g.txt"}, "?tok"))
	assert.Equal(t, "https://a.blob.core.windows.net/c/x?snapshot=s1",
		r.assemble(Endpoint{Account: "a", Kind: locator.KindBlob, Container: "c", Path: "x", Snapshot: "s1"}))
}

func TestAppendToken(t *testing.T) {
	assert.Equal(t, "u?a=1&t=2", appendToken("u?a=1", "t=2"))
	assert.Equal(t, "u?t=2", appendToken("u", "?t=2"))
	assert.Equal(t, "u?t=2", appendToken("u?", "t=2"))
	assert.Equal(t, "u", appendToken("u", ""))
}

func TestCredentialFailurePassesThroughConnectionStringErrors(t *testing.T) {
	h := newHarness()
	_, _, err := h.r.ResolveDestination(context.Background(), Input{Container: "c", ConnectionString: "AccountName=x"})
	assert.True(t, errors.Is(err, credstore.ErrInvalidConnectionString))
}
