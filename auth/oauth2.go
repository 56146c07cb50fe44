// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gogama/httpcall/request"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// NewOAuth2 returns an Authenticator that obtains tokens from ts and
// sends them in the Authorization header.
//
// The token type reported by the source is used as the authorization
// scheme, defaulting to Bearer. Token caching and refresh are the
// source's business; wrap ts with oauth2.ReuseTokenSource if it does not
// cache.
func NewOAuth2(ts oauth2.TokenSource) Authenticator {
	if ts == nil {
		panic("httpcall/auth: nil token source")
	}
	return &oauth2Authenticator{source: ts}
}

// ClientCredentials returns a caching token source for the OAuth2
// client credentials grant. Tokens are fetched using ctx, which should
// outlive every call using the source.
func ClientCredentials(ctx context.Context, cfg *clientcredentials.Config) oauth2.TokenSource {
	return cfg.TokenSource(ctx)
}

type oauth2Authenticator struct {
	source oauth2.TokenSource
}

func (a *oauth2Authenticator) Authenticate(_ context.Context, d *request.Descriptor) (*request.Descriptor, error) {
	tok, err := a.source.Token()
	if err != nil {
		return nil, &Error{Scheme: "oauth2", Err: err}
	}
	if tok == nil || !tok.Valid() {
		return nil, &Error{Scheme: "oauth2", Err: errors.New("invalid token")}
	}
	return d.WithHeader("Authorization", tok.Type()+" "+strings.TrimSpace(tok.AccessToken)), nil
}
