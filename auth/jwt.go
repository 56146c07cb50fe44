// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gogama/httpcall/request"
	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures an Authenticator that signs a short-lived HS256
// JSON Web Token for every dispatch.
type JWTConfig struct {
	// Secret is the HMAC key. It is required.
	Secret []byte

	// Standard claims, each omitted when empty.
	Subject  string
	Issuer   string
	Audience []string

	// TTL is the token lifetime. Zero means five minutes.
	TTL time.Duration

	// Claims holds additional custom claims. Standard claims set above
	// take precedence.
	Claims map[string]interface{}
}

// JWT returns an Authenticator that sends a freshly signed bearer token
// with every request.
func JWT(cfg JWTConfig) Authenticator {
	return &jwtAuthenticator{cfg: cfg, now: time.Now}
}

type jwtAuthenticator struct {
	cfg JWTConfig
	now func() time.Time
}

func (a *jwtAuthenticator) Authenticate(_ context.Context, d *request.Descriptor) (*request.Descriptor, error) {
	s, err := a.issue()
	if err != nil {
		return nil, &Error{Scheme: "jwt", Err: err}
	}
	return d.WithHeader("Authorization", "Bearer "+s), nil
}

func (a *jwtAuthenticator) issue() (string, error) {
	if len(a.cfg.Secret) == 0 {
		return "", errors.New("secret required")
	}
	ttl := a.cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	now := a.now()
	claims := jwt.MapClaims{}
	for k, v := range a.cfg.Claims {
		claims[k] = v
	}
	if a.cfg.Subject != "" {
		claims["sub"] = a.cfg.Subject
	}
	if a.cfg.Issuer != "" {
		claims["iss"] = a.cfg.Issuer
	}
	if len(a.cfg.Audience) > 0 {
		claims["aud"] = a.cfg.Audience
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.cfg.Secret)
}
