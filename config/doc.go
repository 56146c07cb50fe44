// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads httpcall client settings from an optional YAML
file and HTTPCALL_ environment variables, and builds the transport,
connectivity checker, authenticator and logger they describe.

A complete configuration file looks like this:

	transport:
	  kind: http2            # http, http2 or resty
	  timeout: 5s
	  min_tls_version: "1.3"
	  rate_limit: 20
	  burst: 5
	connectivity:
	  mode: probe            # always, interfaces or probe
	  probe_address: example.com:443
	  probe_timeout: 1s
	  cache_ttl: 10s
	auth:
	  type: oauth2           # none, basic, bearer, header, oauth2 or jwt
	  token_url: https://auth.example.com/token
	  client_id: my-client
	  client_secret: s3cret
	  scopes: read,write
	logging:
	  level: debug
	  format: json

Environment variables take precedence over the file. The key
connectivity.cache_ttl, for example, is overridden by
HTTPCALL_CONNECTIVITY_CACHE_TTL.
*/
package config
