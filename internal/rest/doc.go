// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.
//
// go-shameless is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package rest serves the shameless split, combine and share codec
// operations over HTTP.
//
// # Server Setup
//
//	server, _ := rest.NewServer(&rest.Config{
//	    Address: "127.0.0.1:8339",
//	    Version: "1.0.0",
//	    Logger:  logging.DefaultLogger(),
//	})
//
//	go server.Start()
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	server.Stop(ctx)
//
// # API Endpoints
//
// Health:
//   - GET /health - Server status and version
//   - GET /health/live - Liveness probe
//   - GET /health/ready - Readiness probe (dictionary and scheme self-tests)
//   - GET /health/startup - Startup probe
//
// Metrics:
//   - GET /metrics - Prometheus exposition, when enabled
//
// Mnemonic splitting:
//   - POST /api/v1/split - Split a BIP39 mnemonic into word shares
//   - POST /api/v1/combine - Recover a BIP39 mnemonic from word shares
//
// Share codec:
//   - POST /api/v1/shares/encode - Render a hex fragment as a word share
//   - POST /api/v1/shares/decode - Parse a word share into its fragment
//
// # Request/Response Format
//
// Example split request:
//
//	POST /api/v1/split
//	{
//	  "mnemonic": "abandon abandon ... about",
//	  "threshold": 2,
//	  "shares": 3,
//	  "scheme": "gf256"
//	}
//
// Example encode request:
//
//	POST /api/v1/shares/encode
//	{
//	  "threshold": 3,
//	  "index": 0,
//	  "data": "abcdef1234"
//	}
//
// # Error Handling
//
// Malformed, invalid or corrupted input is answered with 400 Bad Request,
// anything else with 500 Internal Server Error:
//
//	{
//	  "error": "shamir39: checksum verification failed",
//	  "message": "failed to parse share #2",
//	  "code": 400
//	}
//
// Request bodies carry secret material. They are never logged, and
// responses are marked Cache-Control: no-store.
package rest
