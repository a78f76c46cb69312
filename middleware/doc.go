// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

  - WithLogging: request/completion logging via slog
  - JSONResponse / ErrorResponse: JSON writers
  - ParseJSONBody: request body decoding
  - CORS: cross-origin support for the console frontend
  - GetClientIP: client address extraction behind proxies
*/
package middleware
