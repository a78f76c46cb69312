// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the compareround API.

# Routes

Round operations (operator key; force-confirm needs the chief key):

	POST /contests/{id}/compare/start
	POST /contests/{id}/compare/confirm
	POST /contests/{id}/compare/force-confirm
	POST /contests/{id}/compare/cancel
	POST /contests/{id}/compare/end

Read side:

	GET /contests/{id}/compare
	GET /contests/{id}/compare/tally
	GET /contests/{id}/compare/history
	GET /contests/{id}/compare/watch

Routes use Go 1.22+ method and wildcard patterns. All handlers except
the websocket watch endpoint are wrapped with request logging.
*/
package router
