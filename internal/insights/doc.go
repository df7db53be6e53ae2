// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package insights provides the HTTP client for the hosted ASO insights
// service. The service answers natural-language questions about app store
// performance through a chat-completions style endpoint.
//
// The client handles authentication, client-side rate limiting, retry with
// exponential backoff for transient failures, and bounded response reads.
package insights
