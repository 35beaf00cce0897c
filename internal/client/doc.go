// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is a typed client of the operator HTTP API. The syncctl
// command line tool is built on it.
package client
