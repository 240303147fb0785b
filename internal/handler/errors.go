// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration has no HTTP address, so there is no transport to build a
// handler for. It is treated as a fatal misconfiguration at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
