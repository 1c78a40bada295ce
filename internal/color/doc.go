// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for console output.
// Colour is on when stderr is a terminal, unless NO_COLOR is set; FORCE_COLOR
// turns it on for pipes.
package color
