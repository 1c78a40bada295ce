// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package release lists published releases of the download tool and installs a release binary.
package release
