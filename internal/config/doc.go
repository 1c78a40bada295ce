// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional ytdlwrap configuration file.
//
// The file may be YAML (.yaml, .yml) or HCL (.hcl). In HCL, host environment
// variables are available as attributes of the env object:
//
//	binary_path = "${env.HOME}/bin/yt-dlp"
//	max_buffer  = 536870912
//	env = {
//	  LC_ALL = "C.UTF-8"
//	}
package config
