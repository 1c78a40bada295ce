// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package release

import "github.com/spf13/afero"

// FsFactory returns the filesystem installed binaries are written to.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
