// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package runner

import (
	"os"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func killGroup(ps *os.Process) error {
	return ps.Kill()
}

func signalGroup(ps *os.Process, s os.Signal) error {
	return ps.Signal(s)
}
