// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package runner

import (
	"errors"
	"os"
	"syscall"
)

// sysProcAttr puts the child in its own process group, so that descendants
// such as a post-processor writing to our pipes are killed with it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killGroup sends SIGKILL to the whole process group led by ps.
func killGroup(ps *os.Process) error {
	err := syscall.Kill(-ps.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}

	return err
}

// signalGroup forwards s to the process group led by ps.
func signalGroup(ps *os.Process, s os.Signal) error {
	sig, ok := s.(syscall.Signal)
	if !ok {
		return ps.Signal(s)
	}

	err := syscall.Kill(-ps.Pid, sig)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}

	return err
}
