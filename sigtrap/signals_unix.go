//go:build !windows

package sigtrap

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// fatalSignals is fixed for the process lifetime, in the order spine
// has always listed them.
var fatalSignals = []syscall.Signal{
	syscall.SIGINT,
	syscall.SIGPIPE,
	syscall.SIGSEGV,
	syscall.SIGBUS,
	syscall.SIGFPE,
	syscall.SIGQUIT,
	syscall.SIGSYS,
	syscall.SIGABRT,
}

func raise(sig syscall.Signal) {
	_ = unix.Kill(unix.Getpid(), unix.Signal(sig))
}
