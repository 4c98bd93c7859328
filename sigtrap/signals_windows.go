//go:build windows

package sigtrap

import (
	"os"
	"syscall"
)

// SIGSYS does not exist on windows, the rest of the set does.
var fatalSignals = []syscall.Signal{
	syscall.SIGINT,
	syscall.SIGPIPE,
	syscall.SIGSEGV,
	syscall.SIGBUS,
	syscall.SIGFPE,
	syscall.SIGQUIT,
	syscall.SIGABRT,
}

// Windows cannot re-deliver a signal to the process, so exit the way
// the default action would.
func raise(sig syscall.Signal) {
	os.Exit(128 + int(sig))
}
