package sigtrap

import (
	"bytes"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLayout contains no reference-time tokens, so formatting always
// yields the literal string and output can be compared byte for byte.
const stubLayout = "TS"

func stubDateFormat() string {
	return stubLayout
}

func ownedCount(t *Trap) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.owned)
}

func TestInstallIdempotent(t *testing.T) {
	trap := New(NewDiag(0), stubDateFormat, WithWriter(&bytes.Buffer{}))
	defer trap.Uninstall()

	trap.Install()
	first := ownedCount(trap)
	assert.Equal(t, len(fatalSignals), first)
	for _, sig := range fatalSignals {
		assert.True(t, trap.installed(sig), "signal %d not installed", int(sig))
	}

	trap.Install()
	assert.Equal(t, first, ownedCount(trap))
}

func TestUninstallRoundTrip(t *testing.T) {
	trap := New(NewDiag(0), stubDateFormat, WithWriter(&bytes.Buffer{}))

	trap.Install()
	trap.Uninstall()
	assert.Equal(t, 0, ownedCount(trap))

	// second uninstall sees nothing left to revert
	trap.Uninstall()
	assert.Equal(t, 0, ownedCount(trap))
}

func TestInstallSkipsCustomizedDisposition(t *testing.T) {
	signal.Ignore(syscall.SIGPIPE)
	defer signal.Reset(syscall.SIGPIPE)

	trap := New(NewDiag(0), stubDateFormat, WithWriter(&bytes.Buffer{}))
	defer trap.Uninstall()

	trap.Install()
	assert.False(t, trap.installed(syscall.SIGPIPE))
	assert.Equal(t, len(fatalSignals)-1, ownedCount(trap))

	trap.Uninstall()
	assert.True(t, signal.Ignored(syscall.SIGPIPE), "uninstall must not touch a disposition it does not own")
}

func TestHandleMessages(t *testing.T) {
	tests := []struct {
		name string
		sig  syscall.Signal
		want string
	}{
		{name: "abort", sig: syscall.SIGABRT, want: "Spine Interrupted by Abort Signal"},
		{name: "interrupt", sig: syscall.SIGINT, want: "Spine Interrupted by Console Operator"},
		{name: "bus error", sig: syscall.SIGBUS, want: "Spine Encountered a Bus Error"},
		{name: "floating point exception", sig: syscall.SIGFPE, want: "Spine Encountered a Floating Point Exception"},
		{name: "keyboard quit", sig: syscall.SIGQUIT, want: "Spine Encountered a Keyboard Quit Command"},
		{name: "broken pipe", sig: syscall.SIGPIPE, want: "Spine Encountered a Broken Pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			diag := NewDiag(0)
			exits := []int{}
			trap := New(diag, stubDateFormat, WithWriter(buf), WithExit(func(code int) {
				exits = append(exits, code)
			}))

			trap.handle(tt.sig)

			assert.Equal(t, stubLayout+" FATAL: "+tt.want+"\n", buf.String())
			assert.Empty(t, exits, "non-segfault signal must not force an exit")
			assert.Equal(t, int(tt.sig), diag.ExitCode())
		})
	}
}

func TestHandleUnmappedSignal(t *testing.T) {
	buf := &bytes.Buffer{}
	diag := NewDiag(0)
	trap := New(diag, stubDateFormat, WithWriter(buf), WithExit(func(int) {}))

	trap.handle(syscall.SIGTERM)

	want := fmt.Sprintf("%s FATAL: Spine Encountered An Unhandled Exception Signal Number: '%d'\n", stubLayout, int(syscall.SIGTERM))
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int(syscall.SIGTERM), diag.ExitCode())
}

// disarmCheckWriter records whether the trap still owned the signal
// when the first diagnostic byte was written.
type disarmCheckWriter struct {
	bytes.Buffer
	trap            *Trap
	sig             syscall.Signal
	checked         bool
	ownedAtFirstOut bool
}

func (w *disarmCheckWriter) Write(p []byte) (int, error) {
	if !w.checked {
		w.checked = true
		w.ownedAtFirstOut = w.trap.installed(w.sig)
	}
	return w.Buffer.Write(p)
}

func TestHandleSegmentationFault(t *testing.T) {
	const depth = 8
	diag := NewDiag(depth)
	w := &disarmCheckWriter{sig: syscall.SIGSEGV}
	exits := []int{}
	trap := New(diag, stubDateFormat, WithWriter(w), WithExit(func(code int) {
		exits = append(exits, code)
	}))
	w.trap = trap

	trap.Install()
	defer trap.Uninstall()
	trap.handle(syscall.SIGSEGV)

	require.True(t, w.checked)
	assert.False(t, w.ownedAtFirstOut, "disposition must be reset before any output")
	assert.False(t, trap.installed(syscall.SIGSEGV))

	assert.Equal(t, []int{1}, exits)
	assert.Equal(t, int(syscall.SIGSEGV), diag.ExitCode())

	lines := strings.Split(strings.TrimRight(w.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, stubLayout+" FATAL: Spine Encountered a Segmentation Fault", lines[0])
	assert.Equal(t, fmt.Sprintf("Generating backtrace...%d line(s)...", depth), lines[1])

	frameLines := lines[2:]
	assert.LessOrEqual(t, len(frameLines), depth, "printed frames must not exceed capacity")
	assert.Equal(t, diag.Frames, len(frameLines), "frame count must be reduced to frames actually captured")
	for _, line := range frameLines {
		assert.Regexp(t, `^ *\d+: `, line)
	}
	// most recent frame first
	assert.Contains(t, frameLines[0], "sigtrap")
}

func TestHandleSegmentationFaultWithoutBacktraceBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	diag := NewDiag(0)
	exits := []int{}
	trap := New(diag, stubDateFormat, WithWriter(buf), WithExit(func(code int) {
		exits = append(exits, code)
	}))

	trap.handle(syscall.SIGSEGV)

	assert.Equal(t, stubLayout+" FATAL: Spine Encountered a Segmentation Fault\n", buf.String())
	assert.Equal(t, []int{1}, exits, "segmentation fault exits even without backtrace support")
}

func TestHandleDisarmsInstalledSignal(t *testing.T) {
	buf := &bytes.Buffer{}
	trap := New(NewDiag(0), stubDateFormat, WithWriter(buf), WithExit(func(int) {}))

	trap.Install()
	defer trap.Uninstall()
	require.True(t, trap.installed(syscall.SIGPIPE))

	trap.handle(syscall.SIGPIPE)
	assert.False(t, trap.installed(syscall.SIGPIPE), "handled signal must fall back to the default disposition")

	// the remaining signals stay installed until Uninstall
	assert.Equal(t, len(fatalSignals)-1, ownedCount(trap))
}
