// Package sigtrap intercepts the fatal signals that would otherwise
// take spine down silently: it stamps a one-line diagnostic on stderr,
// dumps a backtrace for segmentation faults, and restores the default
// disposition so a repeated signal terminates the process normally.
package sigtrap

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Diag is the process-wide diagnostic state shared with the signal
// path. Exactly one logical owner exists per process; the first fatal
// signal normally terminates it, so concurrent deliveries racing on
// these fields are tolerated rather than synchronized.
type Diag struct {
	exitCode int64

	// Stack is the pre-allocated frame buffer for the segmentation
	// fault backtrace. Frames starts as the declared capacity and is
	// reduced to the number of frames actually captured.
	Stack  []uintptr
	Frames int
}

func NewDiag(depth uint) *Diag {
	if depth == 0 {
		return &Diag{}
	}
	return &Diag{Stack: make([]uintptr, depth), Frames: int(depth)}
}

func (d *Diag) SetExitCode(code int) {
	atomic.StoreInt64(&d.exitCode, int64(code))
}

func (d *Diag) ExitCode() int {
	return int(atomic.LoadInt64(&d.exitCode))
}

var messages = map[syscall.Signal]string{
	syscall.SIGABRT: "Spine Interrupted by Abort Signal",
	syscall.SIGINT:  "Spine Interrupted by Console Operator",
	syscall.SIGSEGV: "Spine Encountered a Segmentation Fault",
	syscall.SIGBUS:  "Spine Encountered a Bus Error",
	syscall.SIGFPE:  "Spine Encountered a Floating Point Exception",
	syscall.SIGQUIT: "Spine Encountered a Keyboard Quit Command",
	syscall.SIGPIPE: "Spine Encountered a Broken Pipe",
}

// Trap owns the fatal-signal registrations for the process. The heavy
// work runs on a per-signal dispatch goroutine fed by os/signal, so
// nothing allocates or locks inside the runtime's interrupt context.
type Trap struct {
	diag       *Diag
	out        io.Writer
	dateFormat func() string
	exit       func(int)

	mu    sync.Mutex
	owned map[syscall.Signal]chan os.Signal
}

type Option func(*Trap)

// WithWriter redirects the diagnostic output, stderr by default.
func WithWriter(w io.Writer) Option {
	return func(t *Trap) {
		t.out = w
	}
}

// WithExit replaces os.Exit on the segmentation-fault path.
func WithExit(fn func(int)) Option {
	return func(t *Trap) {
		t.exit = fn
	}
}

// New builds a trap around the process diagnostic state. dateFormat
// supplies the timestamp layout at delivery time, so a config reload
// is picked up by later signals.
func New(diag *Diag, dateFormat func() string, opts ...Option) *Trap {
	t := &Trap{
		diag:       diag,
		out:        os.Stderr,
		dateFormat: dateFormat,
		exit:       os.Exit,
		owned:      make(map[syscall.Signal]chan os.Signal),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Install registers the trap for every fatal signal whose disposition
// is still default. Notify registration is additive, so a handler
// installed elsewhere is never displaced, and a signal customized to
// "ignore" before Install is left alone. Installing twice is the same
// as installing once.
func (t *Trap) Install() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sig := range fatalSignals {
		if _, ok := t.owned[sig]; ok {
			continue
		}
		if signal.Ignored(sig) {
			continue
		}
		c := make(chan os.Signal, 1)
		signal.Notify(c, sig)
		t.owned[sig] = c
		go t.dispatch(sig, c)
	}
}

// Uninstall restores the default disposition for every signal the trap
// itself owns. Registrations made by unrelated code stay as they are.
// Safe to call more than once.
func (t *Trap) Uninstall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sig := range fatalSignals {
		c, ok := t.owned[sig]
		if !ok {
			continue
		}
		signal.Stop(c)
		close(c)
		delete(t.owned, sig)
	}
}

func (t *Trap) installed(sig syscall.Signal) bool {
	t.mu.Lock()
	_, ok := t.owned[sig]
	t.mu.Unlock()
	return ok
}

func (t *Trap) dispatch(sig syscall.Signal, c chan os.Signal) {
	for range c {
		t.handle(sig)
		// handle restored the default disposition, so re-delivering
		// the signal lets the OS default action finish the process.
		raise(sig)
	}
}

// handle runs the fatal-signal path for sig. The disposition reset
// comes first and unconditionally: a repeat of the same signal falls
// through to the OS default action instead of re-entering the trap.
func (t *Trap) handle(sig syscall.Signal) {
	signal.Reset(sig)
	t.disown(sig)

	t.diag.SetExitCode(int(sig))

	logtime := time.Now().Format(t.dateFormat())

	msg, ok := messages[sig]
	if !ok {
		msg = fmt.Sprintf("Spine Encountered An Unhandled Exception Signal Number: '%d'", int(sig))
	}
	_, _ = fmt.Fprintf(t.out, "%s FATAL: %s\n", logtime, msg)

	if sig == syscall.SIGSEGV {
		t.backtrace()
		t.exit(1)
	}
}

// disown drops the bookkeeping for a signal handled or reset. The
// channel close releases the dispatch goroutine; signal.Reset already
// detached it from delivery.
func (t *Trap) disown(sig syscall.Signal) {
	t.mu.Lock()
	if c, ok := t.owned[sig]; ok {
		delete(t.owned, sig)
		close(c)
	}
	t.mu.Unlock()
}

// backtrace prints the captured call stack, most recent frame first,
// in the "NNN: frame" layout operators grep for. Without a capture
// buffer the frame lines are skipped and only the diagnostic above
// remains.
func (t *Trap) backtrace() {
	d := t.diag
	if len(d.Stack) == 0 {
		return
	}
	// the header reports the buffer capacity, the frame lines report
	// what was actually captured
	_, _ = fmt.Fprintf(t.out, "Generating backtrace...%d line(s)...\n", d.Frames)
	n := runtime.Callers(2, d.Stack[:d.Frames])
	d.Frames = n
	if n == 0 {
		return
	}
	frames := runtime.CallersFrames(d.Stack[:n])
	for row := 0; ; row++ {
		frame, more := frames.Next()
		if frame.Function == "" {
			_, _ = fmt.Fprintf(t.out, "%3d: 0x%x\n", row, frame.PC)
		} else {
			_, _ = fmt.Fprintf(t.out, "%3d: %s (%s:%d)\n", row, frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
}
