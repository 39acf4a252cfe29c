// Package dispatchtest provides a fake ollama for tests by re-executing the
// running test binary.
//
// A test package opts in from TestMain:
//
//	func TestMain(m *testing.M) {
//		dispatchtest.RunIfHelper()
//		os.Exit(m.Run())
//	}
package dispatchtest

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sudo-self/sudollama/internal/dispatch"
)

// Environment variables read by the fake process
const (
	envHelper = "SUDOLLAMA_FAKE_OLLAMA"
	envStdout = "SUDOLLAMA_FAKE_STDOUT"
	envStderr = "SUDOLLAMA_FAKE_STDERR"
	envExit   = "SUDOLLAMA_FAKE_EXIT"
	envSleep  = "SUDOLLAMA_FAKE_SLEEP"
)

// Mode selects what the fake process does
type Mode string

const (
	// Succeed writes Stdout and exits 0
	Succeed Mode = "succeed"
	// Fail writes Stderr and exits with ExitCode
	Fail Mode = "fail"
	// Echo writes its arguments joined by "|" and exits 0
	Echo Mode = "echo"
	// Hang sleeps for Sleep before succeeding
	Hang Mode = "hang"
)

// Behavior describes one fake invocation
type Behavior struct {
	Mode     Mode
	Stdout   string
	Stderr   string
	ExitCode int
	Sleep    time.Duration
}

// Options returns dispatcher options that run the fake instead of ollama.
// The default leading arguments are kept so tests can inspect them.
func Options(b Behavior) []dispatch.Option {
	env := []string{
		envHelper + "=" + string(b.Mode),
		envStdout + "=" + b.Stdout,
		envStderr + "=" + b.Stderr,
		envExit + "=" + strconv.Itoa(b.ExitCode),
		envSleep + "=" + b.Sleep.String(),
	}
	return []dispatch.Option{
		dispatch.WithExecutable(os.Args[0]),
		dispatch.WithEnv(env...),
	}
}

// New returns a Dispatcher backed by the fake
func New(b Behavior, extra ...dispatch.Option) *dispatch.Dispatcher {
	return dispatch.New(append(Options(b), extra...)...)
}

// RunIfHelper turns the current process into the fake when the test binary
// was started by a Dispatcher built with Options. It never returns in that case.
func RunIfHelper() {
	mode := Mode(os.Getenv(envHelper))
	if mode == "" {
		return
	}

	switch mode {
	case Succeed:
		fmt.Fprint(os.Stdout, os.Getenv(envStdout))
		os.Exit(0)
	case Fail:
		fmt.Fprint(os.Stderr, os.Getenv(envStderr))
		code, err := strconv.Atoi(os.Getenv(envExit))
		if err != nil || code == 0 {
			code = 1
		}
		os.Exit(code)
	case Echo:
		fmt.Fprint(os.Stdout, strings.Join(os.Args[1:], "|"))
		os.Exit(0)
	case Hang:
		d, err := time.ParseDuration(os.Getenv(envSleep))
		if err != nil {
			d = time.Minute
		}
		time.Sleep(d)
		fmt.Fprint(os.Stdout, os.Getenv(envStdout))
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown fake mode %q", mode)
		os.Exit(2)
	}
}
