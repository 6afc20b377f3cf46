// This file is part of fifopacer.
//
// fifopacer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fifopacer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fifopacer.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/fifopacer/compositor"
	"github.com/jetsetilly/fifopacer/easyterm"
	"github.com/jetsetilly/fifopacer/gui/sdlgl"
	"github.com/jetsetilly/fifopacer/harness"
	"github.com/jetsetilly/fifopacer/logger"
	"github.com/jetsetilly/fifopacer/modalflag"
	"github.com/jetsetilly/fifopacer/paths"
	"github.com/jetsetilly/fifopacer/performance"
	"github.com/jetsetilly/fifopacer/prefs"
	"github.com/jetsetilly/fifopacer/presentation"
	"github.com/jetsetilly/fifopacer/statsview"
	"github.com/jetsetilly/fifopacer/version"
	"github.com/jetsetilly/fifopacer/wayland"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// register a function to be called before the program exits, whether
	// the exit is caused by reqQuit or an interrupt signal. functions are
	// called in reverse order of registration.
	//
	// takes a func() argument.
	reqAtExit stateReq = "ATEXIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// mainThreadBackend is a backend whose event loop must run on the main
// thread. The harness itself runs in the launch() goroutine and talks to the
// backend through the compositor.Backend interface.
type mainThreadBackend interface {
	compositor.Backend

	// Run blocks until the backend's event loop has ended
	Run() error

	// Interrupt asks the backend to end as soon as possible. Must be safe to
	// call from any goroutine.
	Interrupt()
}

// communication between the main() function and the launch() function. this
// is required because some window systems (notably ebiten) require window
// event handling to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (mainThreadBackend, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan mainThreadBackend
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (mainThreadBackend, error)),
		creation:      make(chan mainThreadBackend),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	var atExit []func()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			backend, err := creator()
			if err != nil {
				sync.creationError <- err
				continue
			}
			sync.creation <- backend

			// an interrupt while the backend has the main thread is
			// forwarded to the backend. the harness sees it as a close
			// request and ends normally
			stop := make(chan struct{})
			go func() {
				select {
				case <-intChan:
					backend.Interrupt()
				case <-stop:
				}
			}()

			if err := backend.Run(); err != nil {
				logger.Logf(logger.Allow, "main", "%v", err)
			}
			close(stop)

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqAtExit:
				if f, ok := state.args.(func()); ok {
					atExit = append(atExit, f)
				} else {
					panic(fmt.Sprintf("cannot convert %s arguments into func()", reqAtExit))
				}
			}
		}
	}

	for i := len(atExit) - 1; i >= 0; i-- {
		atExit[i]()
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate backend creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubMode("RUN", "run the harness on the wayland compositor")
	md.AddSubMode("SDL", "run the harness in an SDL window")
	md.AddSubMode("EBITEN", "run the harness in an ebiten window (build tag ebiten)")
	md.AddSubMode("PERFORMANCE", "measure frame rates with the simulated compositor")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *showVersion {
		fmt.Println(version.String())
		sync.state <- stateRequest{req: reqQuit}
		return
	}

	switch md.Mode() {
	case "SDL":
		err = runSDL(md)

	case "EBITEN":
		err = runEbiten(md, sync)

	case "PERFORMANCE":
		err = perform(md)

	default:
		err = runWayland(md, sync)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags shared by every mode
type common struct {
	mode      *string
	log       *bool
	prefs     *string
	config    *string
	memviz    *string
	statsview *bool
}

func addCommon(md *modalflag.Modes, defaultMode string) *common {
	return &common{
		mode:      md.AddString("mode", defaultMode, "initial presentation mode: fifo, mailbox"),
		log:       md.AddBool("log", false, "echo log to stderr"),
		prefs:     md.AddString("prefs", "", "preferences, overriding the preferences file. eg. \"window.width::640; log.echo::true\""),
		config:    md.AddString("config", "", fmt.Sprintf("preferences file (default %s)", paths.ResourcePath(paths.PrefsFile))),
		memviz:    md.AddString("memviz", "", "write a graphviz dump of the harness state to this file on exit"),
		statsview: md.AddBool("statsview", false, fmt.Sprintf("run stats server on %s", statsview.Address)),
	}
}

// preferences are loaded after the mode's flags have been parsed. flags take
// precedence over the preferences file and the -prefs string
func (c *common) preferences() (*harness.Preferences, error) {
	pth := *c.config
	if pth == "" {
		pth = paths.ResourcePath(paths.PrefsFile)
	}

	pref, err := harness.NewPreferences(pth)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(*c.prefs)
	err = pref.Load()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "main", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	if *c.mode != "" {
		if err := pref.Mode.Set(*c.mode); err != nil {
			return nil, err
		}
	}

	if *c.log {
		logger.SetEcho(os.Stderr)
	}

	if *c.statsview {
		statsview.Launch(os.Stdout)
	}

	return pref, nil
}

// run the harness on the backend until it ends
func (c *common) run(backend compositor.Backend, pref *harness.Preferences) error {
	cfg := pref.Config()
	cfg.Output = os.Stdout

	st, err := harness.NewState(backend, cfg)
	if err != nil {
		return err
	}

	err = st.Run()

	if *c.memviz != "" {
		f, ferr := os.Create(*c.memviz)
		if ferr != nil {
			logger.Logf(logger.Allow, "main", "memviz: %v", ferr)
		} else {
			st.Dump(f)
			_ = f.Close()
		}
	}

	return err
}

func runWayland(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md, "")
	tty := md.AddBool("tty", false, "read ESC and SPACE from the terminal as well as the window")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pref, err := c.preferences()
	if err != nil {
		return err
	}

	var opts []wayland.Option

	if *tty {
		term := &easyterm.Terminal{}
		if err := term.Initialise(os.Stdin); err != nil {
			return err
		}
		if err := term.CBreakMode(); err != nil {
			return err
		}
		defer term.CleanUp()

		// restore the terminal even if the program is interrupted
		sync.state <- stateRequest{req: reqAtExit, args: term.CleanUp}

		opts = append(opts, wayland.WithTerminal(term))
	}

	backend, err := wayland.Connect(opts...)
	if err != nil {
		return err
	}
	defer backend.Close()

	return c.run(backend, pref)
}

func runSDL(md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md, "")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pref, err := c.preferences()
	if err != nil {
		return err
	}

	// the SDL backend locks the OS thread of the calling goroutine. the
	// harness runs on the same goroutine
	backend, err := sdlgl.NewBackend(pref.Size())
	if err != nil {
		return err
	}
	defer backend.Close()

	return c.run(backend, pref)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md, "both")
	duration := md.AddDuration("duration", 5*time.Second, "run duration for each mode")
	refresh := md.AddDuration("refresh", 0, "simulated refresh interval (default is the headless.refresh preference)")
	profile := md.AddString("profile", "none", "run with profiling: cpu, mem, trace, all (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// "both" is not a presentation mode so it must be removed before the
	// preferences see it
	both := *c.mode == "both"
	if both {
		*c.mode = ""
	}

	pref, err := c.preferences()
	if err != nil {
		return err
	}

	if *c.memviz != "" {
		logger.Log(logger.Allow, "main", "memviz is ignored in PERFORMANCE mode")
	}

	cfg := performance.Config{
		Duration: *duration,
		Refresh:  *refresh,
	}

	if both {
		cfg.Modes = []presentation.Mode{presentation.Fifo, presentation.Mailbox}
	} else {
		cfg.Modes = []presentation.Mode{pref.Config().Mode}
	}

	if cfg.Refresh == 0 {
		cfg.Refresh = pref.RefreshInterval()
	}

	cfg.Width, cfg.Height = pref.Size()

	cfg.Profile, err = performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	_, err = performance.Check(md.Output, cfg)
	return err
}
