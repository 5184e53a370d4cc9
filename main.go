/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/testbed"
)

func main() {
	cfg, err := engine.LoadApplicationConfig(engine.DefaultConfigFile)
	if err != nil {
		core.LogFatal(err.Error())
	}

	tb := testbed.NewTestGame(cfg)

	eng, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := eng.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the loop owns the GL context, so only ask it to stop
	go func() {
		<-sigCh
		eng.RequestShutdown()
	}()

	// run engine
	if err := eng.Run(); err != nil {
		core.LogFatal(err.Error())
	}
}
