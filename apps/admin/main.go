package main

import (
	"log"
	"os"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/navigation"
	logsvc "github.com/trezcool/thk/services/logger"
)

func main() {
	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(stdLogger, conf)

	// start CLI
	cli := newCommandLine(os.Stdout, navigation.DefaultMapper(), navigation.NewDispatcher(logger))
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
