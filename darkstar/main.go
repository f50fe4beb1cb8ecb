package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/darkstar-engine/darkstar/utils"
	"github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configuration, err := utils.LoadConfiguration(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		logrus.Fatalf("%+v", err)
	}

	log, err := utils.NewLogger(configuration.Log, os.Stderr)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	app, err := NewApplication(log, configuration)
	if err != nil {
		if app != nil {
			app.Close()
		}
		log.Fatalf("%+v", err)
	}

	err = app.Run()
	app.Close()
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
