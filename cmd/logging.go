package cmd

import (
	"github.com/achilleasa/bvhviz/log"
	"github.com/urfave/cli"
)

var logger = log.New("bvhviz")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			logger.Warningf("ignoring log level %q: %s", name, err.Error())
		} else {
			log.SetLevel(level)
		}
	}

	for _, module := range ctx.GlobalStringSlice("mute") {
		log.SetModuleLevel(log.Error, module)
	}
}
