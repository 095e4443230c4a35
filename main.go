package main

import (
	"os"

	"github.com/achilleasa/bvhviz/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sessionFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "strategy, s",
			Value: "top-down",
			Usage: "construction strategy (top-down, bottom-up)",
		},
		cli.StringFlag{
			Name:  "volume, k",
			Value: "box",
			Usage: "bounding volume kind (box, sphere)",
		},
		cli.BoolFlag{
			Name:  "empty",
			Usage: "start from an empty scene instead of the default scene",
		},
	}

	app := cli.NewApp()
	app.Name = "bvhviz"
	app.Usage = "build and replay bounding volume hierarchies"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
		cli.StringSliceFlag{
			Name:  "mute",
			Value: &cli.StringSlice{},
			Usage: "only log errors for this logger (e.g. \"bvh builder\")",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build all hierarchies for the default scene",
			Description: `
Build a top-down and a bottom-up hierarchy using both bounding boxes and
bounding spheres and display node counts and depths for each one.`,
			Flags:  sessionFlags[2:],
			Action: cmd.BuildTrees,
		},
		{
			Name:   "steps",
			Usage:  "list the construction steps of a hierarchy",
			Flags:  sessionFlags,
			Action: cmd.ShowSteps,
		},
		{
			Name:  "play",
			Usage: "replay the construction steps of a hierarchy without a renderer",
			Description: `
Simulate the frame loop of the visualizer: playback runs in continuous mode
and every frame advances it by dt seconds scaled by the playback speed.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "ticks",
					Value: 120,
					Usage: "number of frames to simulate",
				},
				cli.Float64Flag{
					Name:  "dt",
					Value: 0.25,
					Usage: "frame delta in seconds",
				},
				cli.Float64Flag{
					Name:  "speed",
					Value: 1.0,
					Usage: "playback speed (0.25, 0.5, 1, 2, 4)",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: -1,
					Usage: "deepest level to report; negative values report all levels",
				},
				cli.BoolFlag{
					Name:  "reverse",
					Usage: "play from the last step backwards",
				},
			}, sessionFlags...),
			Action: cmd.Play,
		},
		{
			Name:  "serve",
			Usage: "serve a session over a JSON API",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: ":8080",
					Usage: "listen address",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: 60,
					Usage: "frame loop updates per second",
				},
			}, sessionFlags...),
			Action: cmd.Serve,
		},
	}

	app.Run(os.Args)
}
