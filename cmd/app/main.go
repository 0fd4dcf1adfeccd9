package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/edlkit/edl2moseq/internal/core"
	"github.com/edlkit/edl2moseq/internal/logger"
	"github.com/edlkit/edl2moseq/internal/video"
)

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "edl2moseq"
	app.Usage = "An EDL to MoSeq recording converter"
	app.UsageText = "edl2moseq [command] path"
	app.HideHelp = true
	app.HideVersion = true
	app.ArgsUsage = ""
	app.Commands = []cli.Command{
		{
			Name:    "convert",
			Aliases: []string{"c"},
			Usage:   "Convert an EDL collection to the MoSeq layout",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "transcode, t",
					Usage: "re-encode the depth video to FFV1 instead of copying",
				},
				cli.BoolFlag{
					Name:  "no-progress",
					Usage: "disable the copy progress bar",
				},
			},
			Action: func(c *cli.Context) error {
				path, err := getPath(c)
				if err != nil {
					return err
				}
				_, err = core.Convert(context.Background(), path, core.Options{
					Transcode: c.Bool("transcode"),
					Progress:  !c.Bool("no-progress"),
				})
				return err
			},
		},
		{
			Name:    "inspect",
			Aliases: []string{"i"},
			Usage:   "Show what a conversion would use, without writing",
			Action: func(c *cli.Context) error {
				path, err := getPath(c)
				if err != nil {
					return err
				}
				return core.Inspect(path)
			},
		},
		{
			Name:    "encode",
			Aliases: []string{"e"},
			Usage:   "Re-encode a single video to the FFV1 target",
			Action: func(c *cli.Context) error {
				path, err := getPath(c)
				if err != nil {
					return err
				}
				res := video.Encode(context.Background(), path, path+".ffv1.avi")
				if res.Status != video.EncodeOK {
					return fmt.Errorf("encode failed: %v", res.Err)
				}
				log.Infof("Encoded to %s", res.Path)
				return nil
			},
		},
	}
}

func getPath(c *cli.Context) (string, error) {
	p := c.Args().Get(0)
	if p == "" {
		return "", fmt.Errorf("Path is required")
	}
	return p, nil
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
