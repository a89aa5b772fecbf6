package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ivlev/layeranim/internal/cycle"
	"github.com/ivlev/layeranim/internal/engine"
	"github.com/ivlev/layeranim/internal/export"
	"github.com/ivlev/layeranim/internal/layer"
	"github.com/ivlev/layeranim/internal/preview"
	"github.com/ivlev/layeranim/internal/project"
	"github.com/ivlev/layeranim/internal/system"
)

func frameFlag() cli.Flag {
	return &cli.IntFlag{
		Name:     "frame",
		Aliases:  []string{"f"},
		Usage:    "frame number",
		Required: true,
	}
}

func printLayers(t layer.Table) {
	for i := 1; i <= t.Total(); i++ {
		r := t.Layer(i)
		vis := "shown"
		if !r.Visible {
			vis = "hidden"
		}
		fmt.Printf("%3d %-16s x=%-6d y=%-6d opacity=%-3d %s\n", i, r.Name, r.X, r.Y, r.Opacity, vis)
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Print every layer's state at a frame",
		Flags: []cli.Flag{
			frameFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the resolved layer sheet to this file"},
		},
		Action: func(c *cli.Context) error {
			s, err := open(c, false)
			if err != nil {
				return cli.Exit(err, 1)
			}
			s.anim.ApplyFrame(c.Int("frame"))
			printLayers(s.layers)

			if out := c.String("out"); out != "" {
				if err := layer.WriteSheet(s.layers, out); err != nil {
					return cli.Exit(err, 1)
				}
				log.Info().Str("file", out).Msg("[+++] sheet written")
			}
			return nil
		},
	}
}

func keyframeCommand() *cli.Command {
	return &cli.Command{
		Name:  "keyframe",
		Usage: "Record the layer sheet as a key frame",
		Flags: []cli.Flag{frameFlag()},
		Action: func(c *cli.Context) error {
			s, err := open(c, true)
			if err != nil {
				return cli.Exit(err, 1)
			}
			frame := c.Int("frame")
			rep, err := s.anim.SetKeyFrame(frame)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if !rep.Clean() {
				log.Warn().Msg("[!] key frame did not fit completely, raise the limits in the configuration")
			}
			log.Info().Int("frame", frame).Int("layers", s.layers.Total()).Msg("[*] key frame set")
			return s.save()
		},
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Remove one key frame, or all of them",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frame", Aliases: []string{"f"}, Usage: "remove only this key frame"},
		},
		Action: func(c *cli.Context) error {
			s, err := open(c, false)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if c.IsSet("frame") {
				n := s.anim.RemoveKeyFrame(c.Int("frame"))
				log.Info().Int("frame", c.Int("frame")).Int("slots", n).Msg("[*] key frame removed")
			} else {
				s.anim.ClearKeyFrames()
				log.Info().Msg("[*] all key frames removed")
			}
			return s.save()
		},
	}
}

func cyclesCommand() *cli.Command {
	return &cli.Command{
		Name:      "cycles",
		Usage:     "Print the cycle table, or replace it from a text file",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "layer", Aliases: []string{"l"}, Usage: "print one layer's memberships instead"},
		},
		Action: func(c *cli.Context) error {
			s, err := open(c, true)
			if err != nil {
				return cli.Exit(err, 1)
			}

			if c.NArg() == 0 {
				if c.IsSet("layer") {
					printMembership(s.anim, c.Int("layer"))
					return nil
				}
				fmt.Print(cycle.FormatPool(s.anim.Pool()))
				return nil
			}

			b, err := os.ReadFile(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}
			pool, res := cycle.ParsePool(string(b), engine.CycleLimits(s.cfg.Limits))
			if res.Stopped || res.Dropped > 0 {
				log.Warn().Int("kept", res.Lines).Int("dropped", res.Dropped).Bool("stopped", res.Stopped).
					Int("line", res.StopAt).Msg("[!] cycle text only partly read")
			}
			if rep := s.anim.SetCycles(pool); rep.Lost() > 0 {
				log.Warn().Int("lost", rep.Lost()).Msg("[!] cycle memberships truncated")
			}
			log.Info().Int("cycles", pool.Len()).Msg("[*] cycles replaced")
			return s.save()
		},
	}
}

func printMembership(a *engine.Animation, i int) {
	for _, m := range a.Membership(i) {
		c, pos, ok := a.Pool().Lookup(m.Cycle)
		if !ok {
			continue
		}
		fmt.Printf("%3d %d-%d phase %d\n", pos+1, c.Frame0, c.Frame1, m.Phase)
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Render the export range as wireframe frames",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "start", Usage: "first frame (default: project setting)"},
			&cli.IntFlag{Name: "end", Usage: "last frame (default: project setting)"},
			&cli.StringFlag{Name: "dir", Usage: "output directory (default: project setting)"},
			&cli.StringFlag{Name: "format", Value: "png", Usage: "png or gif"},
			&cli.IntFlag{Name: "workers", Usage: "encoder workers (default: configuration)"},
		},
		Action: func(c *cli.Context) error {
			s, err := open(c, false)
			if err != nil {
				return cli.Exit(err, 1)
			}
			system.InitResourceLimits(2048)

			o := export.OptionsFrom(s.anim.Export, preview.OptionsFrom(s.cfg.Preview))
			o.Workers = s.cfg.Workers
			o.Log = log.Logger
			if c.IsSet("start") {
				o.Start = c.Int("start")
			}
			if c.IsSet("end") {
				o.End = c.Int("end")
			}
			if c.IsSet("dir") {
				o.Dir = c.String("dir")
			}
			if c.IsSet("workers") {
				o.Workers = c.Int("workers")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			switch strings.ToLower(c.String("format")) {
			case "png":
				if _, err := export.WritePNGs(ctx, s.anim, o); err != nil {
					return cli.Exit(err, 1)
				}
			case "gif":
				return writeGIF(ctx, s.anim, o)
			default:
				return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 1)
			}
			return nil
		},
	}
}

func writeGIF(ctx context.Context, a *engine.Animation, o export.Options) error {
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return cli.Exit(err, 1)
	}
	path := filepath.Join(o.Dir, strings.TrimSuffix(o.Prefix, "_")+".gif")
	f, err := os.Create(path)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := export.WriteGIF(ctx, a, f, o); err != nil {
		f.Close()
		return cli.Exit(err, 1)
	}
	if err := f.Close(); err != nil {
		return cli.Exit(err, 1)
	}
	log.Info().Str("file", path).Msg("[+++] gif written")
	return nil
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert an animation file between the text and YAML layouts",
		ArgsUsage: "IN OUT",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}
			in, out := c.Args().Get(0), c.Args().Get(1)

			p, sum, err := project.Load(in, engine.ProjectLimits(cfg.Limits))
			if err != nil {
				return cli.Exit(err, 1)
			}
			if sum.Truncated() {
				log.Warn().Str("file", in).Msg("[!] some animation lines were dropped")
			}
			if err := project.Save(out, p); err != nil {
				return cli.Exit(err, 1)
			}
			log.Info().Str("in", in).Str("out", out).Msg("[+++] converted")
			return nil
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Step through the export range, printing each frame",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "fps", Usage: "frames per second (default: configuration)"},
		},
		Action: func(c *cli.Context) error {
			s, err := open(c, false)
			if err != nil {
				return cli.Exit(err, 1)
			}
			fps := s.cfg.FPS
			if c.IsSet("fps") {
				fps = c.Int("fps")
			}
			if fps <= 0 {
				return cli.Exit("fps must be positive", 1)
			}

			p := engine.NewPlayer(s.anim, engine.Hooks{
				FrameRendered: func(frame int) {
					fmt.Printf("[>] frame %d\n", frame)
					printLayers(s.layers)
				},
			})

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Int("start", p.Start).Int("end", p.End).Int("fps", fps).Msg("[*] playing, Ctrl+C to stop")
			if err := p.Run(ctx, time.Second/time.Duration(fps)); err != nil && ctx.Err() == nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}
