package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ivlev/layeranim/internal/config"
	"github.com/ivlev/layeranim/internal/engine"
	"github.com/ivlev/layeranim/internal/layer"
	"github.com/ivlev/layeranim/internal/project"
	"github.com/ivlev/layeranim/internal/system"
)

const defaultConfig = "layeranim.yaml"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("[-] failed")
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "layeranim"
	app.Usage = "Layer animation keyframes, cycles and frame export"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"LAYERANIM_CONFIG"},
			Value:   defaultConfig,
			Usage:   "path to tool configuration",
		},
		&cli.StringFlag{
			Name:    "sheet",
			Aliases: []string{"s"},
			Value:   "layers.yaml",
			Usage:   "layer sheet (YAML)",
		},
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "animation file, .txt or .yaml (default: latest project in the current directory)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Before = func(c *cli.Context) error {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if c.Bool("verbose") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		resolveCommand(),
		keyframeCommand(),
		clearCommand(),
		cyclesCommand(),
		exportCommand(),
		convertCommand(),
		playCommand(),
	}

	return app
}

// session is the state every command works on: the tool configuration, the
// layer sheet and the animation bound to it.
type session struct {
	cfg     *config.Config
	layers  layer.Slice
	anim    *engine.Animation
	project string
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) && !c.IsSet("config") {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func projectPath(c *cli.Context) (string, error) {
	if p := c.String("project"); p != "" {
		return p, nil
	}
	// The sheet and the configuration share the .yaml extension
	latest, err := system.FindLatestProject(".", c.String("sheet"), c.String("config"))
	if err != nil {
		return "", err
	}
	log.Info().Str("file", latest).Msg("[*] project selected")
	return latest, nil
}

// open loads configuration, layer sheet and project. A missing project file
// starts an empty animation when allowNew is set.
func open(c *cli.Context, allowNew bool) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	layers, err := layer.ReadSheet(c.String("sheet"))
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}

	anim := engine.New(layers, cfg.Limits)
	anim.Interp.Curviness = cfg.Curviness
	anim.Log = log.Logger

	s := &session{cfg: cfg, layers: layers, anim: anim}
	if s.project, err = projectPath(c); err != nil {
		return nil, err
	}

	p, sum, err := project.Load(s.project, engine.ProjectLimits(cfg.Limits))
	var derr *project.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && allowNew:
		log.Info().Str("file", s.project).Msg("[*] new project")
		return s, nil
	case errors.As(err, &derr) && !errors.Is(err, project.ErrHeader):
		log.Warn().Err(err).Msg("[!] project read partially")
	default:
		return nil, err
	}
	if sum.Truncated() {
		log.Warn().Str("file", s.project).Msg("[!] some animation lines were dropped")
	}

	if rep := anim.Load(p); rep.Lost() > 0 {
		log.Warn().Int("dropped", rep.Dropped).Int("invalid", rep.Invalid).Msg("[!] cycle memberships truncated")
	}
	return s, nil
}

func (s *session) save() error {
	if err := project.Save(s.project, s.anim.Project()); err != nil {
		return err
	}
	log.Info().Str("file", s.project).Msg("[+++] project saved")
	return nil
}
