package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/codie-lang/codie/internal/astjson"
	"github.com/codie-lang/codie/internal/config"
	"github.com/codie-lang/codie/internal/glyph"
	"github.com/codie-lang/codie/internal/move"
	"github.com/codie-lang/codie/internal/registry"
	"github.com/codie-lang/codie/internal/transpiler"
	"github.com/codie-lang/codie/internal/utils"
)

type commonFlags struct {
	configPath string
	out        string
	logLevel   string
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	flags := &commonFlags{}
	fs.StringVar(&flags.configPath, "config", "codie.yaml", "path of the YAML configuration file")
	fs.StringVar(&flags.out, "o", "", "output file for the rendered Move source (default: stdout)")
	fs.StringVar(&flags.logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	return flags
}

func buildSubcommand(args []string) int {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	flags := registerCommonFlags(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Println("usage: codie build [flags] <tree file>")
		return 1
	}

	logger := newLogger(flags.logLevel)

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error().Err(err).Msg("failed to read tree file")
		return 1
	}

	t := transpiler.New(transpiler.Options{
		Parser: astjson.Parser{},
		Logger: logger,
	})

	mod, err := t.TranspileSource(string(source))
	if err != nil {
		logger.Error().Err(err).Msg("transpilation failed")
		return 1
	}
	return emit(logger, *flags, mod)
}

func glyphSubcommand(args []string) int {
	fs := flag.NewFlagSet("glyph", flag.ExitOnError)
	flags := registerCommonFlags(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Println("usage: codie glyph [flags] <glyph file>")
		return 1
	}

	logger := newLogger(flags.logLevel)

	glyphs, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error().Err(err).Msg("failed to read glyph file")
		return 1
	}

	t := transpiler.New(transpiler.Options{
		Parser:     astjson.Parser{},
		Rehydrator: glyph.Rehydrator{},
		Logger:     logger,
	})

	mod, err := t.TranspileGlyphs(string(glyphs))
	if err != nil {
		logger.Error().Err(err).Msg("transpilation failed")
		return 1
	}
	return emit(logger, *flags, mod)
}

func hashSubcommand(args []string) int {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	flags := registerCommonFlags(fs)
	registryPath := fs.String("registry", "", "path of the registry file (overrides the config)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Println("usage: codie hash [flags] <content hash>")
		return 1
	}

	logger := newLogger(flags.logLevel)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return 1
	}

	path := cfg.Registry
	if *registryPath != "" {
		path = *registryPath
	}
	if path == "" {
		logger.Error().Msg("no registry file configured")
		return 1
	}

	reg, err := registry.OpenFile(path)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open registry")
		return 1
	}

	t := transpiler.New(transpiler.Options{
		Parser:   astjson.Parser{},
		Registry: reg,
		Logger:   logger,
	})

	mod, transpileErr := t.TranspileHash(fs.Arg(0))
	if err := utils.CombineErrors(transpileErr, reg.Close()); err != nil {
		logger.Error().Err(err).Msg("transpilation failed")
		return 1
	}
	return emit(logger, *flags, mod)
}

func packSubcommand(args []string) int {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	flags := registerCommonFlags(fs)
	registryPath := fs.String("registry", "", "path of the registry file (overrides the config)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Println("usage: codie pack [flags] <tree file>")
		return 1
	}

	logger := newLogger(flags.logLevel)

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error().Err(err).Msg("failed to read tree file")
		return 1
	}

	fmt.Println(glyph.Pack(string(source)))

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return 1
	}

	path := cfg.Registry
	if *registryPath != "" {
		path = *registryPath
	}
	if path == "" {
		return 0
	}

	reg, err := registry.OpenFile(path)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open registry")
		return 1
	}
	defer reg.Close()

	hash, err := reg.Put(string(source))
	if err != nil {
		logger.Error().Err(err).Msg("failed to register source")
		return 1
	}
	fmt.Println(hash)
	return 0
}

func emit(logger zerolog.Logger, flags commonFlags, mod *move.Module) int {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return 1
	}

	if cfg.Module != "" {
		mod.Name = cfg.Module
	}

	out := cfg.Out
	if flags.out != "" {
		out = flags.out
	}

	if out == "" {
		fmt.Print(mod.Source())
		return 0
	}

	if err := os.WriteFile(out, []byte(mod.Source()), 0644); err != nil {
		logger.Error().Err(err).Msg("failed to write output file")
		return 1
	}

	logger.Info().Str("path", out).Msg("wrote Move source")
	return 0
}
