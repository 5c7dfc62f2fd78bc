package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const HELP = "Usage:\n\tcodie <command> [arguments]\n\nThe commands are:\n" +
	"\tbuild - transpile a CODIE tree file (JSON interchange) to Move source\n" +
	"\tglyph - transpile a compressed glyph file to Move source\n" +
	"\thash  - transpile a registered source by its content hash\n" +
	"\tpack  - compress a tree file into a glyph string and register it\n"

func main() {
	os.Exit(_main(os.Args))
}

func _main(args []string) int {
	if len(args) < 2 {
		fmt.Println("missing command")
		fmt.Print(HELP)
		return 1
	}

	switch args[1] {
	case "help", "-h", "--help":
		fmt.Print(HELP)
		return 0
	case "build":
		return buildSubcommand(args[2:])
	case "glyph":
		return glyphSubcommand(args[2:])
	case "hash":
		return hashSubcommand(args[2:])
	case "pack":
		return packSubcommand(args[2:])
	default:
		fmt.Printf("unknown command %q\n", args[1])
		fmt.Print(HELP)
		return 1
	}
}

func newLogger(levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("invocation", uuid.NewString()).
		Logger()
}
