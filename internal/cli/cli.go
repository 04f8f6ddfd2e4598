// Package cli parses the command-line surface: a mandatory file path
// and an optional color flag. Unknown flags get a fuzzy "did you
// mean" hint instead of a bare error.
package cli

import (
	"errors"
	"fmt"
	"io"

	"hexline/internal/fuzzy"
)

// ErrHelp is returned when the user asked for the usage text.
var ErrHelp = errors.New("help requested")

// Args is the validated result handed to the editor core.
type Args struct {
	Colors bool
	Path   string
}

type flagSpec struct {
	name        string
	short       byte
	description string
	takesValue  bool
}

var flags = []flagSpec{
	{"help", 'h', "Prints the help menu", false},
	{"colors", 'c', "Enables ansi colors", false},
	{"path", 'p', "The file to edit", true},
}

// Parse walks argv (without the program name). A missing file path is
// fatal; an unknown flag errors with the closest known flag name.
func Parse(argv []string) (Args, error) {
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		spec, ok := lookup(arg)
		if !ok {
			names := make([]string, len(flags))
			for j, f := range flags {
				names[j] = f.name
			}
			return args, fmt.Errorf("unknown option %q, did you mean %q?",
				arg, "--"+fuzzy.Suggest(arg, names))
		}

		switch spec.name {
		case "help":
			return args, ErrHelp
		case "colors":
			args.Colors = true
		case "path":
			if i+1 >= len(argv) {
				return args, fmt.Errorf("option %q needs a file argument", arg)
			}
			i++
			args.Path = argv[i]
		}
	}

	if args.Path == "" {
		return args, errors.New("no file specified")
	}
	return args, nil
}

// Usage writes the help menu.
func Usage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n", program)
	fmt.Fprintln(w, "Options:")
	for _, f := range flags {
		fmt.Fprintf(w, "-%c, --%s - %s\n", f.short, f.name, f.description)
	}
}

func lookup(arg string) (flagSpec, bool) {
	for _, f := range flags {
		if arg == "-"+string(f.short) || arg == "--"+f.name {
			return f, true
		}
	}
	return flagSpec{}, false
}
