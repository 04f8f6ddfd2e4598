// Package command parses a line of user input and runs it against an
// edit buffer.
//
// The engine never touches the terminal. Commands that pause for a
// follow-up line (editing a fetched line, acknowledging a notice)
// return a Result with a non-zero Await; the caller collects the
// input and hands it back through Resume.
package command

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"hexline/internal/buffer"
	"hexline/internal/fuzzy"
	"hexline/internal/hexcodec"
	"hexline/internal/logger"
)

// ErrInvalidOffset reports an offset argument that does not parse as
// a base-16 integer.
var ErrInvalidOffset = errors.New("invalid offset")

// Spec describes one command for the help listing and the fuzzy
// suggestion candidates.
type Spec struct {
	Name        string
	Description string
}

// Await tells the caller what input the engine is waiting for.
type Await int

const (
	// AwaitNone returns straight to the command prompt.
	AwaitNone Await = iota

	// AwaitAck shows Output and waits for a line-submit to dismiss
	// it. The input is discarded; Resume is not called.
	AwaitAck

	// AwaitReplacement shows the fetched hex line and waits for the
	// replacement text, delivered via Resume.
	AwaitReplacement
)

// Result is the outcome of one dispatch.
type Result struct {
	Output string
	Await  Await
	Quit   bool
}

// Engine dispatches commands against a single buffer for the life of
// a session.
type Engine struct {
	buf      *buffer.Buffer
	commands []Spec
	pending  int // line index awaiting replacement text
}

func New(buf *buffer.Buffer) *Engine {
	return &Engine{
		buf: buf,
		commands: []Spec{
			{"help", "Prints the help menu"},
			{"quit", "Quit without saving"},
			{"get", "Get a line of hex and edit it"},
			{"save", "Save the file and exit"},
			{"find", "Find a byte pattern and print its offset"},
		},
		pending: -1,
	}
}

// Commands returns the command set in listing order.
func (e *Engine) Commands() []Spec {
	return e.commands
}

// Dispatch tokenizes line on spaces and executes it. The first token
// is the command name, matched case-insensitively; the rest are
// arguments. An empty line is a no-op. An unknown name degrades to a
// fuzzy suggestion, never an error.
func (e *Engine) Dispatch(line string) (Result, error) {
	args := strings.Split(line, " ")
	name := strings.ToLower(args[0])
	logger.Debug("dispatch", "command", name, "args", len(args)-1)

	switch name {
	case "":
		return Result{}, nil
	case "help":
		return Result{Output: e.helpText(), Await: AwaitAck}, nil
	case "quit":
		return Result{Quit: true}, nil
	case "get":
		return e.get(args[1:])
	case "save":
		return e.save(args[1:])
	case "find":
		return e.find(args[1:])
	default:
		names := make([]string, len(e.commands))
		for i, c := range e.commands {
			names[i] = c.Name
		}
		suggestion := fuzzy.Suggest(name, names)
		return Result{
			Output: fmt.Sprintf("Unknown command %q. Did you mean %q?", name, suggestion),
			Await:  AwaitAck,
		}, nil
	}
}

// Resume delivers the replacement text for the line fetched by the
// last get. Empty input leaves the line unchanged; anything else
// overwrites it verbatim and regenerates the dump immediately, so a
// bad replacement is reported here rather than on a later redraw.
func (e *Engine) Resume(input string) (Result, error) {
	line := e.pending
	e.pending = -1
	if line < 0 {
		return Result{}, nil
	}
	if input == "" {
		return Result{}, nil
	}

	if err := e.buf.SetLine(line, input); err != nil {
		return Result{}, err
	}
	logger.Info("line replaced", "line", line)

	if _, err := e.buf.Render(); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (e *Engine) get(args []string) (Result, error) {
	if len(args) == 0 || args[0] == "" {
		return Result{}, errors.New("no offset specified")
	}

	offset, err := strconv.ParseInt(args[0], 16, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w %q", ErrInvalidOffset, args[0])
	}

	index := int(offset / buffer.BytesPerLine)
	text, err := e.buf.Line(index)
	if err != nil {
		return Result{}, err
	}

	e.pending = index
	return Result{Output: text, Await: AwaitReplacement}, nil
}

func (e *Engine) save(args []string) (Result, error) {
	target := e.buf.Path()
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}

	if err := e.buf.SaveAs(target); err != nil {
		logger.Error("save failed", "path", target, "error", err)
		return Result{}, err
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	logger.Info("saved", "path", abs)
	return Result{Output: "Saved to " + abs, Quit: true}, nil
}

func (e *Engine) find(args []string) (Result, error) {
	// Rejoin so the pattern may be typed with or without spaces.
	hex := strings.Join(args, "")
	if hex == "" {
		return Result{}, errors.New("no pattern specified")
	}

	pattern, err := hexcodec.Decode(hex)
	if err != nil {
		return Result{}, err
	}

	offset, err := e.buf.Find(pattern)
	if err != nil {
		return Result{}, err
	}
	if offset < 0 {
		return Result{Output: "Pattern not found."}, nil
	}
	return Result{Output: fmt.Sprintf("Found at %08X", offset)}, nil
}

func (e *Engine) helpText() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, c := range e.commands {
		fmt.Fprintf(&b, "%s - %s\n", c.Name, c.Description)
	}
	return b.String()
}
