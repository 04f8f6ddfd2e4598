// Package buffer holds a file's content as fixed-width hex lines and
// renders the offset/hex/ASCII dump.
package buffer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hexline/internal/hexcodec"
)

// BytesPerLine is the number of source bytes encoded into one line.
const BytesPerLine = 16

// hexColumnWidth is BytesPerLine * len("XX ").
const hexColumnWidth = 48

// Buffer owns a file's bytes as an ordered sequence of hex lines.
// Line i encodes source bytes [i*16, i*16+16). Edits replace a whole
// line verbatim and are validated lazily, on the next render or save.
type Buffer struct {
	path   string
	lines  []string
	offset int64 // render offset counter
	glyph  string
	cached string
	dirty  map[int]bool
}

// New builds a buffer over data, remembering path as the default save
// target.
func New(path string, data []byte) *Buffer {
	return &Buffer{
		path:  path,
		lines: Parse(data),
		glyph: ".",
		dirty: make(map[int]bool),
	}
}

// Open reads the file at path fully into memory.
func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return New(path, data), nil
}

// Parse partitions data into chunks of at most BytesPerLine bytes and
// encodes each chunk in display form ("XX " per byte). The final
// chunk may be shorter.
func Parse(data []byte) []string {
	lines := make([]string, 0, (len(data)+BytesPerLine-1)/BytesPerLine)
	for i := 0; i < len(data); i += BytesPerLine {
		end := i + BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		lines = append(lines, hexcodec.EncodeDisplay(data[i:end]))
	}
	return lines
}

// Path returns the default save target.
func (b *Buffer) Path() string {
	return b.path
}

// Lines returns the number of stored hex lines.
func (b *Buffer) Lines() int {
	return len(b.lines)
}

// SetNewlineGlyph replaces the glyph rendered in the text column for a
// raw newline byte. The default is ".".
func (b *Buffer) SetNewlineGlyph(glyph string) {
	b.glyph = glyph
	b.cached = ""
}

// Line returns the hex line at index i. The valid range is
// [0, Lines()).
func (b *Buffer) Line(i int) (string, error) {
	if i < 0 || i >= len(b.lines) {
		return "", ErrLineOutOfRange
	}
	return b.lines[i], nil
}

// SetLine replaces the line at index i verbatim, without validating
// the new text. The line is marked dirty; a bad replacement surfaces
// as a DecodeError on the next render or save.
func (b *Buffer) SetLine(i int, text string) error {
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines[i] = text
	b.dirty[i] = true
	b.cached = ""
	return nil
}

// Render returns the dump: one row per line, formatted as an 8-digit
// hex offset, the hex column padded to 48 characters, and the text
// column with newline bytes replaced by the glyph. The result is
// cached until the next mutation.
//
// A line that fails to decode yields a DecodeError if it carries an
// unvalidated edit, or ErrCorruptLine otherwise.
func (b *Buffer) Render() (string, error) {
	if b.cached != "" {
		return b.cached, nil
	}

	var out strings.Builder
	b.offset = 0
	for i, line := range b.lines {
		data, err := hexcodec.Decode(stripSpaces(line))
		if err != nil {
			if b.dirty[i] {
				return "", &DecodeError{Line: i, Err: err}
			}
			return "", fmt.Errorf("line %d: %v: %w", i, err, ErrCorruptLine)
		}

		text := strings.ReplaceAll(string(data), "\n", b.glyph)
		fmt.Fprintf(&out, "%08X  %-*s  %s\n", b.offset, hexColumnWidth, line, text)

		b.offset += BytesPerLine
	}

	// Every line decoded; pending edits are proven valid.
	clear(b.dirty)

	b.cached = out.String()
	return b.cached, nil
}

// Bytes decodes every line and concatenates the results in order.
func (b *Buffer) Bytes() ([]byte, error) {
	var data []byte
	for i, line := range b.lines {
		chunk, err := hexcodec.Decode(stripSpaces(line))
		if err != nil {
			return nil, &DecodeError{Line: i, Err: err}
		}
		data = append(data, chunk...)
	}
	return data, nil
}

// Find scans the decoded content for pattern and returns the offset
// of the first match, or -1.
func (b *Buffer) Find(pattern []byte) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return -1, err
	}
	if len(pattern) == 0 {
		return -1, nil
	}
	for i := 0; i+len(pattern) <= len(data); i++ {
		match := true
		for j := range pattern {
			if data[i+j] != pattern[j] {
				match = false
				break
			}
		}
		if match {
			return int64(i), nil
		}
	}
	return -1, nil
}

// Save decodes every line and writes the bytes to the original path,
// overwriting any existing file.
func (b *Buffer) Save() error {
	return b.SaveAs(b.path)
}

// SaveAs is Save with an explicit target path.
func (b *Buffer) SaveAs(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	b.path = path
	clear(b.dirty)
	return nil
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
