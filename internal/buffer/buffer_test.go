package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hexline/internal/hexcodec"
)

func TestParseChunking(t *testing.T) {
	tests := []struct {
		size  int
		lines int
		last  int // decoded length of the final line
	}{
		{0, 0, 0},
		{1, 1, 1},
		{15, 1, 15},
		{16, 1, 16},
		{17, 2, 1},
		{20, 2, 4},
		{32, 2, 16},
		{33, 3, 1},
	}
	for _, tt := range tests {
		data := bytes.Repeat([]byte{0xAB}, tt.size)
		lines := Parse(data)
		if len(lines) != tt.lines {
			t.Errorf("Parse(%d bytes): %d lines, want %d", tt.size, len(lines), tt.lines)
			continue
		}
		for i, line := range lines {
			decoded, err := hexcodec.Decode(strings.ReplaceAll(line, " ", ""))
			if err != nil {
				t.Fatalf("Parse(%d bytes): line %d does not decode: %v", tt.size, i, err)
			}
			want := 16
			if i == len(lines)-1 {
				want = tt.last
			}
			if len(decoded) != want {
				t.Errorf("Parse(%d bytes): line %d decodes to %d bytes, want %d",
					tt.size, i, len(decoded), want)
			}
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	data := []byte("Hello, World! This file has two lines worth of bytes.\n")
	b := New("test.bin", data)

	got, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", got, data)
	}
}

func TestRenderFormat(t *testing.T) {
	data := append(bytes.Repeat([]byte{0x41}, 16), 0x48, 0x69) // "AAAA...", "Hi"
	b := New("test.bin", data)

	dump, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}

	rows := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	want0 := fmt.Sprintf("%08X  %-48s  %s", 0, strings.Repeat("41 ", 16), strings.Repeat("A", 16))
	if rows[0] != want0 {
		t.Errorf("row 0:\n got %q\nwant %q", rows[0], want0)
	}

	want1 := fmt.Sprintf("%08X  %-48s  %s", 16, "48 69 ", "Hi")
	if rows[1] != want1 {
		t.Errorf("row 1:\n got %q\nwant %q", rows[1], want1)
	}
}

func TestRenderOffsets(t *testing.T) {
	b := New("test.bin", bytes.Repeat([]byte{0x00}, 16*5))
	dump, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}
	rows := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	for i, row := range rows {
		want := fmt.Sprintf("%08X", i*16)
		if !strings.HasPrefix(row, want+"  ") {
			t.Errorf("row %d starts with %q, want offset %q", i, row[:10], want)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	b := New("test.bin", []byte("some bytes to render\n"))
	first, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("consecutive renders differ")
	}
	off := b.offset
	if _, err := b.Render(); err != nil {
		t.Fatal(err)
	}
	if b.offset != off {
		t.Errorf("offset counter moved from %d to %d across cached renders", off, b.offset)
	}
}

func TestRenderNewlineGlyph(t *testing.T) {
	b := New("test.bin", []byte("a\nb"))
	dump, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimRight(dump, "\n"), "a.b") {
		t.Errorf("newline byte not replaced by \".\": %q", dump)
	}

	b.SetNewlineGlyph("_")
	dump, err = b.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimRight(dump, "\n"), "a_b") {
		t.Errorf("glyph change not reflected after cache invalidation: %q", dump)
	}
}

func TestLineRange(t *testing.T) {
	b := New("test.bin", bytes.Repeat([]byte{0x01}, 20)) // 2 lines

	if _, err := b.Line(0); err != nil {
		t.Errorf("Line(0): %v", err)
	}
	if _, err := b.Line(1); err != nil {
		t.Errorf("Line(1): %v", err)
	}
	if _, err := b.Line(2); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Line(2) error = %v, want ErrLineOutOfRange", err)
	}
	if _, err := b.Line(-1); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Line(-1) error = %v, want ErrLineOutOfRange", err)
	}
	if err := b.SetLine(2, "FF "); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("SetLine(2) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestSetLineReflectedInRender(t *testing.T) {
	b := New("test.bin", []byte("0123456789abcdefXYZ"))
	if _, err := b.Render(); err != nil {
		t.Fatal(err)
	}

	if err := b.SetLine(1, "48 69 "); err != nil {
		t.Fatal(err)
	}

	dump, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}
	rows := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	if !strings.HasSuffix(rows[1], "  Hi") {
		t.Errorf("edited row not reflected: %q", rows[1])
	}
}

func TestSetLineBadHexIsRecoverable(t *testing.T) {
	b := New("test.bin", []byte("0123456789abcdef"))

	if err := b.SetLine(0, "not hex at all"); err != nil {
		t.Fatal(err)
	}

	_, err := b.Render()
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("render error = %v, want *DecodeError", err)
	}
	if decErr.Line != 0 {
		t.Errorf("DecodeError.Line = %d, want 0", decErr.Line)
	}
	if errors.Is(err, ErrCorruptLine) {
		t.Error("edited line must not be reported as corrupt")
	}

	// The bad edit stays until replaced; save fails the same way.
	if err := b.SaveAs(filepath.Join(t.TempDir(), "out.bin")); err == nil {
		t.Error("save succeeded with an undecodable line")
	}

	// Fixing the line recovers the buffer.
	if err := b.SetLine(0, "FF "); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Render(); err != nil {
		t.Fatalf("render after fix: %v", err)
	}
}

func TestSaveRewritesEditedBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")

	// 20 bytes: a full line plus a 4-byte tail.
	data := []byte("0123456789abcdefWXYZ")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Lines() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.Lines())
	}

	// Replace the tail with two bytes; the saved file shrinks to 18.
	if err := b.SetLine(1, "48 69 "); err != nil {
		t.Fatal(err)
	}
	if err := b.Save(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("0123456789abcdefHi")
	if !bytes.Equal(got, want) {
		t.Errorf("saved file = %q, want %q", got, want)
	}
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	b := New(filepath.Join(dir, "orig.bin"), []byte{0x01, 0x02, 0x03})

	target := filepath.Join(dir, "copy.bin")
	if err := b.SaveAs(target); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("unexpected bytes: %v", got)
	}
	if b.Path() != target {
		t.Errorf("Path() = %q, want %q", b.Path(), target)
	}
}

func TestSaveIoFailure(t *testing.T) {
	b := New("orig.bin", []byte{0x01})
	err := b.SaveAs(filepath.Join(t.TempDir(), "no", "such", "dir", "out.bin"))
	if err == nil {
		t.Fatal("expected write error")
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		t.Error("I/O failure misreported as decode failure")
	}
}

func TestFind(t *testing.T) {
	b := New("test.bin", []byte("Hello, World!"))

	off, err := b.Find([]byte("World"))
	if err != nil {
		t.Fatal(err)
	}
	if off != 7 {
		t.Errorf("Find = %d, want 7", off)
	}

	off, err = b.Find([]byte("xyz"))
	if err != nil {
		t.Fatal(err)
	}
	if off != -1 {
		t.Errorf("Find of absent pattern = %d, want -1", off)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Error("expected error opening a missing file")
	}
}
