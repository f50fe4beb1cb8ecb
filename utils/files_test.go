package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestReadBinaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}

	contents, err := ReadBinaryFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 3 || contents[2] != 3 {
		t.Errorf("unexpected contents %v", contents)
	}
}

func TestReadBinaryFileMissing(t *testing.T) {
	_, err := ReadBinaryFile(filepath.Join(t.TempDir(), "missing.spv"))
	if !errors.Is(err, ErrFileUnavailable) {
		t.Errorf("expected ErrFileUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the os error to be preserved, got %v", err)
	}
}

func TestBytesToBytecode(t *testing.T) {
	// SPIR-V magic number followed by a version word
	code, err := BytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	if err != nil {
		t.Fatal(err)
	}

	if len(code) != 2 {
		t.Fatalf("expected 2 words, got %d", len(code))
	}
	if code[0] != 0x07230203 {
		t.Errorf("expected magic 0x07230203, got %#x", code[0])
	}
	if code[1] != 0x00010000 {
		t.Errorf("expected version 0x00010000, got %#x", code[1])
	}
}

func TestBytesToBytecodeInvalidLength(t *testing.T) {
	for _, length := range []int{0, 1, 5, 7} {
		_, err := BytesToBytecode(make([]byte, length))
		if !errors.Is(err, ErrInvalidBytecode) {
			t.Errorf("length %d: expected ErrInvalidBytecode, got %v", length, err)
		}
	}
}

func TestLoadBytecode(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert.spv")
	frag := filepath.Join(dir, "basic.frag.spv")
	if err := os.WriteFile(vert, []byte{1, 0, 0, 0}, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(frag, []byte{2, 0, 0, 0, 3, 0, 0, 0}, 0o600); err != nil {
		t.Fatal(err)
	}

	codes, err := LoadBytecode(vert, frag)
	if err != nil {
		t.Fatal(err)
	}

	if len(codes) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(codes))
	}
	if len(codes[0]) != 1 || codes[0][0] != 1 {
		t.Errorf("unexpected vertex code %v", codes[0])
	}
	if len(codes[1]) != 2 || codes[1][1] != 3 {
		t.Errorf("unexpected fragment code %v", codes[1])
	}
}

func TestLoadBytecodeErrors(t *testing.T) {
	dir := t.TempDir()
	truncated := filepath.Join(dir, "truncated.spv")
	if err := os.WriteFile(truncated, []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadBytecode(truncated)
	if !errors.Is(err, ErrInvalidBytecode) {
		t.Errorf("expected ErrInvalidBytecode, got %v", err)
	}

	_, err = LoadBytecode(filepath.Join(dir, "missing.spv"))
	if !errors.Is(err, ErrFileUnavailable) {
		t.Errorf("expected ErrFileUnavailable, got %v", err)
	}
}

func BenchmarkBytesToBytecodeSmall(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		BytesToBytecode(data)
	}
}

func BenchmarkBytesToBytecodeBig(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		BytesToBytecode(data)
	}
}
