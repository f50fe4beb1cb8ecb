package utils

import (
	"encoding/binary"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFileUnavailable = errors.New("file unavailable")
	ErrInvalidBytecode = errors.New("invalid SPIR-V bytecode")
)

// ReadBinaryFile returns the full contents of the file at path
func ReadBinaryFile(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "unable to open file: %s", path), ErrFileUnavailable)
	}

	return contents, nil
}

// BytesToBytecode reinterprets a little-endian SPIR-V binary as 32-bit words
func BytesToBytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Mark(errors.Newf("length %d is not a positive multiple of 4", len(b)), ErrInvalidBytecode)
	}

	byteCode := make([]uint32, len(b)/4)
	for i := range byteCode {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	return byteCode, nil
}

// LoadBytecode reads and converts each SPIR-V file concurrently. The result
// is in the same order as paths.
func LoadBytecode(paths ...string) ([][]uint32, error) {
	codes := make([][]uint32, len(paths))

	var group errgroup.Group
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			contents, err := ReadBinaryFile(path)
			if err != nil {
				return err
			}

			codes[i], err = BytesToBytecode(contents)
			return errors.Wrapf(err, "shader %s", path)
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return codes, nil
}
