package vector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by LoadMatrix when the artifact path does not
// exist. Callers decide whether that is fatal or a cue to recompute.
var ErrNotFound = errors.New("embedding artifact not found")

// matrixMagic identifies a persisted embedding matrix file.
const matrixMagic = "KEMB"

// SaveMatrix persists an embedding matrix to path. Directory is created if
// needed. Format (little-endian): magic (4 bytes), fingerprint length (4),
// fingerprint bytes, rows (4), dims (4), then rows*dims float32 values.
// The fingerprint header lets LoadMatrix callers detect a stale artifact
// paired with a mutated note collection.
func SaveMatrix(path string, m [][]float32, fingerprint string) error {
	if path == "" {
		return fmt.Errorf("save matrix: empty path")
	}
	dims := 0
	if len(m) > 0 {
		dims = len(m[0])
	}
	for i, row := range m {
		if len(row) != dims {
			return fmt.Errorf("save matrix: row %d has %d dims, expected %d", i, len(row), dims)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(matrixMagic)); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	fp := []byte(fingerprint)
	if err := binary.Write(f, binary.LittleEndian, uint32(len(fp))); err != nil {
		return fmt.Errorf("write fingerprint len: %w", err)
	}
	if _, err := f.Write(fp); err != nil {
		return fmt.Errorf("write fingerprint: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(m))); err != nil {
		return fmt.Errorf("write row count: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(dims)); err != nil {
		return fmt.Errorf("write dims: %w", err)
	}
	for _, row := range m {
		if _, err := f.Write(float32SliceToBytes(row)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return nil
}

// LoadMatrix reads an embedding matrix and its fingerprint from path.
// A nonexistent path yields ErrNotFound.
func LoadMatrix(path string) ([][]float32, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, "", fmt.Errorf("open artifact file: %w", err)
	}
	defer f.Close()

	magic := make([]byte, len(matrixMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, "", fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != matrixMagic {
		return nil, "", fmt.Errorf("not an embedding artifact: bad magic %q", magic)
	}
	var fpLen uint32
	if err := binary.Read(f, binary.LittleEndian, &fpLen); err != nil {
		return nil, "", fmt.Errorf("read fingerprint len: %w", err)
	}
	fp := make([]byte, fpLen)
	if _, err := io.ReadFull(f, fp); err != nil {
		return nil, "", fmt.Errorf("read fingerprint: %w", err)
	}
	var rows, dims uint32
	if err := binary.Read(f, binary.LittleEndian, &rows); err != nil {
		return nil, "", fmt.Errorf("read row count: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &dims); err != nil {
		return nil, "", fmt.Errorf("read dims: %w", err)
	}
	m := make([][]float32, 0, rows)
	buf := make([]byte, dims*4)
	for i := uint32(0); i < rows; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return nil, "", fmt.Errorf("read row %d: %w", i, err)
		}
		m = append(m, bytesToFloat32Slice(buf))
	}
	return m, string(fp), nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
