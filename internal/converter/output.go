package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nconklindev/chore/internal/types"
)

// EncodeRecords renders records as a 2-space indented JSON array with
// non-ASCII and HTML characters written literally.
func EncodeRecords(records []*types.Record) ([]byte, error) {
	return encode(records, "  ")
}

// CompactSize is the length in bytes of records encoded without indentation.
func CompactSize(records []*types.Record) (int, error) {
	b, err := encode(records, "")
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

func encode(records []*types.Record, indent string) ([]byte, error) {
	if records == nil {
		records = []*types.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	if indent == "" {
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	return buf.Bytes(), nil
}

// Sample returns the first n records, or all of them when there are fewer.
func Sample(records []*types.Record, n int) []*types.Record {
	if n < 0 {
		n = 0
	}
	if len(records) < n {
		return records
	}
	return records[:n]
}

type outputFile struct {
	path string
	data []byte
	tmp  string
}

// writeFiles writes every file to a temporary sibling first and renames
// them into place only after all temporary files are complete. On failure
// the temporary files are removed.
func writeFiles(files []outputFile) (err error) {
	defer func() {
		if err == nil {
			return
		}
		for _, f := range files {
			if f.tmp != "" {
				os.Remove(f.tmp)
			}
		}
	}()

	for i := range files {
		tmp, err := writeTemp(files[i].path, files[i].data)
		if err != nil {
			return err
		}
		files[i].tmp = tmp
	}

	for i := range files {
		if err := os.Rename(files[i].tmp, files[i].path); err != nil {
			return fmt.Errorf("replace %s: %w", files[i].path, err)
		}
		files[i].tmp = ""
	}

	return nil
}

func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", path, err)
	}

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if err == nil {
		err = f.Chmod(0o644)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return f.Name(), nil
}
