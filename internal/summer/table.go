package summer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrTableSize means the file does not hold exactly TableSize ids.
	ErrTableSize = fmt.Errorf("sticker table must contain exactly %d file ids", TableSize)
	// ErrEmptyFileID means one of the entries is blank.
	ErrEmptyFileID = errors.New("sticker table contains an empty file id")
)

// Table is the immutable list of sticker file ids, one per summer day plus
// the off-season sticker at FallbackIndex.
type Table struct {
	ids []string
}

// NewTable validates ids and copies them into a Table.
func NewTable(ids []string) (*Table, error) {
	if len(ids) != TableSize {
		return nil, fmt.Errorf("%w, got %d", ErrTableSize, len(ids))
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyFileID, i)
		}
	}
	return &Table{ids: append([]string(nil), ids...)}, nil
}

// LoadTable reads a JSON array of file ids from path.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("sticker table %s not found; generate it with `summerday collect`: %w", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read sticker table: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode sticker table %s: %w", path, err)
	}
	t, err := NewTable(ids)
	if err != nil {
		return nil, fmt.Errorf("sticker table %s: %w; regenerate it with `summerday collect`", path, err)
	}
	return t, nil
}

// Len is always TableSize.
func (t *Table) Len() int { return len(t.ids) }

// At returns the file id in slot i. It panics when i is out of range.
func (t *Table) At(i int) string { return t.ids[i] }

// ForDay returns the sticker for a day number.
func (t *Table) ForDay(day int) string { return t.ids[Index(day)] }

// ForTime returns the day number of now at UTC+offset and its sticker.
func (t *Table) ForTime(now time.Time, offset int) (int, string) {
	day := DayNumber(now, offset)
	return day, t.ForDay(day)
}

// IDs returns a copy of the file ids.
func (t *Table) IDs() []string { return append([]string(nil), t.ids...) }

// Save writes the table to path as a JSON array, replacing any existing file
// atomically.
func (t *Table) Save(path string) error {
	raw, err := json.Marshal(t.ids)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".file_ids-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
