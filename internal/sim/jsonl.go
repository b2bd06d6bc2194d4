package sim

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// JSONL files in the data directory, one per table.
const (
	projectionsJSONL = "projections.jsonl"
	objectsJSONL     = "objects.jsonl"
	templatesJSONL   = "templates.jsonl"
	enumsJSONL       = "enums.jsonl"
)

// readJSONL returns each non-empty, valid JSON line of path. Malformed lines
// are skipped.
func readJSONL(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !gjson.ValidBytes(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, cp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically replaces path with records using the temp-file,
// fsync, rename sequence.
func writeJSONL(path string, records [][]byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// initJSONLFiles creates every missing JSONL file as an empty file.
func initJSONLFiles(dataDir string) error {
	for _, m := range jsonlTableMapping {
		path := filepath.Join(dataDir, m.file)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", m.file, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", m.file, err)
		}
	}
	return nil
}

// persistTable rewrites the JSONL file of table from its current rows. JSON
// columns are embedded raw; the rest are written as strings or numbers.
func persistTable(db queryer, dataDir, table string) error {
	m, ok := mappingFor(table)
	if !ok {
		return fmt.Errorf("no JSONL mapping for table %s", table)
	}
	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", joinColumns(m.columns), table))
	if err != nil {
		return fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		vals := make([]any, len(m.columns))
		ptrs := make([]any, len(m.columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		line := []byte("{}")
		for i, col := range m.columns {
			line, err = setColumn(line, col, vals[i], m.raw[col])
			if err != nil {
				return fmt.Errorf("encoding %s.%s: %w", table, col, err)
			}
		}
		records = append(records, line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s: %w", table, err)
	}
	return writeJSONL(filepath.Join(dataDir, m.file), records)
}

func setColumn(line []byte, col string, val any, raw bool) ([]byte, error) {
	switch v := val.(type) {
	case nil:
		return sjson.SetBytes(line, col, nil)
	case []byte:
		if raw {
			return sjson.SetRawBytes(line, col, v)
		}
		return sjson.SetRawBytes(line, col, types.QuoteJSON(string(v)))
	case string:
		if raw {
			return sjson.SetRawBytes(line, col, []byte(v))
		}
		return sjson.SetRawBytes(line, col, types.QuoteJSON(v))
	default:
		return sjson.SetBytes(line, col, v)
	}
}

// queryer is the read side shared by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}
