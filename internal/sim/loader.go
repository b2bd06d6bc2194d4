package sim

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

type tableMapping struct {
	file    string
	table   string
	columns []string
	raw     map[string]bool // columns holding embedded JSON
}

// jsonlTableMapping maps JSONL files to their tables and columns.
var jsonlTableMapping = []tableMapping{
	{projectionsJSONL, "projections", []string{"projection_id", "class_id", "name"}, nil},
	{templatesJSONL, "templates", []string{"template_id", "class_id", "name", "body"}, map[string]bool{"body": true}},
	{objectsJSONL, "objects", []string{"base_id", "class_id", "body"}, map[string]bool{"body": true}},
	{enumsJSONL, "enums", []string{"enum_id", "parent_id", "text", "name", "ordinal"}, nil},
}

func mappingFor(table string) (tableMapping, bool) {
	for _, m := range jsonlTableMapping {
		if m.table == table {
			return m, true
		}
	}
	return tableMapping{}, false
}

// loadAllJSONL reads every JSONL file into its table inside one
// transaction. Malformed lines, unknown fields and rows violating
// constraints are skipped.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, m.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", m.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, m, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", m.file, m.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

func insertRecords(tx *sql.Tx, m tableMapping, records [][]byte) error {
	placeholders := make([]string, len(m.columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m.table, joinColumns(m.columns), joinColumns(placeholders)))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", m.table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]any, len(m.columns))
		for i, col := range m.columns {
			args[i] = columnValue(gjson.GetBytes(rec, col), m.raw[col])
		}
		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
	}
	return nil
}

// columnValue converts one JSONL field to a SQL argument. Embedded JSON
// columns keep their raw text; absent fields become NULL.
func columnValue(res gjson.Result, raw bool) any {
	switch {
	case !res.Exists() || res.Type == gjson.Null:
		return nil
	case raw:
		return res.Raw
	case res.Type == gjson.Number:
		return res.Int()
	default:
		return res.String()
	}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
