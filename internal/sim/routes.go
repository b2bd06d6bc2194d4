package sim

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mesh-intelligence/portal/pkg/entities"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// handleQuery answers GetProjectionByCriteria: every object of the
// projection's class that satisfies the criteria, in insertion order.
func (b *Backend) handleQuery(ctx context.Context, body []byte) ([]byte, error) {
	f, err := parseCriteria(body)
	if err != nil {
		return nil, serverError("%v", err)
	}
	projID, err := types.ParseGUID(f.projectionID)
	if err != nil {
		return nil, serverError("invalid projection id %q", f.projectionID)
	}

	var classID string
	err = b.db.QueryRowContext(ctx, "SELECT class_id FROM projections WHERE projection_id = ?",
		types.FormatD(projID)).Scan(&classID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, serverError("type projection %s not found", projID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up projection: %w", err)
	}

	rows, err := b.db.QueryContext(ctx, "SELECT body FROM objects WHERE class_id = ? ORDER BY rowid", classID)
	if err != nil {
		return nil, fmt.Errorf("querying objects: %w", err)
	}
	defer rows.Close()

	var out jsonArray
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("scanning object: %w", err)
		}
		if f.match([]byte(rec)) {
			out.add([]byte(rec))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating objects: %w", err)
	}
	return out.bytes(), nil
}

// handleTemplate answers CreateProjectionByTemplate with the template body.
// ClassTypeId is always present in the result.
func (b *Backend) handleTemplate(ctx context.Context, q url.Values) ([]byte, error) {
	id, err := types.ParseGUID(q.Get("id"))
	if err != nil {
		return nil, serverError("invalid template id %q", q.Get("id"))
	}
	if _, err := types.ParseGUID(q.Get("createdById")); err != nil {
		return nil, serverError("invalid createdById %q", q.Get("createdById"))
	}

	var classID, body string
	err = b.db.QueryRowContext(ctx, "SELECT class_id, body FROM templates WHERE template_id = ?",
		types.FormatD(id)).Scan(&classID, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, serverError("template %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up template: %w", err)
	}
	return sjson.SetBytes([]byte(body), projection.FieldClassTypeID, classID)
}

// handleEnumList answers Enum/GetList. The direct children of the list are
// returned, or every descendant when flatten is set. Like the real server
// the result starts with an empty-GUID entry.
func (b *Backend) handleEnumList(ctx context.Context, q url.Values) ([]byte, error) {
	listID, err := types.ParseGUID(q.Get("Id"))
	if err != nil {
		return nil, serverError("invalid list id %q", q.Get("Id"))
	}
	flatten, _ := strconv.ParseBool(q.Get("flatten"))

	const cols = `SELECT e.enum_id, e.text, e.name, e.ordinal,
    EXISTS (SELECT 1 FROM enums c WHERE c.parent_id = e.enum_id)
FROM enums e`
	query := cols + ` WHERE e.parent_id = ? ORDER BY e.ordinal, e.text`
	if flatten {
		query = `WITH RECURSIVE tree(enum_id) AS (
    SELECT enum_id FROM enums WHERE parent_id = ?
    UNION ALL
    SELECT en.enum_id FROM enums en JOIN tree t ON en.parent_id = t.enum_id
) ` + cols + ` JOIN tree USING (enum_id) ORDER BY e.ordinal, e.text`
	}

	rows, err := b.db.QueryContext(ctx, query, types.FormatD(listID))
	if err != nil {
		return nil, fmt.Errorf("querying enumerations: %w", err)
	}
	defer rows.Close()

	var out jsonArray
	if err := out.addEnum(types.FormatD(types.EmptyGUID), "", "", 0, false); err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id, text, name string
			ordinal        int
			hasChildren    bool
		)
		if err := rows.Scan(&id, &text, &name, &ordinal, &hasChildren); err != nil {
			return nil, fmt.Errorf("scanning enumeration: %w", err)
		}
		if err := out.addEnum(id, text, name, ordinal, hasChildren); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enumerations: %w", err)
	}
	return out.bytes(), nil
}

// jsonArray accumulates raw JSON elements into an array.
type jsonArray struct {
	buf []byte
}

func (a *jsonArray) add(raw []byte) {
	if len(a.buf) == 0 {
		a.buf = append(a.buf, '[')
	} else {
		a.buf = append(a.buf, ',')
	}
	a.buf = append(a.buf, raw...)
}

func (a *jsonArray) bytes() []byte {
	if len(a.buf) == 0 {
		return []byte("[]")
	}
	return append(a.buf, ']')
}

// addEnum appends one enumeration member in the GetList wire shape.
func (a *jsonArray) addEnum(id, text, name string, ordinal int, hasChildren bool) error {
	item := []byte(`{}`)
	var err error
	for _, kv := range []struct {
		key string
		val any
	}{{"ID", id}, {"Text", text}, {"Name", name}, {"HasChildren", hasChildren}, {"Ordinal", ordinal}} {
		if str, ok := kv.val.(string); ok {
			item, err = sjson.SetRawBytes(item, kv.key, types.QuoteJSON(str))
		} else {
			item, err = sjson.SetBytes(item, kv.key, kv.val)
		}
		if err != nil {
			return err
		}
	}
	a.add(item)
	return nil
}

// handleCommit applies a commit envelope. A null original creates the
// object, assigning a BaseId when current has none; otherwise the stored
// object is replaced. An object committed with the Deleted status is
// purged. Business failures answer success=false like the real server.
func (b *Backend) handleCommit(ctx context.Context, body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, serverError("commit body is not JSON")
	}
	form := gjson.GetBytes(body, "formJson")
	current := form.Get("current")
	if !current.IsObject() {
		return commitFailure("formJson.current is required")
	}
	rec := []byte(current.Raw)
	original := form.Get("original")
	creating := !original.Exists() || original.Type == gjson.Null

	var baseID uuid.UUID
	if raw := current.Get(projection.FieldBaseID).String(); raw != "" {
		id, err := types.ParseGUID(raw)
		if err != nil {
			return commitFailure(fmt.Sprintf("invalid BaseId %q", raw))
		}
		baseID = id
	}

	var err error
	if creating {
		if _, perr := types.ParseGUID(current.Get(projection.FieldClassTypeID).String()); perr != nil {
			return commitFailure("ClassTypeId is required to create an object")
		}
		if baseID == types.EmptyGUID {
			baseID = uuid.New()
			if rec, err = sjson.SetBytes(rec, projection.FieldBaseID, types.FormatD(baseID)); err != nil {
				return nil, err
			}
		}
	} else if baseID == types.EmptyGUID {
		return commitFailure("BaseId is required to update an object")
	}

	// The row change and the JSONL rewrite succeed or fail together.
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning commit: %w", err)
	}
	defer tx.Rollback()

	msg, err := applyCommit(ctx, tx, baseID, current, rec, creating)
	if err != nil {
		return nil, err
	}
	if msg != "" {
		return commitFailure(msg)
	}
	if err := persistTable(tx, b.dataDir, "objects"); err != nil {
		return nil, fmt.Errorf("persisting objects: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing objects: %w", err)
	}
	b.log.Debug().Str("base_id", types.FormatD(baseID)).Bool("created", creating).Msg("sim commit")

	out, err := sjson.SetBytes(nil, "success", true)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, projection.FieldBaseID, types.FormatD(baseID))
}

// applyCommit writes one object inside tx. A non-empty message is a
// business failure reported to the caller as success=false.
func applyCommit(ctx context.Context, tx *sql.Tx, baseID uuid.UUID, current gjson.Result, rec []byte, creating bool) (string, error) {
	id := types.FormatD(baseID)
	if creating {
		var one int
		switch err := tx.QueryRowContext(ctx, "SELECT 1 FROM objects WHERE base_id = ?", id).Scan(&one); {
		case err == nil:
			return fmt.Sprintf("object %s already exists", id), nil
		case !errors.Is(err, sql.ErrNoRows):
			return "", fmt.Errorf("checking object: %w", err)
		}
		classID, _ := types.ParseGUID(current.Get(projection.FieldClassTypeID).String())
		if _, err := tx.ExecContext(ctx, "INSERT INTO objects (base_id, class_id, body) VALUES (?, ?, ?)",
			id, types.FormatD(classID), string(rec)); err != nil {
			return "", fmt.Errorf("inserting object: %w", err)
		}
		return "", nil
	}

	res, err := tx.ExecContext(ctx, "UPDATE objects SET body = ? WHERE base_id = ?", string(rec), id)
	if err != nil {
		return "", fmt.Errorf("updating object: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Sprintf("object %s not found", id), nil
	}
	if isDeleted(current) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM objects WHERE base_id = ?", id); err != nil {
			return "", fmt.Errorf("purging object: %w", err)
		}
	}
	return "", nil
}

func isDeleted(current gjson.Result) bool {
	id := current.Get(entities.FieldObjectStatus + ".Id").String()
	return id != "" && types.SameGUID(id, types.FormatD(entities.StatusDeleted.ID))
}

func commitFailure(msg string) ([]byte, error) {
	out, err := sjson.SetBytes(nil, "success", false)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(out, "exception", types.QuoteJSON(msg))
}
