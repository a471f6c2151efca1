// Package querybuilder turns loosely-typed JSON payloads into parameterized
// INSERT/UPDATE statements restricted to a fixed allow-list of columns.
package querybuilder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields is returned when none of the allow-listed fields qualify.
var ErrNoFields = errors.New("no valid fields provided")

// Policy decides whether a payload value makes it into the statement.
type Policy int

const (
	// IncludeTruthy binds the value when it is present and truthy, and NULL otherwise.
	IncludeTruthy Policy = iota
	// IncludeProvided binds the value whenever the key is present, falsy values included.
	// Absent keys are left out of the statement.
	IncludeProvided
)

// Field is one allow-listed column.
type Field struct {
	Name   string
	Policy Policy
}

// Entity is the write configuration for a single table.
type Entity struct {
	Table    string
	IDColumn string
	Insert   []Field
	Update   []Field
}

// Statement is a ready-to-run query and its bound values, in placeholder order.
type Statement struct {
	SQL  string
	Args []interface{}
}

type column struct {
	name  string
	value interface{}
}

// filter walks the allow-list and keeps the columns that qualify under each field's policy.
func filter(fields []Field, payload map[string]interface{}) []column {
	cols := make([]column, 0, len(fields))
	for _, f := range fields {
		v, ok := payload[f.Name]
		switch f.Policy {
		case IncludeTruthy:
			if ok && Truthy(v) {
				cols = append(cols, column{name: f.Name, value: v})
			} else {
				cols = append(cols, column{name: f.Name, value: nil})
			}
		case IncludeProvided:
			if ok {
				cols = append(cols, column{name: f.Name, value: v})
			}
		}
	}
	return cols
}

// BuildInsert builds "INSERT INTO t (a, b) VALUES (?, ?)" from the entity's insert allow-list.
func (e Entity) BuildInsert(payload map[string]interface{}) (Statement, error) {
	cols := filter(e.Insert, payload)
	if len(cols) == 0 {
		return Statement{}, ErrNoFields
	}

	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, c := range cols {
		names[i] = quote(c.name)
		marks[i] = "?"
		args[i] = bindable(c.value)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(e.Table), strings.Join(names, ", "), strings.Join(marks, ", "))
	return Statement{SQL: query, Args: args}, nil
}

// BuildUpdate builds "UPDATE t SET a = ?, b = ? WHERE id = ?" from the entity's update
// allow-list. The id is always the last bound value.
func (e Entity) BuildUpdate(id interface{}, payload map[string]interface{}) (Statement, error) {
	cols := filter(e.Update, payload)
	if len(cols) == 0 {
		return Statement{}, ErrNoFields
	}

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = quote(c.name) + " = ?"
		args = append(args, bindable(c.value))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		quote(e.Table), strings.Join(sets, ", "), quote(e.idColumn()))
	return Statement{SQL: query, Args: args}, nil
}

// BuildDelete builds "DELETE FROM t WHERE id = ?".
func (e Entity) BuildDelete(id interface{}) Statement {
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quote(e.Table), quote(e.idColumn())),
		Args: []interface{}{id},
	}
}

func (e Entity) idColumn() string {
	if e.IDColumn == "" {
		return "id"
	}
	return e.IDColumn
}

// Truthy reports whether a decoded JSON value counts as set.
// nil, false, 0 and "" are falsy; arrays and objects are truthy even when empty.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

// bindable flattens JSON booleans to 0/1 and nested arrays/objects to their JSON text,
// which is how MySQL stores them in TEXT and JSON columns.
func bindable(v interface{}) interface{} {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case []interface{}, map[string]interface{}:
		b, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		return string(b)
	default:
		return v
	}
}

func quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
