package natives

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"minilang/internal/langerr"
	"minilang/internal/value"
)

// dbHandles tracks open database connections behind small integer
// handles, since this interpreter's value kinds have no notion of an
// opaque resource object: the language program holds an Int handle
// rather than the sql.DB itself.
type dbHandles struct {
	conns map[int64]*sql.DB
	next  int64
}

func newDBHandles() *dbHandles {
	return &dbHandles{conns: map[int64]*sql.DB{}}
}

// registerDB wires the "db" module: db_open/db_exec/db_query, backed by
// modernc.org/sqlite (a pure-Go driver, so the interpreter stays
// cgo-free; see DESIGN.md).
func registerDB(r *Registry, h *dbHandles) {
	r.register("db", "db_open", func(args []value.Object) (value.Object, error) {
		path, err := argStr(args, 0)
		releaseArgs(args)
		if err != nil {
			return nil, err
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "db_open: %v", err)
		}
		if err := db.Ping(); err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "db_open: %v", err)
		}
		h.next++
		id := h.next
		h.conns[id] = db
		return value.NewInt(id), nil
	})

	r.register("db", "db_exec", func(args []value.Object) (value.Object, error) {
		handle, herr := argInt(args, 0)
		query, qerr := argStr(args, 1)
		releaseArgs(args)
		if herr != nil {
			return nil, herr
		}
		if qerr != nil {
			return nil, qerr
		}
		db, ok := h.conns[handle]
		if !ok {
			return nil, langerr.NewNoPos(langerr.ValueError, "db_exec: no open connection %d", handle)
		}
		res, err := db.Exec(query)
		if err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "db_exec: %v", err)
		}
		affected, _ := res.RowsAffected()
		return value.NewInt(affected), nil
	})

	r.register("db", "db_query", func(args []value.Object) (value.Object, error) {
		handle, herr := argInt(args, 0)
		query, qerr := argStr(args, 1)
		releaseArgs(args)
		if herr != nil {
			return nil, herr
		}
		if qerr != nil {
			return nil, qerr
		}
		db, ok := h.conns[handle]
		if !ok {
			return nil, langerr.NewNoPos(langerr.ValueError, "db_query: no open connection %d", handle)
		}
		rows, err := db.Query(query)
		if err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "db_query: %v", err)
		}
		defer rows.Close()
		cols, err := rows.Columns()
		if err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "db_query: %v", err)
		}
		result := value.NewList()
		scratch := make([]interface{}, len(cols))
		cells := make([]interface{}, len(cols))
		for i := range scratch {
			scratch[i] = &cells[i]
		}
		for rows.Next() {
			if err := rows.Scan(scratch...); err != nil {
				result.Decref()
				return nil, langerr.Fatal(langerr.SystemError, "db_query: %v", err)
			}
			row := value.NewList()
			for _, c := range cells {
				cell := value.NewStr(fmt.Sprintf("%v", c))
				row.Append(cell)
				cell.Decref()
			}
			result.Append(row)
			row.Decref()
		}
		return result, nil
	})
}
