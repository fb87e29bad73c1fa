package optdep

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDriverName is the database/sql driver name exposed as the sqlite
// capability's handle.
const SQLiteDriverName = "sqlite3"

func init() {
	libVersion, _, _ := sqlite3.Version()
	Register(Capability{
		Name:   SQLite,
		Handle: SQLiteDriverName,
		Attrs:  map[string]string{"version": libVersion},
		Check:  checkSQLite,
	})
}

// checkSQLite confirms the driver actually works by opening an in-memory
// database. Presence of the package alone is not enough: the driver is
// cgo-backed and can be compiled out.
func checkSQLite() error {
	db, err := sql.Open(SQLiteDriverName, ":memory:")
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}
