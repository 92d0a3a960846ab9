package pg

import (
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration found in dir of fsys.
func Migrate(cfg Config, fsys fs.FS, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	db, err := newSqlConnection(cfg)
	if err != nil {
		return errors.Wrap(err, "open migration connection")
	}
	defer db.Close()

	if err = goose.Up(db, dir); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
