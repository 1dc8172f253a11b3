package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_game_tables.sql
var createGameTablesSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createGameTablesSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TABLE IF EXISTS session_items;
				DROP TABLE IF EXISTS scramble_usage;
				DROP TABLE IF EXISTS question_usage;
				DROP TABLE IF EXISTS scramble_words;
				DROP TABLE IF EXISTS questions`)
			return err
		},
	)
}
