package migrations

import (
	_ "embed"

	"github.com/0xPolygon/bridgeledger/db"
	"github.com/0xPolygon/bridgeledger/db/types"
)

//go:embed sqlstate0001.sql
var mig001 string

func RunMigrations(dbPath string) error {
	migrations := []types.Migration{
		{
			ID:  "sqlstate0001",
			SQL: mig001,
		},
	}
	return db.RunMigrations(dbPath, migrations)
}
