package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

type Database struct {
	dbName      string
	MysqlClient *sql.DB
}

func NewDatabase(client *sql.DB, dbName string) (*Database, error) {
	return &Database{
		dbName:      dbName,
		MysqlClient: client,
	}, nil
}

// CreateDatabaseAndTable creates the working database if missing and applies
// every file under migrations/ in name order.
func (d *Database) CreateDatabaseAndTable() error {
	createDatabase := `CREATE DATABASE IF NOT EXISTS ` + d.dbName

	_, err := d.MysqlClient.Exec(createDatabase)
	if err != nil {
		return fmt.Errorf("failed to create db %s: %v", d.dbName, err)
	}

	useDatabase := `USE ` + d.dbName

	_, err = d.MysqlClient.Exec(useDatabase)
	if err != nil {
		return fmt.Errorf("failed to use db %s: %v", d.dbName, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	path := filepath.Join(wd, "migrations")

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %v", err)
	}

	for _, e := range entries {
		c, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %v", e.Name(), err)
		}

		_, err = d.MysqlClient.Exec(string(c))
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %v", e.Name(), err)
		}
	}

	return nil
}
