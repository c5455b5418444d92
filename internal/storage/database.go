package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ensureDatabase creates the database named by dsn if the server does not have it
func ensureDatabase(dsn *mysql.Config) error {
	if !isValidDatabaseName(dsn.DBName) {
		return fmt.Errorf("invalid database name: %s", dsn.DBName)
	}

	server := dsn.Clone()
	server.DBName = ""
	db, err := sql.Open("mysql", server.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(db, dsn.DBName)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", dsn.DBName, err)
	}
	if exists {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dsn.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dsn.DBName, err)
	}
	return nil
}

func databaseExists(db *sql.DB, name string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, name).Scan(&exists)
	return exists, err
}

// isValidDatabaseName allows names that are safe inside backquotes
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return !strings.ContainsAny(name, "`'\";/\\ ")
}
