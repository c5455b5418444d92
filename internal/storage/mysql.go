package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"siderunner/internal/config"
	"siderunner/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const runsTable = "siderunner_runs"

// MySQLStorage keeps one row per run in a MySQL table, the run output as JSON
type MySQLStorage struct {
	cfg *config.Config
}

// NewMySQLStorage returns a Storage backed by cfg.ResultsDSN
func NewMySQLStorage(cfg *config.Config) *MySQLStorage {
	return &MySQLStorage{cfg: cfg}
}

// dsn parses and validates the configured DSN
func (s *MySQLStorage) dsn() (*mysql.Config, error) {
	dsn, err := mysql.ParseDSN(s.cfg.ResultsDSN)
	if err != nil {
		return nil, fmt.Errorf("invalid results DSN: %w", err)
	}
	if dsn.DBName == "" {
		return nil, fmt.Errorf("results DSN must name a database")
	}
	dsn.ParseTime = true
	return dsn, nil
}

// open validates the DSN and connects
func (s *MySQLStorage) open() (*sql.DB, error) {
	dsn, err := s.dsn()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to results database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}
	return db, nil
}

// Migrate creates the results database and the runs table if they do not exist
func (s *MySQLStorage) Migrate() error {
	dsn, err := s.dsn()
	if err != nil {
		return err
	}
	if err := ensureDatabase(dsn); err != nil {
		return err
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(createRunsTable)
	if err != nil {
		return fmt.Errorf("create %s: %w", runsTable, err)
	}
	return nil
}

const createRunsTable = "CREATE TABLE IF NOT EXISTS `" + runsTable + "` (" +
	"`run_id` CHAR(36) NOT NULL PRIMARY KEY," +
	"`base_url` VARCHAR(255) NOT NULL," +
	"`failed_suites` INT NOT NULL," +
	"`failed_cases` INT NOT NULL," +
	"`output` JSON NOT NULL," +
	"`created_at` DATETIME NOT NULL," +
	"INDEX `idx_created_at` (`created_at`))"

// Save inserts the summary of a run
func (s *MySQLStorage) Save(results []domain.SuiteResult, duration time.Duration) error {
	return s.SaveOutput(NewRunOutput(s.cfg, results, duration))
}

// SaveOutput inserts or replaces the row of output's run
func (s *MySQLStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		"INSERT INTO `"+runsTable+"` (run_id, base_url, failed_suites, failed_cases, output, created_at) "+
			"VALUES (?, ?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE failed_suites = VALUES(failed_suites), failed_cases = VALUES(failed_cases), output = VALUES(output)",
		output.Meta.RunID, output.Meta.BaseURL, output.Meta.FailedSuites, output.Meta.FailedCases, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load returns the most recent run
func (s *MySQLStorage) Load() (*domain.RunOutput, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var data []byte
	err = db.QueryRow("SELECT output FROM `" + runsTable + "` ORDER BY created_at DESC LIMIT 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no runs stored in %s", runsTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}
