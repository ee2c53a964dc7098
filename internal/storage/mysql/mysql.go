package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"prodlog/internal/config"
	"prodlog/internal/storage"
)

type Storage struct {
	db  *sql.DB
	now func() time.Time
}

var _ storage.Store = (*Storage)(nil)

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	s := &Storage{db: db, now: time.Now}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL,
		operator_id   VARCHAR(64)  NULL,
		KEY idx_users_username (username)
	) DEFAULT CHARSET = utf8mb4 COLLATE = utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS production_entries (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id     BIGINT      NOT NULL,
		operator_id VARCHAR(64) NOT NULL,
		process     VARCHAR(64) NOT NULL,
		station     VARCHAR(8)  NOT NULL,
		shift_time  VARCHAR(16) NOT NULL,
		created_at  DATETIME(6) NOT NULL,
		KEY idx_entries_process_station (process, station),
		KEY idx_entries_created_at (created_at)
	) DEFAULT CHARSET = utf8mb4 COLLATE = utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS production_details (
		id       BIGINT AUTO_INCREMENT PRIMARY KEY,
		entry_id BIGINT      NOT NULL,
		model    VARCHAR(16) NOT NULL,
		quantity DOUBLE      NOT NULL,
		KEY idx_details_entry (entry_id),
		CONSTRAINT fk_details_entry FOREIGN KEY (entry_id) REFERENCES production_entries (id)
	) DEFAULT CHARSET = utf8mb4 COLLATE = utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS instructions (
		id             BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id        BIGINT      NOT NULL,
		type           VARCHAR(64) NOT NULL,
		target_process VARCHAR(64) NOT NULL,
		target_station VARCHAR(32) NOT NULL,
		details        TEXT        NULL,
		created_at     DATETIME(6) NOT NULL,
		KEY idx_instructions_created_at (created_at)
	) DEFAULT CHARSET = utf8mb4 COLLATE = utf8mb4_bin`,
}

// Migrate создает таблицы, если их нет
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// stamp - время создания с точностью DATETIME(6), чтобы возвращаемое значение совпадало с сохраненным
func (s *Storage) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func placeholders(n int) string {
	return strings.TrimRight(strings.Repeat("?,", n), ",")
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
