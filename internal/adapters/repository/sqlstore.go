package repository

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/logger"
)

// Supported SQL drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Column widths for the indexed text columns. name+command fit a utf8mb4
// InnoDB index key.
const (
	maxNameLen    = 191
	maxCommandLen = 512
)

// schemas hold the DDL statements per driver; %[1]s is the table. The
// (name, command, time_ns, id) index serves the best-per-pair lookup.
var schemas = map[string][]string{
	DriverMySQL: {`CREATE TABLE IF NOT EXISTS %[1]s (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(191) NOT NULL,
	command VARCHAR(512) NOT NULL,
	time_ns DOUBLE NOT NULL,
	hash TEXT NOT NULL,
	language TEXT NOT NULL,
	INDEX best_run (name, command, time_ns, id)
)`},
	DriverSQLite: {`CREATE TABLE IF NOT EXISTS %[1]s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(191) NOT NULL,
	command VARCHAR(512) NOT NULL,
	time_ns REAL NOT NULL,
	hash TEXT NOT NULL,
	language TEXT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS %[1]s_best_run ON %[1]s (name, command, time_ns, id)`,
	},
}

// SQLStore keeps scores in a single SQL table.
type SQLStore struct {
	db     *sqlx.DB
	driver string
	table  string
	log    logger.Logger

	insertQuery string
	allQuery    string
	bestQuery   string
}

// OpenMySQL connects to MySQL. cfg.DSN is used verbatim when set;
// otherwise the DSN is assembled from the discrete fields.
func OpenMySQL(ctx context.Context, cfg config.SQL, opts ...Option) (*SQLStore, error) {
	dsn := cfg.DSN
	if dsn == "" {
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Database
		dsn = mc.FormatDSN()
	}
	db, err := sqlx.ConnectContext(ctx, DriverMySQL, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	s, err := NewSQLStore(ctx, db, DriverMySQL, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	s, err := NewSQLStore(ctx, db, DriverSQLite, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore uses an existing connection and ensures the table exists.
func NewSQLStore(ctx context.Context, db *sqlx.DB, driver string, opts ...Option) (*SQLStore, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("sql store %q: %w", driver, ErrUnknownDriver)
	}
	o := newOptions(opts...)
	if !tableName.MatchString(o.table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, o.table)
	}

	const cols = "name, command, time_ns, hash, language"
	s := &SQLStore{
		db:     db,
		driver: driver,
		table:  o.table,
		log:    o.logger,

		insertQuery: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:name, :command, :time_ns, :hash, :language)`, o.table, cols),
		allQuery:    fmt.Sprintf(`SELECT %s FROM %s ORDER BY time_ns, id`, cols, o.table),
		bestQuery: fmt.Sprintf(`SELECT s.name, s.command, s.time_ns, s.hash, s.language FROM %[1]s s
WHERE s.id = (
	SELECT b.id FROM %[1]s b
	WHERE b.name = s.name AND b.command = s.command
	ORDER BY b.time_ns, b.id LIMIT 1
)
ORDER BY s.time_ns, s.id`, o.table),
	}
	if err := s.createTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) createTable(ctx context.Context) error {
	for _, stmt := range schemas[s.driver] {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(stmt, s.table)); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
	}
	return nil
}

func (s *SQLStore) Insert(ctx context.Context, sc score.Score) error {
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	if err := checkWidths(sc); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	if _, err := s.db.NamedExecContext(ctx, s.insertQuery, sc); err != nil {
		return fmt.Errorf("insert into %s: %w", s.table, err)
	}
	return nil
}

// checkWidths rejects values longer than their column, in characters.
func checkWidths(sc score.Score) error {
	switch {
	case utf8.RuneCountInString(sc.Name) > maxNameLen:
		return fmt.Errorf("%w: name longer than %d characters", score.ErrValidation, maxNameLen)
	case utf8.RuneCountInString(sc.Command) > maxCommandLen:
		return fmt.Errorf("%w: command longer than %d characters", score.ErrValidation, maxCommandLen)
	}
	return nil
}

func (s *SQLStore) BestPerPlayerAndCommand(ctx context.Context, limit int) ([]score.Score, error) {
	return s.selectScores(ctx, "best per player and command", s.bestQuery, limit)
}

func (s *SQLStore) All(ctx context.Context, limit int) ([]score.Score, error) {
	return s.selectScores(ctx, "all", s.allQuery, limit)
}

func (s *SQLStore) selectScores(ctx context.Context, op, query string, limit int) ([]score.Score, error) {
	if err := checkLimit(limit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows := []score.Score{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Clear drops and re-creates the table.
func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, s.table)); err != nil {
		return fmt.Errorf("drop table %s: %w", s.table, err)
	}
	s.log.Info(ctx, "score table dropped", logger.String("table", s.table))
	return s.createTable(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
