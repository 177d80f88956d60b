package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// InitDB opens the Postgres connection and makes sure both tables exist.
// Records are stored as JSONB documents keyed by identifier, so attribute
// removal and alias-entry replacement map onto a single document write.
func InitDB(dsn, linksTable, tenantLinksTable string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	createLinks := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		record JSONB NOT NULL
	);`, pgx.Identifier{linksTable}.Sanitize())

	createTenantLinks := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
		id TEXT NOT NULL,
		link_id TEXT NOT NULL,
		PRIMARY KEY (id, link_id)
	);`, pgx.Identifier{tenantLinksTable}.Sanitize())

	if _, err := db.Exec(createLinks); err != nil {
		return nil, err
	}
	if _, err := db.Exec(createTenantLinks); err != nil {
		return nil, err
	}

	logger.Info("database connected and tables ready",
		zap.String("linksTable", linksTable),
		zap.String("tenantLinksTable", tenantLinksTable))
	return db, nil
}

// PostgresStore implements RecordStore on database/sql with the pgx stdlib
// driver.
type PostgresStore struct {
	db               *sql.DB
	linksTable       string
	tenantLinksTable string
	logger           *zap.Logger
}

func NewPostgresStore(db *sql.DB, linksTable, tenantLinksTable string, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:               db,
		linksTable:       pgx.Identifier{linksTable}.Sanitize(),
		tenantLinksTable: pgx.Identifier{tenantLinksTable}.Sanitize(),
		logger:           logger,
	}
}

func (s *PostgresStore) GetLink(ctx context.Context, id string) (*models.LinkRecord, float64, error) {
	var doc []byte
	query := fmt.Sprintf("SELECT record FROM %s WHERE id = $1;", s.linksTable)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, costMiss, nil
	}
	if err != nil {
		return nil, costMiss, err
	}

	var rec models.LinkRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, costHit, err
	}
	return &rec, costHit, nil
}

func (s *PostgresStore) PutLink(ctx context.Context, record *models.LinkRecord) (float64, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO %s (id, record) VALUES ($1, $2);", s.linksTable)
	if _, err := s.db.ExecContext(ctx, query, record.ID, doc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn("link id already taken", zap.String("id", record.ID))
			return costHit, ErrConflict
		}
		return costHit, err
	}
	return costHit, nil
}

func (s *PostgresStore) UpdateLink(ctx context.Context, id string, patch LinkPatch) (float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var doc []byte
	selectQuery := fmt.Sprintf("SELECT record FROM %s WHERE id = $1 FOR UPDATE;", s.linksTable)
	err = tx.QueryRowContext(ctx, selectQuery, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return costMiss, ErrNotFound
	}
	if err != nil {
		return costMiss, err
	}

	var rec models.LinkRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return costHit, err
	}
	patch.Apply(&rec)

	doc, err = json.Marshal(&rec)
	if err != nil {
		return costHit, err
	}

	updateQuery := fmt.Sprintf("UPDATE %s SET record = $2 WHERE id = $1;", s.linksTable)
	if _, err := tx.ExecContext(ctx, updateQuery, id, doc); err != nil {
		return costHit, err
	}
	return costHit, tx.Commit()
}

func (s *PostgresStore) HasTenantLink(ctx context.Context, tenantKey, id string) (bool, float64, error) {
	var found string
	query := fmt.Sprintf("SELECT link_id FROM %s WHERE id = $1 AND link_id = $2;", s.tenantLinksTable)
	err := s.db.QueryRowContext(ctx, query, tenantKey, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, costMiss, nil
	}
	if err != nil {
		return false, costMiss, err
	}
	return true, costHit, nil
}

func (s *PostgresStore) AddTenantLink(ctx context.Context, tenantKey, id string) (float64, error) {
	query := fmt.Sprintf("INSERT INTO %s (id, link_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;", s.tenantLinksTable)
	if _, err := s.db.ExecContext(ctx, query, tenantKey, id); err != nil {
		return costHit, err
	}
	return costHit, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
