package clickhouse

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/terravest/platform/internal/shared/infra/analytics"
)

// ReadLog writes query/search executions into a ClickHouse table.
type ReadLog struct {
	db *sql.DB
}

var _ analytics.Recorder = (*ReadLog)(nil)

func NewReadLog(addr, dbName string) (*ReadLog, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &ReadLog{db: conn}, nil
}

func (r *ReadLog) Record(event analytics.ReadEvent) error {
	at := event.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := r.db.Exec(
		"INSERT INTO reads_log (entity, op, filter_keys, total, duration_ms, event_time) VALUES (?, ?, ?, ?, ?, ?)",
		event.Entity,
		event.Op,
		strings.Join(event.FilterKeys, ","),
		event.Total,
		event.Duration.Milliseconds(),
		at,
	)
	return err
}

// InitSchema creates the analytics table if it does not exist. Partitioned
// by month, ordered by the usual slicing dimensions.
func (r *ReadLog) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS reads_log (
			entity      String,
			op          String,
			filter_keys String,
			total       Int64,
			duration_ms Int64,
			event_time  DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (entity, op, event_time);
	`
	_, err := r.db.Exec(query)
	return err
}
