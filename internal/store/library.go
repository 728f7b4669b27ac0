package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/inodb/plasmidcanvas/internal/mapfile"
)

// Summary describes one stored map.
type Summary struct {
	Name       string
	BasePairs  int
	Features   int
	Source     FileFingerprint
	ImportedAt time.Time
}

// FeatureHit is a stored feature matched by name.
type FeatureHit struct {
	Plasmid   string
	Kind      string
	Name      string
	Start     *int
	End       *int
	Position  *int
	Direction *int
}

func nullable(v *int) driver.Value {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// Save stores def under its name, replacing any earlier copy. src records
// the file the definition came from and may be zero. The replacement runs in
// one transaction, so a failed save leaves the earlier copy intact.
func (s *Store) Save(def mapfile.Definition, src FileFingerprint) (err error) {
	style, err := yaml.Marshal(def.Style)
	if err != nil {
		return fmt.Errorf("encode style: %w", err)
	}

	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM plasmids WHERE name=?", def.Name); err != nil {
		return fmt.Errorf("clear plasmid: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO plasmids VALUES (?, ?, ?, ?, ?, ?, ?)",
		def.Name, int64(def.BasePairs), string(style),
		src.Path, src.Size, src.ModTime.UTC(), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert plasmid: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM features WHERE plasmid=?", def.Name); err != nil {
		return fmt.Errorf("clear features: %w", err)
	}

	// The appender writes through the same connection and so joins tx.
	if len(def.Features) > 0 {
		if err := appendFeatures(conn, def); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit plasmid: %w", err)
	}

	s.logger.Info("stored plasmid map",
		zap.String("plasmid", def.Name),
		zap.Int("features", len(def.Features)),
		zap.String("source", src.Path))
	return nil
}

// appendFeatures batch-inserts the feature rows using the Appender API.
// Rows are flushed when the appender closes.
func appendFeatures(conn *sql.Conn, def mapfile.Definition) error {
	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "features")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for i, fd := range def.Features {
		body, err := yaml.Marshal(fd)
		if err != nil {
			appender.Close()
			return fmt.Errorf("encode features[%d]: %w", i, err)
		}
		if err := appender.AppendRow(
			def.Name, int64(i), fd.Kind, fd.Name,
			nullable(fd.Start), nullable(fd.End), nullable(fd.Position), nullable(fd.Direction),
			string(body),
		); err != nil {
			appender.Close()
			return fmt.Errorf("append feature: %w", err)
		}
	}

	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush features: %w", err)
	}
	return nil
}

// Load returns the definition stored under name.
func (s *Store) Load(name string) (mapfile.Definition, error) {
	var (
		def   mapfile.Definition
		bp    int64
		style string
	)
	err := s.db.QueryRow("SELECT name, base_pairs, style FROM plasmids WHERE name=?", name).
		Scan(&def.Name, &bp, &style)
	if errors.Is(err, sql.ErrNoRows) {
		return mapfile.Definition{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return mapfile.Definition{}, fmt.Errorf("query plasmid: %w", err)
	}
	def.BasePairs = int(bp)
	if err := yaml.Unmarshal([]byte(style), &def.Style); err != nil {
		return mapfile.Definition{}, fmt.Errorf("decode style: %w", err)
	}

	rows, err := s.db.Query("SELECT definition FROM features WHERE plasmid=? ORDER BY idx", name)
	if err != nil {
		return mapfile.Definition{}, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return mapfile.Definition{}, fmt.Errorf("scan feature: %w", err)
		}
		var fd mapfile.FeatureDef
		if err := yaml.Unmarshal([]byte(body), &fd); err != nil {
			return mapfile.Definition{}, fmt.Errorf("decode feature: %w", err)
		}
		def.Features = append(def.Features, fd)
	}
	if err := rows.Err(); err != nil {
		return mapfile.Definition{}, fmt.Errorf("iterate features: %w", err)
	}
	return def, nil
}

// List returns a summary of every stored map ordered by name.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT
		p.name, p.base_pairs, count(f.idx),
		p.source_path, p.source_size, p.source_mtime, p.imported_at
		FROM plasmids p LEFT JOIN features f ON f.plasmid = p.name
		GROUP BY ALL
		ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("list plasmids: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			bp, count int64
		)
		if err := rows.Scan(&sum.Name, &bp, &count,
			&sum.Source.Path, &sum.Source.Size, &sum.Source.ModTime, &sum.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan plasmid: %w", err)
		}
		sum.BasePairs = int(bp)
		sum.Features = int(count)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plasmids: %w", err)
	}
	return out, nil
}

// Fingerprint returns the source file recorded for name.
func (s *Store) Fingerprint(name string) (FileFingerprint, error) {
	var fp FileFingerprint
	err := s.db.QueryRow("SELECT source_path, source_size, source_mtime FROM plasmids WHERE name=?", name).
		Scan(&fp.Path, &fp.Size, &fp.ModTime)
	if errors.Is(err, sql.ErrNoRows) {
		return FileFingerprint{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return FileFingerprint{}, fmt.Errorf("query fingerprint: %w", err)
	}
	return fp, nil
}

// Delete removes the map stored under name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM plasmids WHERE name=?", name)
	if err != nil {
		return fmt.Errorf("delete plasmid: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if _, err := s.db.Exec("DELETE FROM features WHERE plasmid=?", name); err != nil {
		return fmt.Errorf("delete features: %w", err)
	}
	return nil
}

// SearchFeatures returns every stored feature with the given name across
// all maps.
func (s *Store) SearchFeatures(name string) ([]FeatureHit, error) {
	rows, err := s.db.Query(`SELECT
		plasmid, kind, name, start_pos, end_pos, position, direction
		FROM features
		WHERE name=?
		ORDER BY plasmid, idx`, name)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var hits []FeatureHit
	for rows.Next() {
		var (
			h                    FeatureHit
			start, end, pos, dir sql.NullInt64
		)
		if err := rows.Scan(&h.Plasmid, &h.Kind, &h.Name, &start, &end, &pos, &dir); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		h.Start, h.End, h.Position, h.Direction = intPtr(start), intPtr(end), intPtr(pos), intPtr(dir)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return hits, nil
}
