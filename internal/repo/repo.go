package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
)

// Expected schema:
//
//	CREATE TABLE users (
//	    id              SERIAL PRIMARY KEY,
//	    login           TEXT UNIQUE NOT NULL,
//	    email           TEXT NOT NULL,
//	    password        TEXT NOT NULL,
//	    organisation    TEXT NOT NULL DEFAULT '',
//	    default_region  TEXT NOT NULL DEFAULT 'EU',
//	    default_terrain TEXT NOT NULL DEFAULT 'II',
//	    default_wind_ms DOUBLE PRECISION NOT NULL DEFAULT 0
//	);
//
//	CREATE TABLE wind_runs (
//	    id            SERIAL PRIMARY KEY,
//	    user_id       INTEGER NOT NULL REFERENCES users(id),
//	    region        TEXT NOT NULL,
//	    terrain       TEXT NOT NULL,
//	    ns_dim_m      DOUBLE PRECISION NOT NULL,
//	    ew_dim_m      DOUBLE PRECISION NOT NULL,
//	    height_m      DOUBLE PRECISION NOT NULL,
//	    basic_wind_ms DOUBLE PRECISION NOT NULL,
//	    qp_kpa        DOUBLE PRECISION NOT NULL,
//	    design_kpa    DOUBLE PRECISION NOT NULL,
//	    pairs         TEXT NOT NULL DEFAULT '',
//	    created_at    TIMESTAMPTZ NOT NULL
//	);

var ErrNotFound = errors.New("not found")

// clock is a package-level time source so tests can freeze run
// timestamps via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, upd ProfileUpdate) error
	LogRun(ctx context.Context, userID int, in wind.Input, res wind.Result) error
	RecentRuns(ctx context.Context, userID, limit int) ([]wind.RunRecord, error)
}

// Profile is the engineer-facing account record. The default fields
// pre-fill new calculations on the client.
type Profile struct {
	ID             int                  `json:"id"`
	Login          string               `json:"login"`
	Email          string               `json:"email"`
	Organisation   string               `json:"organisation"`
	DefaultRegion  wind.Region          `json:"default_region"`
	DefaultTerrain wind.TerrainCategory `json:"default_terrain"`
	DefaultWindMS  float64              `json:"default_wind_ms"`
}

type ProfileUpdate struct {
	Login          string
	Organisation   string
	DefaultRegion  wind.Region
	DefaultTerrain wind.TerrainCategory
	DefaultWindMS  float64
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenDB opens and verifies the connection pool. Connections without
// an explicit sslmode are forced to require.
func OpenDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", normalizeDSN(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func normalizeDSN(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

func (r *Postgres) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns zero values without an error for an unknown
// login, the caller treats that as a failed credential check.
func (r *Postgres) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *Postgres) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := `SELECT id, login, email, organisation, default_region, default_terrain, default_wind_ms
	          FROM users WHERE id=$1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Login, &p.Email, &p.Organisation,
		&p.DefaultRegion, &p.DefaultTerrain, &p.DefaultWindMS,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *Postgres) UpdateProfile(ctx context.Context, id int, upd ProfileUpdate) error {
	query := `UPDATE users
	          SET login=$2, organisation=$3, default_region=$4, default_terrain=$5, default_wind_ms=$6
	          WHERE id=$1`

	res, err := r.db.ExecContext(ctx, query, id,
		upd.Login, upd.Organisation, string(upd.DefaultRegion), string(upd.DefaultTerrain), upd.DefaultWindMS)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Postgres) LogRun(ctx context.Context, userID int, in wind.Input, res wind.Result) error {
	query := `INSERT INTO wind_runs
	          (user_id, region, terrain, ns_dim_m, ew_dim_m, height_m, basic_wind_ms, qp_kpa, design_kpa, pairs, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query, userID,
		string(res.Region), string(res.Terrain),
		in.NSDimM, in.EWDimM, in.HeightM, in.BasicWindMS,
		res.QpKPa, res.Summary.Design.NetKPa, res.Summary.Design.PairsLabel(),
		clock.Now().UTC(),
	)
	return err
}

func (r *Postgres) RecentRuns(ctx context.Context, userID, limit int) ([]wind.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, region, terrain, ns_dim_m, ew_dim_m, height_m, basic_wind_ms, qp_kpa, design_kpa, pairs, created_at
	          FROM wind_runs WHERE user_id=$1
	          ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []wind.RunRecord
	for rows.Next() {
		var rec wind.RunRecord
		if err := rows.Scan(
			&rec.ID, &rec.Region, &rec.Terrain,
			&rec.NSDimM, &rec.EWDimM, &rec.HeightM, &rec.BasicWindMS,
			&rec.QpKPa, &rec.DesignKPa, &rec.Pairs, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}
