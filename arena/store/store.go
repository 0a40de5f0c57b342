// Package store persists aggregate results: agents, their career
// ratings, and tournament outcomes. Individual hands are never stored.
package store

import (
	"context"
	"embed"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

/* -----------------------------
   Write helpers
------------------------------*/

// UpsertBot registers an agent by name and returns its id.
func (db *DB) UpsertBot(ctx context.Context, name, kind string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
        INSERT INTO bots(name, kind)
        VALUES ($1,$2)
        ON CONFLICT (name) DO UPDATE SET kind = EXCLUDED.kind
        RETURNING id
    `, name, kind).Scan(&id)
	return id, err
}

// GetOrInitRatings ensures a bot_ratings row exists and fetches it.
func (db *DB) GetOrInitRatings(ctx context.Context, botID int64) (elo, gR, gRD, gSigma float64, sims, hands int, err error) {
	if _, e := db.Exec(ctx, `INSERT INTO bot_ratings(bot_id) VALUES ($1) ON CONFLICT (bot_id) DO NOTHING`, botID); e != nil {
		return 0, 0, 0, 0, 0, 0, e
	}
	err = db.QueryRow(ctx, `
		SELECT elo, g_rating, g_rd, g_sigma, sims, hands
		  FROM bot_ratings WHERE bot_id = $1
	`, botID).Scan(&elo, &gR, &gRD, &gSigma, &sims, &hands)
	return
}

// UpdateBotRatings persists final ratings and bumps career counters.
func (db *DB) UpdateBotRatings(ctx context.Context, botID int64, elo, gR, gRD, gSigma float64, simsInc, winsInc, handsInc, chipsInc int) error {
	_, err := db.Exec(ctx, `
		UPDATE bot_ratings
		   SET elo = $2,
		       g_rating = $3,
		       g_rd = $4,
		       g_sigma = $5,
		       sims = sims + $6,
		       wins = wins + $7,
		       hands = hands + $8,
		       net_chips = net_chips + $9,
		       updated_at = now()
		 WHERE bot_id = $1
	`, botID, elo, gR, gRD, gSigma, simsInc, winsInc, handsInc, chipsInc)
	return err
}

// CreateTournament records a tournament header and returns its row id.
func (db *DB) CreateTournament(ctx context.Context, publicID string, sb, bb, startStack, sims, subsetSize, maxHands int) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO tournaments(public_id, sb, bb, start_stack, sims, subset_size, max_hands)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, publicID, sb, bb, startStack, sims, subsetSize, maxHands).Scan(&id)
	return id, err
}

// InsertTournamentResults writes every agent's final line in one
// transaction.
func (db *DB) InsertTournamentResults(ctx context.Context, tournamentID int64, rows []TournamentResultRow) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed

	for _, r := range rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO tournament_results(
				tournament_id, bot_id, sims, wins, hands, net_chips,
				elo, g_rating, g_rd, g_sigma
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, tournamentID, r.BotID, r.Sims, r.Wins, r.Hands, r.NetChips,
			r.Elo, r.GRating, r.GRD, r.GSigma); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type TournamentResultRow struct {
	BotID    int64
	Name     string
	Sims     int
	Wins     int
	Hands    int
	NetChips int
	Elo      float64
	GRating  float64
	GRD      float64
	GSigma   float64
}

func (db *DB) CompleteTournament(ctx context.Context, tournamentID int64) error {
	_, err := db.Exec(ctx, `UPDATE tournaments SET ended_at = now() WHERE id = $1`, tournamentID)
	return err
}

/* -----------------------------
   Read helpers (leaderboard API)
------------------------------*/

type LeaderboardRow struct {
	BotID    int64     `json:"bot_id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Elo      float64   `json:"elo"`
	GRating  float64   `json:"g_rating"`
	GRD      float64   `json:"g_rd"`
	Sims     int       `json:"sims"`
	Wins     int       `json:"wins"`
	Hands    int       `json:"hands"`
	NetChips int       `json:"net_chips"`
	Updated  time.Time `json:"updated_at"`
}

func (db *DB) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	rows, err := db.Query(ctx, `
		SELECT b.id, b.name, b.kind,
		       COALESCE(r.elo, 1500), COALESCE(r.g_rating, 1500), COALESCE(r.g_rd, 350),
		       COALESCE(r.sims, 0), COALESCE(r.wins, 0), COALESCE(r.hands, 0),
		       COALESCE(r.net_chips, 0), COALESCE(r.updated_at, now())
		  FROM bots b
		  LEFT JOIN bot_ratings r ON r.bot_id = b.id
		 ORDER BY COALESCE(r.g_rating, 1500) DESC, b.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardRow{}
	for rows.Next() {
		var x LeaderboardRow
		if err := rows.Scan(&x.BotID, &x.Name, &x.Kind, &x.Elo, &x.GRating, &x.GRD,
			&x.Sims, &x.Wins, &x.Hands, &x.NetChips, &x.Updated); err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

type TournamentRow struct {
	ID         int64      `json:"id"`
	PublicID   string     `json:"public_id"`
	CreatedAt  time.Time  `json:"created_at"`
	EndedAt    *time.Time `json:"ended_at"`
	SB         int        `json:"sb"`
	BB         int        `json:"bb"`
	StartStack int        `json:"start_stack"`
	Sims       int        `json:"sims"`
	SubsetSize int        `json:"subset_size"`
	MaxHands   int        `json:"max_hands"`
}

type TournamentLine struct {
	Name     string  `json:"name"`
	Sims     int     `json:"sims"`
	Wins     int     `json:"wins"`
	Hands    int     `json:"hands"`
	NetChips int     `json:"net_chips"`
	Elo      float64 `json:"elo"`
	GRating  float64 `json:"g_rating"`
}

// LastTournament fetches the most recent tournament header with its
// per-agent result lines.
func (db *DB) LastTournament(ctx context.Context) (*TournamentRow, []TournamentLine, error) {
	var t TournamentRow
	err := db.QueryRow(ctx, `
		SELECT id, public_id, created_at, ended_at, sb, bb, start_stack, sims, subset_size, max_hands
		  FROM tournaments
		 ORDER BY id DESC
		 LIMIT 1
	`).Scan(&t.ID, &t.PublicID, &t.CreatedAt, &t.EndedAt, &t.SB, &t.BB, &t.StartStack, &t.Sims, &t.SubsetSize, &t.MaxHands)
	if err != nil {
		return nil, nil, err
	}
	rows, err := db.Query(ctx, `
		SELECT b.name, tr.sims, tr.wins, tr.hands, tr.net_chips, tr.elo, tr.g_rating
		  FROM tournament_results tr
		  JOIN bots b ON b.id = tr.bot_id
		 WHERE tr.tournament_id = $1
		 ORDER BY tr.g_rating DESC, b.name
	`, t.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	lines := []TournamentLine{}
	for rows.Next() {
		var l TournamentLine
		if err := rows.Scan(&l.Name, &l.Sims, &l.Wins, &l.Hands, &l.NetChips, &l.Elo, &l.GRating); err != nil {
			return nil, nil, err
		}
		lines = append(lines, l)
	}
	return &t, lines, rows.Err()
}
