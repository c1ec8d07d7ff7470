package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

// ErrCreatureNotFound is returned when a creature lookup yields no results.
// It is dex.ErrNotFound so callers can test either.
var ErrCreatureNotFound = dex.ErrNotFound

// lookupSQL ranks an exact match on the normalised name first, then a
// case-insensitive match, then a substring match; ties go to insertion order.
const lookupSQL = `
SELECT dex_id, name, type1, type2, hp, attack, defense, sp_attack, sp_defense, speed, generation
FROM creatures
WHERE name = $1
   OR lower(name) = lower($2)
   OR strpos(lower(name), lower($2)) > 0
ORDER BY CASE
           WHEN name = $1 THEN 0
           WHEN lower(name) = lower($2) THEN 1
           ELSE 2
         END,
         id
LIMIT 1`

const upsertSQL = `
INSERT INTO creatures (dex_id, name, type1, type2, hp, attack, defense, sp_attack, sp_defense, speed, generation)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (name) DO UPDATE SET
    dex_id     = EXCLUDED.dex_id,
    type1      = EXCLUDED.type1,
    type2      = EXCLUDED.type2,
    hp         = EXCLUDED.hp,
    attack     = EXCLUDED.attack,
    defense    = EXCLUDED.defense,
    sp_attack  = EXCLUDED.sp_attack,
    sp_defense = EXCLUDED.sp_defense,
    speed      = EXCLUDED.speed,
    generation = EXCLUDED.generation`

// CreatureRepository provides creature persistence and implements dex.Provider.
type CreatureRepository struct {
	db *pgxpool.Pool
}

// NewCreatureRepository creates a CreatureRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCreatureRepository(db *pgxpool.Pool) *CreatureRepository {
	return &CreatureRepository{db: db}
}

// Lookup resolves name using the same precedence as dex.Index: exact normalised
// name, case-insensitive name, then substring.
//
// Postcondition: Returns the matching record, or an error wrapping
// ErrCreatureNotFound.
func (r *CreatureRepository) Lookup(ctx context.Context, name string) (*dex.Record, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty name", ErrCreatureNotFound)
	}
	rec, err := scanCreature(r.db.QueryRow(ctx, lookupSQL, dex.NormalizeName(trimmed), trimmed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrCreatureNotFound, name)
		}
		return nil, fmt.Errorf("querying creature %q: %w", name, err)
	}
	return rec, nil
}

// Upsert inserts rec, or replaces the stored creature with the same name.
//
// Precondition: rec must be non-nil.
// Postcondition: Returns nil once the row is stored, or a validation or database error.
func (r *CreatureRepository) Upsert(ctx context.Context, rec *dex.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, upsertSQL, upsertArgs(rec)...); err != nil {
		return fmt.Errorf("upserting creature %q: %w", rec.Name, err)
	}
	return nil
}

// UpsertAll stores every record in a single transaction, preserving slice order
// for newly inserted names.
//
// Postcondition: Either all records are stored or none are.
func (r *CreatureRepository) UpsertAll(ctx context.Context, recs []*dex.Record) error {
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rec := range recs {
			batch.Queue(upsertSQL, upsertArgs(rec)...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upserting %d creatures: %w", len(recs), err)
		}
		return nil
	})
}

// Count returns the number of stored creatures.
func (r *CreatureRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM creatures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting creatures: %w", err)
	}
	return n, nil
}

func upsertArgs(rec *dex.Record) []any {
	var type2 *string
	if len(rec.Types) > 1 {
		s := rec.Types[1].String()
		type2 = &s
	}
	s := rec.Stats
	return []any{
		rec.ID, rec.Name, rec.Types[0].String(), type2,
		s.HP, s.Attack, s.Defense, s.SpAttack, s.SpDefense, s.Speed,
		rec.Generation,
	}
}

func scanCreature(row pgx.Row) (*dex.Record, error) {
	var (
		rec   dex.Record
		type1 string
		type2 *string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &type1, &type2,
		&rec.Stats.HP, &rec.Stats.Attack, &rec.Stats.Defense,
		&rec.Stats.SpAttack, &rec.Stats.SpDefense, &rec.Stats.Speed,
		&rec.Generation,
	)
	if err != nil {
		return nil, err
	}
	names := []string{type1}
	if type2 != nil {
		names = append(names, *type2)
	}
	rec.Types, err = typechart.ParseTypes(names...)
	if err != nil {
		return nil, fmt.Errorf("creature %q: %w", rec.Name, err)
	}
	return &rec, nil
}
