package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/padraicbc/racebook/models"
)

// ResultRow is a flat scan target for the results join: one runner's
// finishing record with the horse and jockey names resolved.
type ResultRow struct {
	ID         int     `bun:"id"`
	Position   int     `bun:"position"`
	RaceTime   string  `bun:"race_time"`
	HorseName  string  `bun:"horse_name"`
	JockeyName string  `bun:"jockey_name"`
	Rating     float64 `bun:"rating"`
}

// ListOwners returns all owners ordered by name.
func (s *Store) ListOwners(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	err := s.db.NewSelect().Model(&owners).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}

// FindOwner returns the owner with the given id, or ErrNotFound.
func (s *Store) FindOwner(ctx context.Context, id int) (*models.Owner, error) {
	owner := &models.Owner{}
	err := s.db.NewSelect().Model(owner).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}
	return owner, nil
}

// FindHorsesByOwner returns the owner's horses ordered by name.
func (s *Store) FindHorsesByOwner(ctx context.Context, ownerID int) ([]models.Horse, error) {
	var horses []models.Horse
	err := s.db.NewSelect().Model(&horses).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("find horses by owner: %w", err)
	}
	return horses, nil
}

// ListJockeys returns all jockeys ordered by rating, best first.
func (s *Store) ListJockeys(ctx context.Context) ([]models.Jockey, error) {
	var jockeys []models.Jockey
	err := s.db.NewSelect().Model(&jockeys).
		Order("rating DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jockeys: %w", err)
	}
	return jockeys, nil
}

// ListRaces returns all races, most recent first.
func (s *Store) ListRaces(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	err := s.db.NewSelect().Model(&races).
		Order("date DESC", "time DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	return races, nil
}

// FindRace returns the race with the given id, or ErrNotFound.
func (s *Store) FindRace(ctx context.Context, id int) (*models.Race, error) {
	race := &models.Race{}
	err := s.db.NewSelect().Model(race).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find race: %w", err)
	}
	return race, nil
}

// FindResultsByRace returns the race's results joined with horse and jockey
// names, ordered by finishing position.
func (s *Store) FindResultsByRace(ctx context.Context, raceID int) ([]ResultRow, error) {
	var rows []ResultRow
	err := s.db.NewSelect().
		TableExpr("results AS r").
		ColumnExpr("r.id, r.position, r.race_time").
		ColumnExpr("h.name AS horse_name").
		ColumnExpr("j.name AS jockey_name, j.rating").
		Join("INNER JOIN horses h ON h.id = r.horse_id").
		Join("INNER JOIN jockeys j ON j.id = r.jockey_id").
		Where("r.race_id = ?", raceID).
		OrderExpr("r.position ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("find results by race: %w", err)
	}
	return rows, nil
}
