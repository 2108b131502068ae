package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/bestiary/internal/ir"
)

// WriteSource registers a source. The name is normalized and the hash token
// is always derived from it, so it matches the tokens WriteMonster stores.
// Re-registering a name updates its official flag.
func (s *Store) WriteSource(ctx context.Context, src ir.Source) (ir.Source, error) {
	return writeSource(ctx, s.db, src)
}

// WriteMonster inserts or replaces a monster row. A row is identified by
// name and sources, so reseeding a dataset does not duplicate it. When
// SourceHashes is empty it is derived from Sources.
func (s *Store) WriteMonster(ctx context.Context, m ir.Monster) error {
	return writeMonster(ctx, s.db, m)
}

// Seed writes sources and monsters in one transaction.
func (s *Store) Seed(ctx context.Context, sources []ir.Source, monsters []ir.Monster) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ir.NewStorageError("begin seed", err)
	}
	defer tx.Rollback()

	for _, src := range sources {
		if _, err := writeSource(ctx, tx, src); err != nil {
			return err
		}
	}
	for _, m := range monsters {
		if err := writeMonster(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return ir.NewStorageError("commit seed", err)
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func writeSource(ctx context.Context, db execer, src ir.Source) (ir.Source, error) {
	src.Name = ir.NormalizeName(src.Name)
	if src.Name == "" {
		return ir.Source{}, fmt.Errorf("write source: empty name")
	}
	src.Hash = ir.SourceHash(src.Name)

	_, err := db.ExecContext(ctx, `
		INSERT INTO sources (name, hash, official)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET official = excluded.official
	`, src.Name, src.Hash, src.Official)
	if err != nil {
		return ir.Source{}, ir.NewStorageError("write source", err)
	}
	return src, nil
}

func writeMonster(ctx context.Context, db execer, m ir.Monster) error {
	if m.Name == "" {
		return fmt.Errorf("write monster: empty name")
	}
	if m.SourceHashes == "" {
		m.SourceHashes = ir.SourceHashesFor(m.Sources)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO monsters
		(name, cr, size, type, tags, section, alignment, environment,
		 sources, sourcehashes, legendary, named, fid, hp, ac, init)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, sources) DO UPDATE SET
			cr = excluded.cr,
			size = excluded.size,
			type = excluded.type,
			tags = excluded.tags,
			section = excluded.section,
			alignment = excluded.alignment,
			environment = excluded.environment,
			sourcehashes = excluded.sourcehashes,
			legendary = excluded.legendary,
			named = excluded.named,
			fid = excluded.fid,
			hp = excluded.hp,
			ac = excluded.ac,
			init = excluded.init
	`,
		m.Name, m.CR, m.Size, m.Type, m.Tags, m.Section, m.Alignment, m.Environment,
		m.Sources, m.SourceHashes, m.Legendary, m.Named, m.FID, m.HP, m.AC, m.Init,
	)
	if err != nil {
		return ir.NewStorageError(fmt.Sprintf("write monster %q", m.Name), err)
	}
	return nil
}
