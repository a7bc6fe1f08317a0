package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// blobRepo implements BlobRepo on the app_blobs table.
type blobRepo struct {
	drv *entsql.Driver
}

func (r *blobRepo) Get(ctx context.Context, key string) (*Blob, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(AppBlobsTable.Name)
	query, args := b.Select(t.C("value"), t.C("revision"), t.C("updated_at")).
		From(t).
		Where(entsql.EQ(t.C("key"), key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query blob %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query blob %q: %w", key, err)
		}
		return nil, nil
	}

	var (
		value     string
		revision  int64
		updatedAt int64
	)
	if err := rows.Scan(&value, &revision, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan blob %q: %w", key, err)
	}

	return &Blob{
		Key:       key,
		Value:     []byte(value),
		Revision:  revision,
		UpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

func (r *blobRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(AppBlobsTable.Name).
		Columns("key", "value", "revision", "updated_at").
		Values(key, string(value), 1, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("value")
				u.SetExcluded("updated_at")
				u.Add("revision", 1)
			}),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}
	return nil
}

func (r *blobRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(AppBlobsTable.Name).
		Where(entsql.EQ("key", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}
