package repositories

import (
	"context"

	"pkbmadmin/internal/models"
)

// SchemaRepository reads the live table layout of the public schema.
type SchemaRepository interface {
	Describe(ctx context.Context) (map[string][]models.ColumnInfo, error)
}

type schemaRepo struct {
	db DBTX
}

func NewSchemaRepo(db DBTX) SchemaRepository {
	return &schemaRepo{db: db}
}

func (r *schemaRepo) Describe(ctx context.Context) (map[string][]models.ColumnInfo, error) {
	query := `
		SELECT table_name, column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public'
		ORDER BY table_name, ordinal_position
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schema := map[string][]models.ColumnInfo{}
	for rows.Next() {
		var table string
		var col models.ColumnInfo
		if err := rows.Scan(&table, &col.Column, &col.Type, &col.Nullable); err != nil {
			return nil, err
		}
		schema[table] = append(schema[table], col)
	}
	return schema, rows.Err()
}
