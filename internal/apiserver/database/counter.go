package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"gorm.io/gorm"
)

// idSpec describes one synthetic identifier family: counter key, prefix,
// zero-padded width, and the table/column holding already-issued values.
type idSpec struct {
	key    string
	prefix string
	width  int
	table  string
	column string
}

var idSpecs = map[string]idSpec{
	"pengguna":     {key: "pengguna", prefix: "U", width: 4, table: "tabel_pengguna", column: "id_pengguna"},
	"personel":     {key: "personel", prefix: "P", width: 4, table: "tabel_personel", column: "id_personel"},
	"kategori":     {key: "kategori", prefix: "KT", width: 2, table: "ref_kategori", column: "id_kategori"},
	"jenis_alat":   {key: "jenis_alat", prefix: "JA", width: 2, table: "ref_jenis_alat", column: "id_jenis_alat"},
	"jenis_sistem": {key: "jenis_sistem", prefix: "JS", width: 2, table: "ref_jenis_sistem", column: "id_jenis"},
	"sistem":       {key: "sistem", prefix: "S", width: 4, table: "tabel_sistem", column: "id_sistem"},
	"distribusi":   {key: "distribusi", prefix: "PL", width: 3, table: "tabel_distribusi", column: "id_distribusi"},
}

// nextID allocates the next identifier for the given family inside tx. The
// counter row is bumped with a single relative UPDATE so concurrent inserts
// in separate transactions cannot read the same value.
func nextID(tx *gorm.DB, key string) (string, error) {
	spec, ok := idSpecs[key]
	if !ok {
		return "", fmt.Errorf("unknown identifier family: %s", key)
	}

	res := tx.Model(&Counter{}).
		Where("kunci = ?", spec.key).
		Update("nilai", gorm.Expr("nilai + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&Counter{Key: spec.key, Value: 1}).Error; err != nil {
			return "", err
		}
		return formatID(spec, 1), nil
	}

	var c Counter
	if err := tx.Where("kunci = ?", spec.key).First(&c).Error; err != nil {
		return "", err
	}
	return formatID(spec, c.Value), nil
}

func formatID(spec idSpec, n int64) string {
	return fmt.Sprintf("%s%0*d", spec.prefix, spec.width, n)
}

// numericSuffix strips the non-numeric prefix from an issued identifier and
// parses the remainder; returns 0 for values it cannot parse.
func numericSuffix(id string) int64 {
	start := -1
	for i, r := range id {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	n, err := strconv.ParseInt(id[start:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SyncCounters raises every counter to the highest identifier already
// present in its table, so databases migrated from the legacy max()+1
// scheme keep issuing successors (X0042 -> X0043).
func (d *DB) SyncCounters(ctx context.Context) error {
	db := getDBFromContext(ctx, d.db)
	for _, spec := range idSpecs {
		var ids []string
		if err := db.Table(spec.table).Pluck(spec.column, &ids).Error; err != nil {
			return fmt.Errorf("failed to read %s identifiers: %w", spec.table, err)
		}

		var maxVal int64
		for _, id := range ids {
			if n := numericSuffix(id); n > maxVal {
				maxVal = n
			}
		}
		if maxVal == 0 {
			continue
		}

		var c Counter
		err := db.Where("kunci = ?", spec.key).First(&c).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&Counter{Key: spec.key, Value: maxVal}).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case c.Value < maxVal:
			if err := db.Model(&Counter{}).Where("kunci = ?", spec.key).
				Update("nilai", maxVal).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
