package database

import (
	"context"
)

var systemTypeSpec = listSpec{
	searchColumns: []string{"id_jenis", "jenis", "trigram_pwk"},
	sortColumns: map[string]string{
		"id":     "id_jenis",
		"name":   "jenis",
		"office": "trigram_pwk",
	},
	defaultSort:  "id_jenis",
	officeColumn: "trigram_pwk",
}

func (d *DB) ListSystemTypes(ctx context.Context, opt ListOptions) (*ListResult[SystemType], error) {
	return listRows[SystemType](getDBFromContext(ctx, d.db), opt, systemTypeSpec)
}

func (d *DB) ExportSystemTypes(ctx context.Context, opt ListOptions) ([]SystemType, error) {
	return allRows[SystemType](getDBFromContext(ctx, d.db), opt, systemTypeSpec)
}

func (d *DB) AllSystemTypes(ctx context.Context) ([]SystemType, error) {
	var rows []SystemType
	err := getDBFromContext(ctx, d.db).Order("id_jenis asc").Find(&rows).Error
	return rows, err
}

func (d *DB) GetSystemType(ctx context.Context, id string) (*SystemType, error) {
	var t SystemType
	if err := getDBFromContext(ctx, d.db).Where("id_jenis = ?", id).First(&t).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &t, nil
}

func (d *DB) CreateSystemType(ctx context.Context, t *SystemType) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		id, err := nextID(tx, "jenis_sistem")
		if err != nil {
			return err
		}
		t.ID = id
		return tx.Create(t).Error
	})
}

func (d *DB) UpdateSystemType(ctx context.Context, t *SystemType) error {
	return getDBFromContext(ctx, d.db).Save(t).Error
}

// DeleteSystemType refuses removal while system records still reference it.
func (d *DB) DeleteSystemType(ctx context.Context, id string) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var count int64
		if err := tx.Model(&SystemRecord{}).Where("id_jenis = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrReferenced
		}

		res := tx.Where("id_jenis = ?", id).Delete(&SystemType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// System records carry no trigram of their own; ownership flows through the
// record's type, so the office scope joins ref_jenis_sistem.
var systemRecordSpec = listSpec{
	searchColumns: []string{
		"tabel_sistem.id_sistem", "tabel_sistem.no_sistem",
		"tabel_sistem.nama_sistem", "tabel_sistem.id_jenis", "tabel_sistem.status",
	},
	sortColumns: map[string]string{
		"id":     "tabel_sistem.id_sistem",
		"year":   "tabel_sistem.tahun",
		"type":   "tabel_sistem.id_jenis",
		"no":     "tabel_sistem.no_sistem",
		"name":   "tabel_sistem.nama_sistem",
		"status": "tabel_sistem.status",
	},
	defaultSort:  "tabel_sistem.id_sistem",
	officeColumn: "ref_jenis_sistem.trigram_pwk",
	officeJoin:   "JOIN ref_jenis_sistem ON ref_jenis_sistem.id_jenis = tabel_sistem.id_jenis",
	table:        "tabel_sistem",
}

func (d *DB) ListSystemRecords(ctx context.Context, opt ListOptions) (*ListResult[SystemRecord], error) {
	return listRows[SystemRecord](getDBFromContext(ctx, d.db), opt, systemRecordSpec)
}

func (d *DB) ExportSystemRecords(ctx context.Context, opt ListOptions) ([]SystemRecord, error) {
	return allRows[SystemRecord](getDBFromContext(ctx, d.db), opt, systemRecordSpec)
}

func (d *DB) GetSystemRecord(ctx context.Context, id string) (*SystemRecord, error) {
	var r SystemRecord
	if err := getDBFromContext(ctx, d.db).Where("id_sistem = ?", id).First(&r).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &r, nil
}

func (d *DB) CreateSystemRecord(ctx context.Context, r *SystemRecord) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		id, err := nextID(tx, "sistem")
		if err != nil {
			return err
		}
		r.ID = id
		return tx.Create(r).Error
	})
}

func (d *DB) UpdateSystemRecord(ctx context.Context, r *SystemRecord) error {
	return getDBFromContext(ctx, d.db).Save(r).Error
}

func (d *DB) DeleteSystemRecord(ctx context.Context, id string) error {
	res := getDBFromContext(ctx, d.db).Where("id_sistem = ?", id).Delete(&SystemRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentSystemRecords feeds the dashboard with the latest registrations.
func (d *DB) RecentSystemRecords(ctx context.Context, limit int) ([]SystemRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []SystemRecord
	err := getDBFromContext(ctx, d.db).
		Order("date_input desc, id_sistem desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (d *DB) CountSystemRecords(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).Model(&SystemRecord{}).Count(&count).Error
	return count, err
}
