package database

import (
	"context"
)

var personnelSpec = listSpec{
	searchColumns: []string{"id_personel", "nama_personel", "nip", "pangkat", "trigram_pwk"},
	sortColumns: map[string]string{
		"id":      "id_personel",
		"name":    "nama_personel",
		"nip":     "nip",
		"rank":    "pangkat",
		"posting": "penempatan_ke",
		"office":  "trigram_pwk",
	},
	defaultSort:  "id_personel",
	officeColumn: "trigram_pwk",
}

func (d *DB) ListPersonnel(ctx context.Context, opt ListOptions) (*ListResult[Personnel], error) {
	return listRows[Personnel](getDBFromContext(ctx, d.db), opt, personnelSpec)
}

func (d *DB) ExportPersonnel(ctx context.Context, opt ListOptions) ([]Personnel, error) {
	return allRows[Personnel](getDBFromContext(ctx, d.db), opt, personnelSpec)
}

func (d *DB) GetPersonnel(ctx context.Context, id string) (*Personnel, error) {
	var p Personnel
	if err := getDBFromContext(ctx, d.db).Where("id_personel = ?", id).First(&p).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (d *DB) CreatePersonnel(ctx context.Context, p *Personnel) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		id, err := nextID(tx, "personel")
		if err != nil {
			return err
		}
		p.ID = id
		return tx.Create(p).Error
	})
}

func (d *DB) UpdatePersonnel(ctx context.Context, p *Personnel) error {
	return getDBFromContext(ctx, d.db).Save(p).Error
}

// DeletePersonnel removes a personnel row together with its education,
// functional-grade and posting children in one transaction.
func (d *DB) DeletePersonnel(ctx context.Context, id string) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		if err := tx.Where("id_personel = ?", id).Delete(&Education{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_personel = ?", id).Delete(&FunctionalGrade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_personel = ?", id).Delete(&Posting{}).Error; err != nil {
			return err
		}

		res := tx.Where("id_personel = ?", id).Delete(&Personnel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (d *DB) CountPersonnel(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).Model(&Personnel{}).Count(&count).Error
	return count, err
}
