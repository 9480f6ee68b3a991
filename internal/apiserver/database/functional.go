package database

import (
	"context"
	"strings"
)

func (d *DB) FunctionalFor(ctx context.Context, personnelID string) ([]FunctionalGrade, error) {
	var rows []FunctionalGrade
	err := getDBFromContext(ctx, d.db).
		Where("id_personel = ?", personnelID).
		Order("tmt asc, id_fungsional asc").
		Find(&rows).Error
	return rows, err
}

func (d *DB) GetFunctional(ctx context.Context, id uint) (*FunctionalGrade, error) {
	var f FunctionalGrade
	if err := getDBFromContext(ctx, d.db).Where("id_fungsional = ?", id).First(&f).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &f, nil
}

func (d *DB) CreateFunctional(ctx context.Context, f *FunctionalGrade) error {
	return getDBFromContext(ctx, d.db).Create(f).Error
}

func (d *DB) UpdateFunctional(ctx context.Context, f *FunctionalGrade) error {
	return getDBFromContext(ctx, d.db).Save(f).Error
}

func (d *DB) DeleteFunctional(ctx context.Context, id uint) error {
	res := getDBFromContext(ctx, d.db).Where("id_fungsional = ?", id).Delete(&FunctionalGrade{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FunctionalReport returns functional-grade rows joined with their owning
// personnel, grouped by person.
func (d *DB) FunctionalReport(ctx context.Context, opt ListOptions) ([]FunctionalRow, error) {
	q := getDBFromContext(ctx, d.db).
		Table("tabel_fungsional AS fg").
		Select("fg.id_personel, ps.nama_personel, ps.trigram_pwk, fg.jenjang_fungsional, fg.no_sk, fg.tmt").
		Joins("JOIN tabel_personel AS ps ON ps.id_personel = fg.id_personel")

	if opt.Search != "" {
		like := "%" + strings.ToLower(opt.Search) + "%"
		q = q.Where(
			"LOWER(ps.nama_personel) LIKE ? OR LOWER(fg.jenjang_fungsional) LIKE ? OR LOWER(fg.no_sk) LIKE ?",
			like, like, like)
	}
	if opt.Office != "" {
		q = q.Where("ps.trigram_pwk = ?", opt.Office)
	}

	var rows []FunctionalRow
	err := q.Order("fg.id_personel asc, fg.tmt asc, fg.id_fungsional asc").Scan(&rows).Error
	return rows, err
}
