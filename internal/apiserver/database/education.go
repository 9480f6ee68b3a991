package database

import (
	"context"
	"strings"
)

// EducationChange is one edit from the bulk education form: an existing row
// to update or drop, or (ID zero) a new row to insert.
type EducationChange struct {
	ID     uint
	Delete bool
	Row    Education
}

func (d *DB) EducationFor(ctx context.Context, personnelID string) ([]Education, error) {
	var rows []Education
	err := getDBFromContext(ctx, d.db).
		Where("id_personel = ?", personnelID).
		Order("tahun_lulus asc, id_pendidikan asc").
		Find(&rows).Error
	return rows, err
}

func (d *DB) CreateEducation(ctx context.Context, e *Education) error {
	return getDBFromContext(ctx, d.db).Create(e).Error
}

func (d *DB) DeleteEducation(ctx context.Context, id uint) error {
	res := getDBFromContext(ctx, d.db).Where("id_pendidikan = ?", id).Delete(&Education{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceEducation applies a batch of education edits for one personnel
// atomically, so the bulk form either lands whole or not at all.
func (d *DB) ReplaceEducation(ctx context.Context, personnelID string, changes []EducationChange) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		for _, ch := range changes {
			switch {
			case ch.Delete:
				if ch.ID == 0 {
					continue
				}
				if err := tx.Where("id_pendidikan = ? AND id_personel = ?", ch.ID, personnelID).
					Delete(&Education{}).Error; err != nil {
					return err
				}
			case ch.ID == 0:
				row := ch.Row
				row.ID = 0
				row.PersonnelID = personnelID
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			default:
				updates := map[string]interface{}{
					"jenjang":     ch.Row.Level,
					"institusi":   ch.Row.Institution,
					"jurusan":     ch.Row.Major,
					"tahun_lulus": ch.Row.GradYear,
					"user_update": ch.Row.UserUpdate,
					"date_update": ch.Row.DateUpdate,
				}
				if err := tx.Model(&Education{}).
					Where("id_pendidikan = ? AND id_personel = ?", ch.ID, personnelID).
					Updates(updates).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// EducationReport returns education rows joined with their owning personnel,
// ordered so rows of the same person stay adjacent for grouped rendering.
func (d *DB) EducationReport(ctx context.Context, opt ListOptions) ([]EducationRow, error) {
	q := getDBFromContext(ctx, d.db).
		Table("tabel_pendidikan AS pd").
		Select("pd.id_personel, ps.nama_personel, ps.trigram_pwk, pd.jenjang, pd.institusi, pd.jurusan, pd.tahun_lulus").
		Joins("JOIN tabel_personel AS ps ON ps.id_personel = pd.id_personel")

	if opt.Search != "" {
		like := "%" + strings.ToLower(opt.Search) + "%"
		q = q.Where(
			"LOWER(ps.nama_personel) LIKE ? OR LOWER(pd.jenjang) LIKE ? OR LOWER(pd.institusi) LIKE ? OR LOWER(pd.jurusan) LIKE ?",
			like, like, like, like)
	}
	if opt.Office != "" {
		q = q.Where("ps.trigram_pwk = ?", opt.Office)
	}

	var rows []EducationRow
	err := q.Order("pd.id_personel asc, pd.tahun_lulus asc, pd.id_pendidikan asc").Scan(&rows).Error
	return rows, err
}
