package database

import (
	"context"
)

func (d *DB) PostingsFor(ctx context.Context, personnelID string) ([]Posting, error) {
	var rows []Posting
	err := getDBFromContext(ctx, d.db).
		Where("id_personel = ?", personnelID).
		Order("penempatan_ke asc").
		Find(&rows).Error
	return rows, err
}

func (d *DB) GetPosting(ctx context.Context, id uint) (*Posting, error) {
	var p Posting
	if err := getDBFromContext(ctx, d.db).Where("id_penempatan = ?", id).First(&p).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

// CreatePosting records an assignment and mirrors the highest posting number
// onto the personnel row, which lists show without joining.
func (d *DB) CreatePosting(ctx context.Context, p *Posting) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return syncPostingNo(ctx, d, p.PersonnelID)
	})
}

func (d *DB) UpdatePosting(ctx context.Context, p *Posting) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return syncPostingNo(ctx, d, p.PersonnelID)
	})
}

func (d *DB) DeletePosting(ctx context.Context, id uint) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var p Posting
		if err := tx.Where("id_penempatan = ?", id).First(&p).Error; err != nil {
			return wrapNotFound(err)
		}
		if err := tx.Where("id_penempatan = ?", id).Delete(&Posting{}).Error; err != nil {
			return err
		}
		return syncPostingNo(ctx, d, p.PersonnelID)
	})
}

func syncPostingNo(ctx context.Context, d *DB, personnelID string) error {
	tx := getDBFromContext(ctx, d.db)
	var max struct{ MaxNo int }
	if err := tx.Model(&Posting{}).
		Select("COALESCE(MAX(penempatan_ke), 0) AS max_no").
		Where("id_personel = ?", personnelID).
		Scan(&max).Error; err != nil {
		return err
	}
	return tx.Model(&Personnel{}).
		Where("id_personel = ?", personnelID).
		Update("penempatan_ke", max.MaxNo).Error
}
