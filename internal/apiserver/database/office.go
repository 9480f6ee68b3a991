package database

import (
	"context"
)

var officeSpec = listSpec{
	searchColumns: []string{"trigram", "bigram", "nama_perwakilan", "negara", "jenis_pwk"},
	sortColumns: map[string]string{
		"trigram": "trigram",
		"bigram":  "bigram",
		"name":    "nama_perwakilan",
		"country": "negara",
		"kind":    "jenis_pwk",
		"seq":     "no_urutan",
	},
	defaultSort: "no_urutan",
	// Offices are the scoping dimension themselves; non-admins still see
	// the full reference list.
	officeColumn: "",
}

func (d *DB) ListOffices(ctx context.Context, opt ListOptions) (*ListResult[Office], error) {
	return listRows[Office](getDBFromContext(ctx, d.db), opt, officeSpec)
}

func (d *DB) ExportOffices(ctx context.Context, opt ListOptions) ([]Office, error) {
	return allRows[Office](getDBFromContext(ctx, d.db), opt, officeSpec)
}

func (d *DB) AllOffices(ctx context.Context) ([]Office, error) {
	var offices []Office
	err := getDBFromContext(ctx, d.db).Order("no_urutan asc").Find(&offices).Error
	return offices, err
}

func (d *DB) GetOffice(ctx context.Context, trigram string) (*Office, error) {
	var office Office
	if err := getDBFromContext(ctx, d.db).Where("trigram = ?", trigram).First(&office).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &office, nil
}

// CreateOffice inserts a new office. The display sequence and office
// numbers are assigned from the current maxima inside the transaction.
func (d *DB) CreateOffice(ctx context.Context, office *Office) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var count int64
		if err := tx.Model(&Office{}).Where("trigram = ?", office.Trigram).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		type maxima struct {
			MaxSeq    int
			MaxOffice int
		}
		var m maxima
		if err := tx.Model(&Office{}).
			Select("COALESCE(MAX(no_urutan), 0) AS max_seq, COALESCE(MAX(no_perwakilan), 0) AS max_office").
			Scan(&m).Error; err != nil {
			return err
		}
		office.SeqNo = m.MaxSeq + 1
		office.OfficeNo = m.MaxOffice + 1

		return tx.Create(office).Error
	})
}

func (d *DB) UpdateOffice(ctx context.Context, office *Office) error {
	return getDBFromContext(ctx, d.db).Save(office).Error
}

// DeleteOffice removes an office unless other records still reference it.
func (d *DB) DeleteOffice(ctx context.Context, trigram string) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		refs := []struct {
			model  interface{}
			column string
		}{
			{&User{}, "trigram_pwk"},
			{&Personnel{}, "trigram_pwk"},
			{&CommDevice{}, "trigram_pwk"},
			{&CryptoDevice{}, "trigram_pwk"},
			{&SystemType{}, "trigram_pwk"},
			{&Posting{}, "trigram_pwk"},
		}
		for _, ref := range refs {
			var count int64
			if err := tx.Model(ref.model).Where(ref.column+" = ?", trigram).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrReferenced
			}
		}

		res := tx.Where("trigram = ?", trigram).Delete(&Office{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (d *DB) CountOffices(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).Model(&Office{}).Count(&count).Error
	return count, err
}
