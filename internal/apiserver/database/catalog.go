package database

import (
	"context"
)

var categorySpec = listSpec{
	searchColumns: []string{"id_kategori", "kategori"},
	sortColumns: map[string]string{
		"id":   "id_kategori",
		"name": "kategori",
	},
	defaultSort: "id_kategori",
}

func (d *DB) ListCategories(ctx context.Context, opt ListOptions) (*ListResult[Category], error) {
	return listRows[Category](getDBFromContext(ctx, d.db), opt, categorySpec)
}

func (d *DB) ExportCategories(ctx context.Context, opt ListOptions) ([]Category, error) {
	return allRows[Category](getDBFromContext(ctx, d.db), opt, categorySpec)
}

func (d *DB) AllCategories(ctx context.Context) ([]Category, error) {
	var rows []Category
	err := getDBFromContext(ctx, d.db).Order("id_kategori asc").Find(&rows).Error
	return rows, err
}

func (d *DB) GetCategory(ctx context.Context, id string) (*Category, error) {
	var c Category
	if err := getDBFromContext(ctx, d.db).Where("id_kategori = ?", id).First(&c).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &c, nil
}

func (d *DB) CreateCategory(ctx context.Context, c *Category) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		id, err := nextID(tx, "kategori")
		if err != nil {
			return err
		}
		c.ID = id
		return tx.Create(c).Error
	})
}

func (d *DB) UpdateCategory(ctx context.Context, c *Category) error {
	return getDBFromContext(ctx, d.db).Save(c).Error
}

// DeleteCategory refuses removal while device types still reference it.
func (d *DB) DeleteCategory(ctx context.Context, id string) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var count int64
		if err := tx.Model(&DeviceType{}).Where("id_kategori = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrReferenced
		}

		res := tx.Where("id_kategori = ?", id).Delete(&Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var deviceTypeSpec = listSpec{
	searchColumns: []string{"id_jenis_alat", "jenis_alat", "id_kategori"},
	sortColumns: map[string]string{
		"id":       "id_jenis_alat",
		"name":     "jenis_alat",
		"category": "id_kategori",
	},
	defaultSort: "id_jenis_alat",
}

func (d *DB) ListDeviceTypes(ctx context.Context, opt ListOptions) (*ListResult[DeviceType], error) {
	return listRows[DeviceType](getDBFromContext(ctx, d.db), opt, deviceTypeSpec)
}

func (d *DB) ExportDeviceTypes(ctx context.Context, opt ListOptions) ([]DeviceType, error) {
	return allRows[DeviceType](getDBFromContext(ctx, d.db), opt, deviceTypeSpec)
}

func (d *DB) AllDeviceTypes(ctx context.Context) ([]DeviceType, error) {
	var rows []DeviceType
	err := getDBFromContext(ctx, d.db).Order("id_jenis_alat asc").Find(&rows).Error
	return rows, err
}

func (d *DB) GetDeviceType(ctx context.Context, id string) (*DeviceType, error) {
	var t DeviceType
	if err := getDBFromContext(ctx, d.db).Where("id_jenis_alat = ?", id).First(&t).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &t, nil
}

func (d *DB) CreateDeviceType(ctx context.Context, t *DeviceType) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		id, err := nextID(tx, "jenis_alat")
		if err != nil {
			return err
		}
		t.ID = id
		return tx.Create(t).Error
	})
}

func (d *DB) UpdateDeviceType(ctx context.Context, t *DeviceType) error {
	return getDBFromContext(ctx, d.db).Save(t).Error
}

// DeleteDeviceType refuses removal while inventory rows still reference it.
func (d *DB) DeleteDeviceType(ctx context.Context, id string) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		for _, model := range []interface{}{&CommDevice{}, &CryptoDevice{}} {
			var count int64
			if err := tx.Model(model).Where("id_jenis_alat = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrReferenced
			}
		}

		res := tx.Where("id_jenis_alat = ?", id).Delete(&DeviceType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
