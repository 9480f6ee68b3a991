package database

import (
	"context"
)

var commDeviceSpec = listSpec{
	searchColumns: []string{"no_seri", "id_jenis_alat", "trigram_pwk", "status"},
	sortColumns: map[string]string{
		"serial":  "no_seri",
		"type":    "id_jenis_alat",
		"office":  "trigram_pwk",
		"acqYear": "tahun_perolehan",
		"status":  "status",
	},
	defaultSort:  "no_seri",
	officeColumn: "trigram_pwk",
}

func (d *DB) ListCommDevices(ctx context.Context, opt ListOptions) (*ListResult[CommDevice], error) {
	return listRows[CommDevice](getDBFromContext(ctx, d.db), opt, commDeviceSpec)
}

func (d *DB) ExportCommDevices(ctx context.Context, opt ListOptions) ([]CommDevice, error) {
	return allRows[CommDevice](getDBFromContext(ctx, d.db), opt, commDeviceSpec)
}

func (d *DB) GetCommDevice(ctx context.Context, serial string) (*CommDevice, error) {
	var dev CommDevice
	if err := getDBFromContext(ctx, d.db).Where("no_seri = ?", serial).First(&dev).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &dev, nil
}

// CreateCommDevice inserts an inventory row. Serial numbers come stamped on
// the hardware, so duplicates are rejected rather than generated around.
func (d *DB) CreateCommDevice(ctx context.Context, dev *CommDevice) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var count int64
		if err := tx.Model(&CommDevice{}).Where("no_seri = ?", dev.Serial).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(dev).Error
	})
}

func (d *DB) UpdateCommDevice(ctx context.Context, dev *CommDevice) error {
	return getDBFromContext(ctx, d.db).Save(dev).Error
}

func (d *DB) DeleteCommDevice(ctx context.Context, serial string) error {
	res := getDBFromContext(ctx, d.db).Where("no_seri = ?", serial).Delete(&CommDevice{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DB) CountCommDevices(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).Model(&CommDevice{}).Count(&count).Error
	return count, err
}
