package database

import (
	"context"
)

var cryptoDeviceSpec = listSpec{
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

func (d *DB) ListCryptoDevices(ctx context.Context, opt ListOptions) (*ListResult[CryptoDevice], error) {
	return listRows[CryptoDevice](getDBFromContext(ctx, d.db), opt, cryptoDeviceSpec)
}

func (d *DB) ExportCryptoDevices(ctx context.Context, opt ListOptions) ([]CryptoDevice, error) {
	return allRows[CryptoDevice](getDBFromContext(ctx, d.db), opt, cryptoDeviceSpec)
}

func (d *DB) GetCryptoDevice(ctx context.Context, serial string) (*CryptoDevice, error) {
	var dev CryptoDevice
	if err := getDBFromContext(ctx, d.db).Where("no_seri = ?", serial).First(&dev).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &dev, nil
}

func (d *DB) CreateCryptoDevice(ctx context.Context, dev *CryptoDevice) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var count int64
		if err := tx.Model(&CryptoDevice{}).Where("no_seri = ?", dev.Serial).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(dev).Error
	})
}

func (d *DB) UpdateCryptoDevice(ctx context.Context, dev *CryptoDevice) error {
	return getDBFromContext(ctx, d.db).Save(dev).Error
}

// DeleteCryptoDevice refuses removal while the device is out on loan or a
// distribution record still references its serial.
func (d *DB) DeleteCryptoDevice(ctx context.Context, serial string) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var dev CryptoDevice
		if err := tx.Where("no_seri = ?", serial).First(&dev).Error; err != nil {
			return wrapNotFound(err)
		}
		if dev.OnLoan {
			return ErrReferenced
		}

		var count int64
		if err := tx.Model(&Distribution{}).Where("no_seri = ?", serial).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrReferenced
		}

		return tx.Where("no_seri = ?", serial).Delete(&CryptoDevice{}).Error
	})
}

// AvailableCryptoDevices lists active, unloaned devices of a type; it feeds
// the serial picker on the distribution form.
func (d *DB) AvailableCryptoDevices(ctx context.Context, typeID string) ([]CryptoDevice, error) {
	q := getDBFromContext(ctx, d.db).
		Where("status = ?", StatusActive).
		Where("dipinjamkan = ?", false)
	if typeID != "" {
		q = q.Where("id_jenis_alat = ?", typeID)
	}

	var rows []CryptoDevice
	err := q.Order("no_seri asc").Find(&rows).Error
	return rows, err
}

func (d *DB) CountCryptoDevices(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).Model(&CryptoDevice{}).Count(&count).Error
	return count, err
}
