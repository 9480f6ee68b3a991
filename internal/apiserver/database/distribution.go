package database

import (
	"context"
)

var distributionSpec = listSpec{
	searchColumns: []string{"id_distribusi", "no_seri", "unit_peminjam", "nama_peminjam", "nama_pejabat"},
	sortColumns: map[string]string{
		"id":       "id_distribusi",
		"serial":   "no_seri",
		"unit":     "unit_peminjam",
		"borrower": "nama_peminjam",
		"date":     "tanggal",
	},
	defaultSort: "id_distribusi",
}

func (d *DB) ListDistributions(ctx context.Context, opt ListOptions) (*ListResult[Distribution], error) {
	return listRows[Distribution](getDBFromContext(ctx, d.db), opt, distributionSpec)
}

func (d *DB) ExportDistributions(ctx context.Context, opt ListOptions) ([]Distribution, error) {
	return allRows[Distribution](getDBFromContext(ctx, d.db), opt, distributionSpec)
}

func (d *DB) GetDistribution(ctx context.Context, id string) (*Distribution, error) {
	var dist Distribution
	if err := getDBFromContext(ctx, d.db).Where("id_distribusi = ?", id).First(&dist).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &dist, nil
}

// CreateDistribution records a loan in one transaction: the device must be
// active and not already out, its loan flag flips, and the record gets its
// PL-prefixed identifier. A concurrent loan of the same device loses on the
// re-check inside the transaction.
func (d *DB) CreateDistribution(ctx context.Context, dist *Distribution) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var dev CryptoDevice
		if err := tx.Where("no_seri = ?", dist.DeviceSerial).First(&dev).Error; err != nil {
			return wrapNotFound(err)
		}
		if dev.Status != StatusActive || dev.OnLoan {
			return ErrDeviceUnavailable
		}

		res := tx.Model(&CryptoDevice{}).
			Where("no_seri = ? AND dipinjamkan = ?", dist.DeviceSerial, false).
			Update("dipinjamkan", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDeviceUnavailable
		}

		id, err := nextID(tx, "distribusi")
		if err != nil {
			return err
		}
		dist.ID = id
		return tx.Create(dist).Error
	})
}
