package database

import (
	"context"
)

var userSpec = listSpec{
	searchColumns: []string{"id_pengguna", "nama_pengguna", "username", "trigram_pwk"},
	sortColumns: map[string]string{
		"id":       "id_pengguna",
		"name":     "nama_pengguna",
		"username": "username",
		"role":     "role",
		"office":   "trigram_pwk",
	},
	defaultSort:  "id_pengguna",
	officeColumn: "trigram_pwk",
}

func (d *DB) ListUsers(ctx context.Context, opt ListOptions) (*ListResult[User], error) {
	return listRows[User](getDBFromContext(ctx, d.db), opt, userSpec)
}

func (d *DB) ExportUsers(ctx context.Context, opt ListOptions) ([]User, error) {
	return allRows[User](getDBFromContext(ctx, d.db), opt, userSpec)
}

func (d *DB) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, d.db).Where("id_pengguna = ?", id).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (d *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, d.db).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// CreateUser inserts a new account, allocating its U-prefixed identifier
// inside the same transaction.
func (d *DB) CreateUser(ctx context.Context, user *User) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)

		var count int64
		if err := tx.Model(&User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		id, err := nextID(tx, "pengguna")
		if err != nil {
			return err
		}
		user.ID = id
		return tx.Create(user).Error
	})
}

func (d *DB) UpdateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, d.db).Save(user).Error
}

func (d *DB) DeleteUser(ctx context.Context, id string) error {
	res := getDBFromContext(ctx, d.db).Where("id_pengguna = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DB) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).Model(&User{}).Count(&count).Error
	return count, err
}
