package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrReferenced is returned when a delete is refused because dependent
	// rows still point at the record.
	ErrReferenced = errors.New("record is referenced by dependent rows")
	// ErrDeviceUnavailable is returned when a distribution targets a device
	// that is inactive or already on loan.
	ErrDeviceUnavailable = errors.New("device is not available for distribution")
	// ErrDuplicate is returned when a unique key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// Database defines the persistence operations used by the handlers.
type Database interface {
	// Transaction runs fn with a transaction carried in the context; every
	// operation invoked through that context joins the transaction.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error

	// Offices
	ListOffices(ctx context.Context, opt ListOptions) (*ListResult[Office], error)
	ExportOffices(ctx context.Context, opt ListOptions) ([]Office, error)
	AllOffices(ctx context.Context) ([]Office, error)
	GetOffice(ctx context.Context, trigram string) (*Office, error)
	CreateOffice(ctx context.Context, office *Office) error
	UpdateOffice(ctx context.Context, office *Office) error
	DeleteOffice(ctx context.Context, trigram string) error
	CountOffices(ctx context.Context) (int64, error)

	// Users
	ListUsers(ctx context.Context, opt ListOptions) (*ListResult[User], error)
	ExportUsers(ctx context.Context, opt ListOptions) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int64, error)

	// Personnel
	ListPersonnel(ctx context.Context, opt ListOptions) (*ListResult[Personnel], error)
	ExportPersonnel(ctx context.Context, opt ListOptions) ([]Personnel, error)
	GetPersonnel(ctx context.Context, id string) (*Personnel, error)
	CreatePersonnel(ctx context.Context, p *Personnel) error
	UpdatePersonnel(ctx context.Context, p *Personnel) error
	DeletePersonnel(ctx context.Context, id string) error
	CountPersonnel(ctx context.Context) (int64, error)

	// Education
	EducationFor(ctx context.Context, personnelID string) ([]Education, error)
	CreateEducation(ctx context.Context, e *Education) error
	DeleteEducation(ctx context.Context, id uint) error
	ReplaceEducation(ctx context.Context, personnelID string, changes []EducationChange) error
	EducationReport(ctx context.Context, opt ListOptions) ([]EducationRow, error)

	// Functional grades
	FunctionalFor(ctx context.Context, personnelID string) ([]FunctionalGrade, error)
	GetFunctional(ctx context.Context, id uint) (*FunctionalGrade, error)
	CreateFunctional(ctx context.Context, f *FunctionalGrade) error
	UpdateFunctional(ctx context.Context, f *FunctionalGrade) error
	DeleteFunctional(ctx context.Context, id uint) error
	FunctionalReport(ctx context.Context, opt ListOptions) ([]FunctionalRow, error)

	// Postings
	PostingsFor(ctx context.Context, personnelID string) ([]Posting, error)
	GetPosting(ctx context.Context, id uint) (*Posting, error)
	CreatePosting(ctx context.Context, p *Posting) error
	UpdatePosting(ctx context.Context, p *Posting) error
	DeletePosting(ctx context.Context, id uint) error

	// Categories
	ListCategories(ctx context.Context, opt ListOptions) (*ListResult[Category], error)
	ExportCategories(ctx context.Context, opt ListOptions) ([]Category, error)
	AllCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Device types
	ListDeviceTypes(ctx context.Context, opt ListOptions) (*ListResult[DeviceType], error)
	ExportDeviceTypes(ctx context.Context, opt ListOptions) ([]DeviceType, error)
	AllDeviceTypes(ctx context.Context) ([]DeviceType, error)
	GetDeviceType(ctx context.Context, id string) (*DeviceType, error)
	CreateDeviceType(ctx context.Context, t *DeviceType) error
	UpdateDeviceType(ctx context.Context, t *DeviceType) error
	DeleteDeviceType(ctx context.Context, id string) error

	// Communications devices
	ListCommDevices(ctx context.Context, opt ListOptions) (*ListResult[CommDevice], error)
	ExportCommDevices(ctx context.Context, opt ListOptions) ([]CommDevice, error)
	GetCommDevice(ctx context.Context, serial string) (*CommDevice, error)
	CreateCommDevice(ctx context.Context, d *CommDevice) error
	UpdateCommDevice(ctx context.Context, d *CommDevice) error
	DeleteCommDevice(ctx context.Context, serial string) error
	CountCommDevices(ctx context.Context) (int64, error)

	// Cryptographic devices
	ListCryptoDevices(ctx context.Context, opt ListOptions) (*ListResult[CryptoDevice], error)
	ExportCryptoDevices(ctx context.Context, opt ListOptions) ([]CryptoDevice, error)
	GetCryptoDevice(ctx context.Context, serial string) (*CryptoDevice, error)
	CreateCryptoDevice(ctx context.Context, d *CryptoDevice) error
	UpdateCryptoDevice(ctx context.Context, d *CryptoDevice) error
	DeleteCryptoDevice(ctx context.Context, serial string) error
	AvailableCryptoDevices(ctx context.Context, typeID string) ([]CryptoDevice, error)
	CountCryptoDevices(ctx context.Context) (int64, error)

	// System types
	ListSystemTypes(ctx context.Context, opt ListOptions) (*ListResult[SystemType], error)
	ExportSystemTypes(ctx context.Context, opt ListOptions) ([]SystemType, error)
	AllSystemTypes(ctx context.Context) ([]SystemType, error)
	GetSystemType(ctx context.Context, id string) (*SystemType, error)
	CreateSystemType(ctx context.Context, t *SystemType) error
	UpdateSystemType(ctx context.Context, t *SystemType) error
	DeleteSystemType(ctx context.Context, id string) error

	// System records
	ListSystemRecords(ctx context.Context, opt ListOptions) (*ListResult[SystemRecord], error)
	ExportSystemRecords(ctx context.Context, opt ListOptions) ([]SystemRecord, error)
	GetSystemRecord(ctx context.Context, id string) (*SystemRecord, error)
	CreateSystemRecord(ctx context.Context, r *SystemRecord) error
	UpdateSystemRecord(ctx context.Context, r *SystemRecord) error
	DeleteSystemRecord(ctx context.Context, id string) error
	RecentSystemRecords(ctx context.Context, limit int) ([]SystemRecord, error)
	CountSystemRecords(ctx context.Context) (int64, error)

	// Distributions
	ListDistributions(ctx context.Context, opt ListOptions) (*ListResult[Distribution], error)
	ExportDistributions(ctx context.Context, opt ListOptions) ([]Distribution, error)
	GetDistribution(ctx context.Context, id string) (*Distribution, error)
	CreateDistribution(ctx context.Context, dist *Distribution) error
}

// DB implements Database on a gorm connection.
type DB struct {
	db *gorm.DB
}

var _ Database = (*DB)(nil)

// Transaction implements Database.Transaction
func (d *DB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if TransactionFromContext(ctx) != nil {
		// Already inside a transaction; join it.
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

// Close closes the database connection
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrapNotFound maps gorm's sentinel onto the package error.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
