package database

import "time"

// Audit carries the operator/timestamp bookkeeping columns every table has.
type Audit struct {
	UserInput  string    `json:"userInput" gorm:"column:user_input;type:varchar(50)"`
	DateInput  time.Time `json:"dateInput" gorm:"column:date_input"`
	UserUpdate string    `json:"userUpdate" gorm:"column:user_update;type:varchar(50)"`
	DateUpdate time.Time `json:"dateUpdate" gorm:"column:date_update"`
}

// OfficeKind enumerates the kinds of representative offices.
type OfficeKind string

const (
	KindKBRI OfficeKind = "KBRI"
	KindKJRI OfficeKind = "KJRI"
	KindPTRI OfficeKind = "PTRI"
	KindKRI  OfficeKind = "KRI"
	KindKDEI OfficeKind = "KDEI"
	KindPJB  OfficeKind = "PJB"
)

// OfficeKinds lists every valid office kind, in display order.
var OfficeKinds = []OfficeKind{KindKBRI, KindKJRI, KindPTRI, KindKRI, KindKDEI, KindPJB}

// ValidOfficeKind reports whether s names a known office kind.
func ValidOfficeKind(s string) bool {
	for _, k := range OfficeKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Device status values.
const (
	StatusActive  = "AKTIF"
	StatusBroken  = "RUSAK"
	StatusRemoved = "HAPUS"
)

// DeviceStatuses lists the valid device status values.
var DeviceStatuses = []string{StatusActive, StatusBroken, StatusRemoved}

// ValidDeviceStatus reports whether s names a known device status.
func ValidDeviceStatus(s string) bool {
	for _, v := range DeviceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Office is a diplomatic mission record, keyed by its 3-letter trigram.
type Office struct {
	Trigram  string     `json:"trigram" gorm:"column:trigram;type:varchar(3);primaryKey"`
	Bigram   string     `json:"bigram" gorm:"column:bigram;type:varchar(2)"`
	Name     string     `json:"name" gorm:"column:nama_perwakilan;type:varchar(100);not null"`
	Country  string     `json:"country" gorm:"column:negara;type:varchar(100);not null"`
	Kind     OfficeKind `json:"kind" gorm:"column:jenis_pwk;type:varchar(10);not null"`
	OfficeNo int        `json:"officeNo" gorm:"column:no_perwakilan"`
	SeqNo    int        `json:"seqNo" gorm:"column:no_urutan"`
	Audit    `gorm:"embedded"`
}

func (Office) TableName() string { return "ref_perwakilan" }

// User is an application account. Role 0 is administrator, role 1 is a
// regular user scoped to its owning office.
type User struct {
	ID       string `json:"id" gorm:"column:id_pengguna;type:varchar(5);primaryKey"`
	Name     string `json:"name" gorm:"column:nama_pengguna;type:varchar(100);not null"`
	Username string `json:"username" gorm:"column:username;type:varchar(50);uniqueIndex;not null"`
	Password string `json:"-" gorm:"column:password;not null"` // bcrypt hash, never exposed
	Role     int    `json:"role" gorm:"column:role;not null;default:1"`
	Office   string `json:"office" gorm:"column:trigram_pwk;type:varchar(3)"`
	Audit    `gorm:"embedded"`
}

func (User) TableName() string { return "tabel_pengguna" }

// Personnel is a posted staff member owned by one office.
type Personnel struct {
	ID         string    `json:"id" gorm:"column:id_personel;type:varchar(5);primaryKey"`
	Name       string    `json:"name" gorm:"column:nama_personel;type:varchar(100);not null"`
	BirthPlace string    `json:"birthPlace" gorm:"column:tempat_lahir;type:varchar(100)"`
	BirthDate  time.Time `json:"birthDate" gorm:"column:tanggal_lahir"`
	NIP        string    `json:"nip" gorm:"column:nip;type:varchar(20)"`
	Rank       string    `json:"rank" gorm:"column:pangkat;type:varchar(50)"`
	PostingNo  int       `json:"postingNo" gorm:"column:penempatan_ke"` // 1..7
	Office     string    `json:"office" gorm:"column:trigram_pwk;type:varchar(3);index;not null"`
	Audit      `gorm:"embedded"`
}

func (Personnel) TableName() string { return "tabel_personel" }

// Education is a study record attached to one personnel row.
type Education struct {
	ID          uint   `json:"id" gorm:"column:id_pendidikan;primaryKey;autoIncrement"`
	PersonnelID string `json:"personnelId" gorm:"column:id_personel;type:varchar(5);index;not null"`
	Level       string `json:"level" gorm:"column:jenjang;type:varchar(20);not null"`
	Institution string `json:"institution" gorm:"column:institusi;type:varchar(100)"`
	Major       string `json:"major" gorm:"column:jurusan;type:varchar(100)"`
	GradYear    int    `json:"gradYear" gorm:"column:tahun_lulus"`
	Audit       `gorm:"embedded"`
}

func (Education) TableName() string { return "tabel_pendidikan" }

// FunctionalGrade is a functional-position record attached to one personnel row.
type FunctionalGrade struct {
	ID            uint      `json:"id" gorm:"column:id_fungsional;primaryKey;autoIncrement"`
	PersonnelID   string    `json:"personnelId" gorm:"column:id_personel;type:varchar(5);index;not null"`
	Grade         string    `json:"grade" gorm:"column:jenjang_fungsional;type:varchar(50);not null"`
	DecreeNo      string    `json:"decreeNo" gorm:"column:no_sk;type:varchar(50)"`
	EffectiveDate time.Time `json:"effectiveDate" gorm:"column:tmt"`
	Audit         `gorm:"embedded"`
}

func (FunctionalGrade) TableName() string { return "tabel_fungsional" }

// Posting records one of a personnel's (up to seven) office assignments.
type Posting struct {
	ID          uint   `json:"id" gorm:"column:id_penempatan;primaryKey;autoIncrement"`
	PersonnelID string `json:"personnelId" gorm:"column:id_personel;type:varchar(5);index;not null"`
	PostingNo   int    `json:"postingNo" gorm:"column:penempatan_ke;not null"`
	Office      string `json:"office" gorm:"column:trigram_pwk;type:varchar(3);not null"`
	StartYear   int    `json:"startYear" gorm:"column:tahun_mulai"`
	EndYear     int    `json:"endYear" gorm:"column:tahun_selesai"`
	Audit       `gorm:"embedded"`
}

func (Posting) TableName() string { return "tabel_penempatan" }

// Category is the equipment category catalog.
type Category struct {
	ID    string `json:"id" gorm:"column:id_kategori;type:varchar(4);primaryKey"`
	Name  string `json:"name" gorm:"column:kategori;type:varchar(100);not null"`
	Audit `gorm:"embedded"`
}

func (Category) TableName() string { return "ref_kategori" }

// DeviceType is the device-type catalog referenced by the inventories.
type DeviceType struct {
	ID         string `json:"id" gorm:"column:id_jenis_alat;type:varchar(4);primaryKey"`
	Name       string `json:"name" gorm:"column:jenis_alat;type:varchar(100);not null"`
	CategoryID string `json:"categoryId" gorm:"column:id_kategori;type:varchar(4);index"`
	Audit      `gorm:"embedded"`
}

func (DeviceType) TableName() string { return "ref_jenis_alat" }

// CommDevice is a communications equipment inventory row.
type CommDevice struct {
	Serial   string `json:"serial" gorm:"column:no_seri;type:varchar(50);primaryKey"`
	TypeID   string `json:"typeId" gorm:"column:id_jenis_alat;type:varchar(4);index;not null"`
	Office   string `json:"office" gorm:"column:trigram_pwk;type:varchar(3);index;not null"`
	AcqYear  int    `json:"acqYear" gorm:"column:tahun_perolehan"`
	BookYear int    `json:"bookYear" gorm:"column:tahun_pembukuan"`
	Status   string `json:"status" gorm:"column:status;type:varchar(10);not null;default:'AKTIF'"`
	Audit    `gorm:"embedded"`
}

func (CommDevice) TableName() string { return "tabel_alat_komunikasi" }

// CryptoDevice is a cryptographic hardware (palsan) inventory row. OnLoan
// is flipped by the distribution workflow.
type CryptoDevice struct {
	Serial   string `json:"serial" gorm:"column:no_seri;type:varchar(50);primaryKey"`
	TypeID   string `json:"typeId" gorm:"column:id_jenis_alat;type:varchar(4);index;not null"`
	Office   string `json:"office" gorm:"column:trigram_pwk;type:varchar(3);index;not null"`
	AcqYear  int    `json:"acqYear" gorm:"column:tahun_perolehan"`
	BookYear int    `json:"bookYear" gorm:"column:tahun_pembukuan"`
	Status   string `json:"status" gorm:"column:status;type:varchar(10);not null;default:'AKTIF'"`
	OnLoan   bool   `json:"onLoan" gorm:"column:dipinjamkan;not null;default:false"`
	Audit    `gorm:"embedded"`
}

func (CryptoDevice) TableName() string { return "tabel_palsan" }

// SystemType is the system-type catalog, owned per office.
type SystemType struct {
	ID     string `json:"id" gorm:"column:id_jenis;type:varchar(4);primaryKey"`
	Name   string `json:"name" gorm:"column:jenis;type:varchar(100);not null"`
	Office string `json:"office" gorm:"column:trigram_pwk;type:varchar(3);index"`
	Audit  `gorm:"embedded"`
}

func (SystemType) TableName() string { return "ref_jenis_sistem" }

// SystemRecord is a registered system document.
type SystemRecord struct {
	ID       string `json:"id" gorm:"column:id_sistem;type:varchar(5);primaryKey"`
	Year     int    `json:"year" gorm:"column:tahun"`
	TypeID   string `json:"typeId" gorm:"column:id_jenis;type:varchar(4);index;not null"`
	SystemNo string `json:"systemNo" gorm:"column:no_sistem;type:varchar(20)"`
	Name     string `json:"name" gorm:"column:nama_sistem;type:varchar(100);not null"`
	Sheets   int    `json:"sheets" gorm:"column:jml_lembar"`
	Status   string `json:"status" gorm:"column:status;type:varchar(10);not null;default:'AKTIF'"`
	Audit    `gorm:"embedded"`
}

func (SystemRecord) TableName() string { return "tabel_sistem" }

// Distribution is a cryptographic device loan record. Only the central
// office creates these; the paper receipt can be regenerated from it.
type Distribution struct {
	ID           string    `json:"id" gorm:"column:id_distribusi;type:varchar(5);primaryKey"`
	DeviceSerial string    `json:"deviceSerial" gorm:"column:no_seri;type:varchar(50);index;not null"`
	BorrowUnit   string    `json:"borrowUnit" gorm:"column:unit_peminjam;type:varchar(100);not null"`
	BorrowerName string    `json:"borrowerName" gorm:"column:nama_peminjam;type:varchar(100);not null"`
	BorrowerNIP  string    `json:"borrowerNip" gorm:"column:nip_peminjam;type:varchar(20)"`
	OfficialName string    `json:"officialName" gorm:"column:nama_pejabat;type:varchar(100);not null"`
	OfficialNIP  string    `json:"officialNip" gorm:"column:nip_pejabat;type:varchar(20)"`
	Date         time.Time `json:"date" gorm:"column:tanggal"`
	Audit        `gorm:"embedded"`
}

func (Distribution) TableName() string { return "tabel_distribusi" }

// Counter backs synthetic identifier allocation. One row per key, updated
// inside the same transaction as the insert that consumes the number.
type Counter struct {
	Key   string `gorm:"column:kunci;type:varchar(20);primaryKey"`
	Value int64  `gorm:"column:nilai;not null"`
}

func (Counter) TableName() string { return "ref_counter" }

// EducationRow is one line of the grouped education report: the parent
// personnel columns repeated on each child row.
type EducationRow struct {
	PersonnelID   string `json:"personnelId" gorm:"column:id_personel"`
	PersonnelName string `json:"personnelName" gorm:"column:nama_personel"`
	Office        string `json:"office" gorm:"column:trigram_pwk"`
	Level         string `json:"level" gorm:"column:jenjang"`
	Institution   string `json:"institution" gorm:"column:institusi"`
	Major         string `json:"major" gorm:"column:jurusan"`
	GradYear      int    `json:"gradYear" gorm:"column:tahun_lulus"`
}

// FunctionalRow is one line of the grouped functional-grade report.
type FunctionalRow struct {
	PersonnelID   string    `json:"personnelId" gorm:"column:id_personel"`
	PersonnelName string    `json:"personnelName" gorm:"column:nama_personel"`
	Office        string    `json:"office" gorm:"column:trigram_pwk"`
	Grade         string    `json:"grade" gorm:"column:jenjang_fungsional"`
	DecreeNo      string    `json:"decreeNo" gorm:"column:no_sk"`
	EffectiveDate time.Time `json:"effectiveDate" gorm:"column:tmt"`
}
