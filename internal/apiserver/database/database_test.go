package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pusdatin/simontok/internal/common/config"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.(*DB)
}

func seedOffice(t *testing.T, db *DB, trigram string) {
	t.Helper()
	err := db.CreateOffice(context.Background(), &Office{
		Trigram: trigram,
		Name:    "Perwakilan " + trigram,
		Country: "Negara " + trigram,
		Kind:    KindKBRI,
	})
	require.NoError(t, err)
}

func TestCounterIssuesSuccessors(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	// A row migrated from the legacy scheme must not be re-issued.
	legacy := &User{ID: "U0042", Name: "Legacy", Username: "legacy", Password: "x", Role: 1, Office: "AAA"}
	require.NoError(t, db.db.Create(legacy).Error)
	require.NoError(t, db.SyncCounters(ctx))

	u := &User{Name: "Next", Username: "next", Password: "x", Role: 1, Office: "AAA"}
	require.NoError(t, db.CreateUser(ctx, u))
	assert.Equal(t, "U0043", u.ID)
}

func TestCounterFormats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cat := &Category{Name: "Kategori Uji"}
	require.NoError(t, db.CreateCategory(ctx, cat))
	assert.Equal(t, "KT01", cat.ID)

	dt := &DeviceType{Name: "Jenis Uji", CategoryID: cat.ID}
	require.NoError(t, db.CreateDeviceType(ctx, dt))
	assert.Equal(t, "JA01", dt.ID)

	st := &SystemType{Name: "Jenis Sistem Uji"}
	require.NoError(t, db.CreateSystemType(ctx, st))
	assert.Equal(t, "JS01", st.ID)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	for i := 0; i < 45; i++ {
		p := &Personnel{Name: fmt.Sprintf("Personel %02d", i), Office: "AAA"}
		require.NoError(t, db.CreatePersonnel(ctx, p))
	}

	result, err := db.ListPersonnel(ctx, ListOptions{Page: 1})
	require.NoError(t, err)
	assert.Len(t, result.Rows, PageSize)
	assert.EqualValues(t, 45, result.Total)
	assert.Equal(t, 3, result.TotalPages)

	last, err := db.ListPersonnel(ctx, ListOptions{Page: 3})
	require.NoError(t, err)
	assert.Len(t, last.Rows, 5)

	// Out of range pages are empty, not an error.
	beyond, err := db.ListPersonnel(ctx, ListOptions{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Rows)
	assert.Equal(t, 3, beyond.TotalPages)
}

func TestTotalPagesNeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0))
	assert.Equal(t, 1, TotalPages(20))
	assert.Equal(t, 2, TotalPages(21))
}

func TestListOfficeScope(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")
	seedOffice(t, db, "BBB")

	for _, office := range []string{"AAA", "AAA", "BBB"} {
		p := &Personnel{Name: "Orang " + office, Office: office}
		require.NoError(t, db.CreatePersonnel(ctx, p))
	}

	scoped, err := db.ListPersonnel(ctx, ListOptions{Office: "AAA"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, scoped.Total)
	for _, row := range scoped.Rows {
		assert.Equal(t, "AAA", row.Office)
	}

	all, err := db.ListPersonnel(ctx, ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
}

func TestListSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	for _, name := range []string{"Budi Santoso", "Siti Rahayu"} {
		require.NoError(t, db.CreatePersonnel(ctx, &Personnel{Name: name, Office: "AAA"}))
	}

	result, err := db.ListPersonnel(ctx, ListOptions{Search: "bUdI"})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Budi Santoso", result.Rows[0].Name)
}

func TestDeviceTypeDeleteGuard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	dt := &DeviceType{Name: "HF Transceiver"}
	require.NoError(t, db.CreateDeviceType(ctx, dt))

	dev := &CommDevice{Serial: "SN-001", TypeID: dt.ID, Office: "AAA", Status: StatusActive}
	require.NoError(t, db.CreateCommDevice(ctx, dev))

	assert.ErrorIs(t, db.DeleteDeviceType(ctx, dt.ID), ErrReferenced)

	require.NoError(t, db.DeleteCommDevice(ctx, dev.Serial))
	require.NoError(t, db.DeleteDeviceType(ctx, dt.ID))

	_, err := db.GetDeviceType(ctx, dt.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOfficeDeleteGuard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	require.NoError(t, db.CreatePersonnel(ctx, &Personnel{Name: "Orang", Office: "AAA"}))
	assert.ErrorIs(t, db.DeleteOffice(ctx, "AAA"), ErrReferenced)
}

func TestPersonnelDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	p := &Personnel{Name: "Orang", Office: "AAA"}
	require.NoError(t, db.CreatePersonnel(ctx, p))
	require.NoError(t, db.CreateEducation(ctx, &Education{PersonnelID: p.ID, Level: "S1"}))
	require.NoError(t, db.CreateFunctional(ctx, &FunctionalGrade{PersonnelID: p.ID, Grade: "Sandiman Muda"}))
	require.NoError(t, db.CreatePosting(ctx, &Posting{PersonnelID: p.ID, PostingNo: 1, Office: "AAA"}))

	require.NoError(t, db.DeletePersonnel(ctx, p.ID))

	edu, err := db.EducationFor(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, edu)
	fg, err := db.FunctionalFor(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, fg)
	postings, err := db.PostingsFor(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestReplaceEducationAppliesBatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	p := &Personnel{Name: "Orang", Office: "AAA"}
	require.NoError(t, db.CreatePersonnel(ctx, p))

	keep := &Education{PersonnelID: p.ID, Level: "S1", Institution: "UI"}
	drop := &Education{PersonnelID: p.ID, Level: "SMA"}
	require.NoError(t, db.CreateEducation(ctx, keep))
	require.NoError(t, db.CreateEducation(ctx, drop))

	changes := []EducationChange{
		{ID: keep.ID, Row: Education{Level: "S2", Institution: "UGM"}},
		{ID: drop.ID, Delete: true},
		{Row: Education{Level: "S3", Institution: "ITB"}},
	}
	require.NoError(t, db.ReplaceEducation(ctx, p.ID, changes))

	rows, err := db.EducationFor(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	levels := []string{rows[0].Level, rows[1].Level}
	assert.Contains(t, levels, "S2")
	assert.Contains(t, levels, "S3")
}

func TestDistributionFlipsAvailability(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "PJB")

	dt := &DeviceType{Name: "Mesin Sandi"}
	require.NoError(t, db.CreateDeviceType(ctx, dt))

	dev := &CryptoDevice{Serial: "CR-001", TypeID: dt.ID, Office: "PJB", Status: StatusActive}
	require.NoError(t, db.CreateCryptoDevice(ctx, dev))

	avail, err := db.AvailableCryptoDevices(ctx, dt.ID)
	require.NoError(t, err)
	require.Len(t, avail, 1)

	dist := &Distribution{
		DeviceSerial: dev.Serial,
		BorrowUnit:   "Biro Umum",
		BorrowerName: "Peminjam",
		OfficialName: "Pejabat",
	}
	require.NoError(t, db.CreateDistribution(ctx, dist))
	assert.Equal(t, "PL001", dist.ID)

	// The serial leaves the availability list and cannot be loaned twice.
	avail, err = db.AvailableCryptoDevices(ctx, dt.ID)
	require.NoError(t, err)
	assert.Empty(t, avail)

	again := &Distribution{
		DeviceSerial: dev.Serial,
		BorrowUnit:   "Biro Umum",
		BorrowerName: "Peminjam Lain",
		OfficialName: "Pejabat",
	}
	assert.ErrorIs(t, db.CreateDistribution(ctx, again), ErrDeviceUnavailable)
}

func TestCryptoDeviceDeleteGuards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "PJB")

	dt := &DeviceType{Name: "Mesin Sandi"}
	require.NoError(t, db.CreateDeviceType(ctx, dt))

	dev := &CryptoDevice{Serial: "CR-002", TypeID: dt.ID, Office: "PJB", Status: StatusActive}
	require.NoError(t, db.CreateCryptoDevice(ctx, dev))

	dist := &Distribution{DeviceSerial: dev.Serial, BorrowUnit: "U", BorrowerName: "B", OfficialName: "O"}
	require.NoError(t, db.CreateDistribution(ctx, dist))

	assert.ErrorIs(t, db.DeleteCryptoDevice(ctx, dev.Serial), ErrReferenced)
}

func TestSystemRecordScopeFollowsTypeOffice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")
	seedOffice(t, db, "BBB")

	for _, office := range []string{"AAA", "BBB"} {
		st := &SystemType{Name: "Jenis " + office, Office: office}
		require.NoError(t, db.CreateSystemType(ctx, st))
		rec := &SystemRecord{TypeID: st.ID, Name: "Sistem " + office, Status: StatusActive}
		require.NoError(t, db.CreateSystemRecord(ctx, rec))
	}

	// Records carry no trigram themselves; the scope runs through the type.
	scoped, err := db.ListSystemRecords(ctx, ListOptions{Office: "AAA"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, scoped.Total)
	require.Len(t, scoped.Rows, 1)
	assert.Equal(t, "Sistem AAA", scoped.Rows[0].Name)

	exported, err := db.ExportSystemRecords(ctx, ListOptions{Office: "AAA"})
	require.NoError(t, err)
	require.Len(t, exported, 1)
	assert.Equal(t, "Sistem AAA", exported[0].Name)

	all, err := db.ListSystemRecords(ctx, ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	// Search still works under the joined scope.
	found, err := db.ListSystemRecords(ctx, ListOptions{Office: "AAA", Search: "sistem"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, found.Total)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")

	u1 := &User{Name: "Satu", Username: "sama", Password: "x", Role: 1, Office: "AAA"}
	require.NoError(t, db.CreateUser(ctx, u1))

	u2 := &User{Name: "Dua", Username: "sama", Password: "x", Role: 1, Office: "AAA"}
	assert.ErrorIs(t, db.CreateUser(ctx, u2), ErrDuplicate)
}

func TestOfficeSeqNoAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedOffice(t, db, "AAA")
	seedOffice(t, db, "BBB")

	b, err := db.GetOffice(ctx, "BBB")
	require.NoError(t, err)
	assert.Equal(t, 2, b.SeqNo)
	assert.Equal(t, 2, b.OfficeNo)

	assert.ErrorIs(t, db.CreateOffice(ctx, &Office{Trigram: "AAA", Name: "X", Country: "Y", Kind: KindKJRI}), ErrDuplicate)
}

func TestPostingSyncsPersonnelNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedOffice(t, db, "AAA")
	seedOffice(t, db, "BBB")

	p := &Personnel{Name: "Orang", Office: "AAA"}
	require.NoError(t, db.CreatePersonnel(ctx, p))

	require.NoError(t, db.CreatePosting(ctx, &Posting{PersonnelID: p.ID, PostingNo: 1, Office: "AAA"}))
	require.NoError(t, db.CreatePosting(ctx, &Posting{PersonnelID: p.ID, PostingNo: 2, Office: "BBB"}))

	got, err := db.GetPersonnel(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PostingNo)
}
