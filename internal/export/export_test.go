package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title: "Daftar Personel",
		Sheet: "Personel",
		Columns: []Column{
			{Header: "ID", Ratio: 1, Min: 20},
			{Header: "Nama", Ratio: 3, Min: 40},
			{Header: "Perwakilan", Ratio: 1, Min: 25, AdminOnly: true},
		},
		Rows: [][]string{
			{"P0001", "Budi Santoso", "TKY"},
			{"P0002", "Siti Rahayu", "CNB"},
		},
	}
}

func TestForRoleAdminKeepsEverything(t *testing.T) {
	table := sampleTable().ForRole(true)

	assert.Len(t, table.Columns, 3)
	assert.Equal(t, "TKY", table.Rows[0][2])
}

func TestForRoleStripsAdminColumns(t *testing.T) {
	table := sampleTable().ForRole(false)

	require.Len(t, table.Columns, 2)
	assert.Equal(t, "Nama", table.Columns[1].Header)
	for _, row := range table.Rows {
		assert.Len(t, row, 2)
	}
}

func TestForRoleClampsGroupCols(t *testing.T) {
	table := Table{
		Columns: []Column{
			{Header: "A"},
			{Header: "B", AdminOnly: true},
		},
		Rows:      [][]string{{"satu", "dua"}},
		GroupCols: 2,
	}

	shaped := table.ForRole(false)
	assert.Equal(t, 1, shaped.GroupCols)
}

func TestExcelRoundTrip(t *testing.T) {
	data, err := Excel(sampleTable())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Personel")

	header, err := f.GetCellValue("Personel", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Nama", header)

	name, err := f.GetCellValue("Personel", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahayu", name)
}

func TestExcelMergesGroupColumns(t *testing.T) {
	table := Table{
		Sheet: "Pendidikan",
		Columns: []Column{
			{Header: "Nama"},
			{Header: "Jenjang"},
		},
		Rows: [][]string{
			{"Budi Santoso", "S1"},
			{"Budi Santoso", "S2"},
			{"Siti Rahayu", "S1"},
		},
		GroupCols: 1,
	}

	data, err := Excel(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	merged, err := f.GetMergeCells("Pendidikan")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A2", merged[0].GetStartAxis())
	assert.Equal(t, "A3", merged[0].GetEndAxis())
}

func TestPDFProducesDocument(t *testing.T) {
	data, err := PDF(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFEmptyTable(t *testing.T) {
	table := sampleTable()
	table.Rows = nil

	data, err := PDF(table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReceiptProducesDocument(t *testing.T) {
	data, err := Receipt(ReceiptData{
		ID:           "PL001",
		DeviceSerial: "CR-001",
		DeviceType:   "Mesin Sandi",
		BorrowUnit:   "Biro Umum",
		BorrowerName: "Peminjam",
		BorrowerNIP:  "197001011990031001",
		OfficialName: "Pejabat",
		OfficialNIP:  "196501011985031001",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
