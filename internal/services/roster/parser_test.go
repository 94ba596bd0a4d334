package roster_test

import (
	"testing"

	"placement-portal-backend/internal/services/roster"
	apperrors "placement-portal-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSVWithHeaderAliases(t *testing.T) {
	data := []byte("Student Name,Email Address,Mobile,Branch,ID\n" +
		"Asha Rao,asha@example.edu,5551234,CSE,S001\n" +
		"\n" + // blank rows are ignored
		"Vikram Iyer,vikram@example.edu,5555678,ECE,S002\n")

	rows, err := roster.Parse(data, "text/csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Asha Rao", rows[0].Name)
	assert.Equal(t, "asha@example.edu", rows[0].Email)
	assert.Equal(t, "CSE", rows[0].Course)
	assert.Equal(t, "S001", rows[0].StudentID)
	assert.Equal(t, 2, rows[0].RowIndex)
	assert.Equal(t, "vikram@example.edu", rows[1].Email)
}

func TestParseCSVTabDelimited(t *testing.T) {
	data := []byte("Name\tEmail\nPriya\tpriya@example.edu\n")

	rows, err := roster.Parse(data, "text/csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "priya@example.edu", rows[0].Email)
}

func TestParseWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Email", "Phone", "Course"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Rohan Mehta", "rohan@example.edu", "5550001", "ME"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Sara Khan", "sara@example.edu", "5550002", "CE"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := roster.Parse(buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "rohan@example.edu", rows[0].Email)
	assert.Equal(t, "CE", rows[1].Course)
}

func TestParseRejectsMissingEmailColumn(t *testing.T) {
	data := []byte("Name,Phone\nAsha,5551234\n")

	_, err := roster.Parse(data, "text/csv")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileFormat)
}

func TestParseRejectsEmptyOrHeaderOnly(t *testing.T) {
	_, err := roster.Parse(nil, "text/csv")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileFormat)

	_, err = roster.Parse([]byte("Name,Email\n"), "text/csv")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileFormat)

	_, err = roster.Parse([]byte("not a workbook"), "application/octet-stream")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileFormat)
}

func TestValidateDuplicates(t *testing.T) {
	clean := []roster.Row{
		{Email: "a@example.edu", StudentID: "S1"},
		{Email: "b@example.edu", StudentID: "S2"},
	}
	assert.NoError(t, roster.Validate(clean))

	// Same email with different casing is still a duplicate.
	dupEmail := []roster.Row{
		{Email: "a@example.edu", StudentID: "S1"},
		{Email: "A@Example.edu", StudentID: "S2"},
	}
	var verr apperrors.ValidationError
	err := roster.Validate(dupEmail)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "duplicate emails")

	dupID := []roster.Row{
		{Email: "a@example.edu", StudentID: "S1"},
		{Email: "b@example.edu", StudentID: "S1"},
	}
	err = roster.Validate(dupID)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "duplicate IDs")
}
