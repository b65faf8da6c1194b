package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertemutare/ofertemutare/internal/testutil"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  error
	}{
		{"ion.popescu@example.com", nil},
		{"a@b.com", nil},
		{"", ErrEmailRequired},
		{"not-an-email", ErrEmailInvalid},
		{"Ion <ion@example.com>", ErrEmailInvalid},
		{strings.Repeat("a", 250) + "@b.com", ErrEmailTooLong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateEmail(tt.email), tt.email)
	}
}

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"0722 123 456", "+40 722 123 456", "0722-123-456", "(0264) 123.456"} {
		assert.NoError(t, ValidatePhone(ok), ok)
	}
	for _, bad := range []string{"", "0722", "0722 abc 456", "40+722123456", strings.Repeat("1", 16)} {
		assert.Error(t, ValidatePhone(bad), bad)
	}
}

func TestValidateNameAndCity(t *testing.T) {
	assert.NoError(t, ValidateName("Ion Popescu"))
	assert.Error(t, ValidateName("  "))
	assert.Error(t, ValidateName(strings.Repeat("ă", 101)))

	assert.NoError(t, ValidateCity("Târgu Mureș"))
	assert.Error(t, ValidateCity(""))
	assert.Error(t, ValidateCity(strings.Repeat("x", 81)))
}

func TestValidateMedia(t *testing.T) {
	types, err := ValidateMedia(testutil.FileHeaders(t,
		testutil.File{Name: "camera.png", Data: testutil.PNG},
		testutil.File{Name: "hol.JPEG", Data: testutil.JPEG},
	))
	assert.NoError(t, err)
	assert.Equal(t, []string{"image/png", "image/jpeg"}, types)

	_, err = ValidateMedia(nil)
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = ValidateMedia(testutil.FileHeaders(t, testutil.File{Name: "lista.jpg", Data: testutil.Text}))
	assert.ErrorIs(t, err, ErrFileType)
	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "lista.jpg", ferr.Filename)

	_, err = ValidateMedia(testutil.FileHeaders(t, testutil.File{Name: "poza.exe", Data: testutil.PNG}))
	assert.ErrorIs(t, err, ErrFileExtension)
}

func TestValidateMedia_SizeLimitFollowsDetectedType(t *testing.T) {
	headers := testutil.FileHeaders(t, testutil.File{Name: "sufragerie.png", Data: testutil.PNG})
	headers[0].Size = ImageConstraints.MaxSize + 1

	_, err := ValidateMedia(headers)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.ErrorContains(t, err, "sufragerie.png")
}

func TestMaxBatchSize(t *testing.T) {
	assert.Equal(t, int64(MaxMediaFiles)*VideoConstraints.MaxSize, MaxBatchSize())
}

func TestValidateMedia_TooMany(t *testing.T) {
	files := make([]testutil.File, MaxMediaFiles+1)
	for i := range files {
		files[i] = testutil.File{Name: "p.png", Data: testutil.PNG}
	}

	_, err := ValidateMedia(testutil.FileHeaders(t, files...))
	assert.ErrorIs(t, err, ErrTooManyFiles)
}
