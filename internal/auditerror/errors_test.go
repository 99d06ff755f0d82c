package auditerror

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestErrorWrapping(t *testing.T) {
	err := &IngestError{FilePath: "statement.csv", Err: os.ErrNotExist}

	assert.Contains(t, err.Error(), "statement.csv")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMissingColumnError(t *testing.T) {
	err := &MissingColumnError{FilePath: "statement.csv", Column: "Description"}

	assert.Contains(t, err.Error(), "statement.csv")
	assert.Contains(t, err.Error(), "Description")

	var target *MissingColumnError
	assert.True(t, errors.As(error(err), &target))
}

func TestReportErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := &ReportError{FilePath: "out.csv", Format: "groups csv", Err: cause}

	assert.Contains(t, err.Error(), "groups csv")
	assert.Contains(t, err.Error(), "out.csv")
	assert.True(t, errors.Is(err, cause))
}
