package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"kicau/internal/apperr"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	assert.NoError(t, apperr.FromDB(nil, "noop"))

	err := apperr.FromDB(gorm.ErrRecordNotFound, "post with ID %d", 7)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "post with ID 7")

	err = apperr.FromDB(gorm.ErrDuplicatedKey, "create user")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	err = apperr.FromDB(errors.New("UNIQUE constraint failed: users.email"), "create user")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	err = apperr.FromDB(gorm.ErrForeignKeyViolated, "create comment")
	assert.ErrorIs(t, err, apperr.ErrConstraintViolation)

	err = apperr.FromDB(errors.New(`ERROR: insert or update on table "comments" violates foreign key constraint`), "create comment")
	assert.ErrorIs(t, err, apperr.ErrConstraintViolation)

	boom := fmt.Errorf("connection reset")
	err = apperr.FromDB(boom, "list feed")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
}
