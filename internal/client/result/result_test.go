package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	r := Success(42)
	assert.True(t, r.Ok())
	assert.Equal(t, 42, r.Value())
	assert.Equal(t, KindNone, r.Kind())
	assert.NoError(t, r.Err())
}

func TestFailure(t *testing.T) {
	r := Failure[string](KindConflict, "이미 사용 중인 닉네임입니다.")
	assert.False(t, r.Ok())
	assert.Equal(t, "", r.Value())
	assert.Equal(t, KindConflict, r.Kind())
	assert.Equal(t, "이미 사용 중인 닉네임입니다.", r.Message())

	err := r.Err()
	assert.True(t, errors.Is(err, ErrKindConflict))
	assert.False(t, errors.Is(err, ErrKindNotFound))
	assert.EqualError(t, err, "이미 사용 중인 닉네임입니다.")

	var re *Error
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, KindConflict, re.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "structural_import", KindStructuralImport.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
