package ccgerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.Empty(t, errs.Codes())
	assert.Nil(t, errs.With())

	errs = errs.With(New(NewMissingParent{Child: "NP"}))
	errs = errs.With(
		New(NewParse{Input: "(NP", Offset: 0, Message: "unbalanced brackets"}),
		New(NewMissingParent{Child: "PP"}),
	)
	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 3)
	assert.Equal(t, map[ErrCode]int{MissingParent: 2, Parse: 1}, errs.Codes())

	group := errs.LogValue().Group()
	assert.Equal(t, "count", group[0].Key)
	assert.Equal(t, int64(3), group[0].Value.Int64())
	codes := group[1].Value.Group()
	assert.Equal(t, "E001", codes[0].Key)
	assert.Equal(t, int64(1), codes[0].Value.Int64())
	assert.Equal(t, "E006", codes[1].Key)
	assert.Equal(t, int64(2), codes[1].Value.Int64())
	msgs := group[2].Value.Group()
	assert.Len(t, msgs, 3)
	assert.Equal(t, "(E006) unary production over 'NP' needs a parent category", msgs[0].Value.String())
}
