package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWGSL_SyntaxError(t *testing.T) {
	err := ValidateWGSL("@vertex fn main( -> {")
	assert.ErrorIs(t, err, ErrInvalidWGSL)
}
