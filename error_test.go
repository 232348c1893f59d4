package homescout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"homescout"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", homescout.ErrorCode(nil))
	assert.Equal(t, homescout.EBLOCKED, homescout.ErrorCode(homescout.Errorf(homescout.EBLOCKED, "blocked")))
	assert.Equal(t, homescout.EINTERNAL, homescout.ErrorCode(errors.New("plain")))
}

func TestErrorCode_unwraps(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch page: %w", homescout.Errorf(homescout.EINVALID, "bad url"))

	assert.Equal(t, homescout.EINVALID, homescout.ErrorCode(err))
	assert.Equal(t, "bad url", homescout.ErrorMessage(err))
}
