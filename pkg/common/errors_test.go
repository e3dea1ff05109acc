package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
)

func TestEngineErrorMatchesSentinelByCategory(t *testing.T) {
	err := fmt.Errorf("copy rule: %w", NotFound("tank %s not found", "t1"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrDuplicateRule))

	category, ok := CategoryOf(err)
	assert.True(t, ok)
	assert.Equal(t, ErrorCategoryNotFound, category)
	assert.Contains(t, err.Error(), "tank t1 not found")
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(ErrorCategoryTransactionConflict, cause, "rule %d", 7)

	assert.True(t, errors.Is(err, ErrTransactionConflict))
	assert.True(t, errors.Is(err, cause))
}

func TestSinkFailureAggregates(t *testing.T) {
	assert.NoError(t, SinkFailure(nil))
	assert.NoError(t, SinkFailure(&multierror.Error{}))

	var merr *multierror.Error
	merr = multierror.Append(merr, errors.New("push down"), errors.New("socket down"))

	err := SinkFailure(merr)
	assert.True(t, errors.Is(err, ErrSinkFailure))
	assert.Contains(t, err.Error(), "push down")
	assert.Contains(t, err.Error(), "socket down")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrorCategoryNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrorCategoryDuplicateRule))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrorCategoryTransactionConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrorCategoryValidation))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrorCategorySinkFailure))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrorCategory("other")))
}
