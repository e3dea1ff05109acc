package engine

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
)

var conflictRetryDelay = 20 * time.Millisecond

// UpdateVersioned applies updates only if the row still carries version, bumping it.
// Zero affected rows means another writer got there first.
func UpdateVersioned(tx *gorm.DB, model any, id uint, version int, updates map[string]any) error {
	updates["version"] = version + 1
	res := tx.Model(model).Where("id = ? AND version = ?", id, version).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewError(common.ErrorCategoryTransactionConflict, "rule %d changed concurrently (version %d)", id, version)
	}
	return nil
}

// RetryOnConflict runs op and, on a TransactionConflict, runs it exactly once more.
// op must reload whatever it mutates.
func RetryOnConflict(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(conflictRetryDelay), 1),
		ctx,
	)
	return backoff.Retry(func() error {
		err := op()
		if err == nil || errors.Is(err, common.ErrTransactionConflict) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
