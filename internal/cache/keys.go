package cache

import (
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	RatingKeyPrefix      = "rating:%d:%d"
	ReviewEpochKeyPrefix = "review_epoch:%d"
)

const (
	UserTTL   = 5 * time.Minute
	RatingTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// RatingKey names a cached review summary. The epoch changes whenever the
// product's review set does, so an old key is never read again.
func RatingKey(productID uint, epoch int64) string {
	return fmt.Sprintf(RatingKeyPrefix, productID, epoch)
}

func ReviewEpochKey(productID uint) string {
	return fmt.Sprintf(ReviewEpochKeyPrefix, productID)
}
