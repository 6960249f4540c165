package ledger

import (
	"fmt"
	"time"

	"ledger-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextOrderNumber draws the next value of the kind's counter and formats it as
// PREFIX-YYYYMMDD-NNNNN. The increment runs inside tx, so concurrent creators
// serialise on the counter row and a rolled back order gives its number back.
func nextOrderNumber(tx *gorm.DB, kind models.OrderKind, on time.Time) (string, error) {
	seed := models.OrderSequence{Kind: kind}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", err
	}

	if err := tx.Model(&models.OrderSequence{}).
		Where("kind = ?", kind).
		UpdateColumn("value", gorm.Expr("value + 1")).Error; err != nil {
		return "", err
	}

	var seq models.OrderSequence
	if err := tx.Where("kind = ?", kind).First(&seq).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%05d", kind.NumberPrefix(), on.Format("20060102"), seq.Value), nil
}
