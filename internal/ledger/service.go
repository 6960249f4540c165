package ledger

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"ledger-backend/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Service owns every mutation of orders, line items, payments and stock.
// Each exported mutation runs in exactly one database transaction.
type Service struct {
	db       *gorm.DB
	log      zerolog.Logger
	now      func() time.Time
	validate *validator.Validate
}

func NewService(db *gorm.DB) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		db:       db,
		log:      logger.WithComponent("ledger"),
		now:      time.Now,
		validate: v,
	}
}

func (s *Service) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := classify(op, s.db.WithContext(ctx).Transaction(fn))
	var pe *PersistenceError
	if errors.As(err, &pe) {
		s.log.Error().Err(pe.Err).Str("op", op).Msg("transaction rolled back")
	}
	return err
}

func (s *Service) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
	}
	return &ValidationError{Field: field, Message: msg}
}
