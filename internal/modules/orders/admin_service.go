package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

type TransitionInput struct {
	OrderID string
	ActorID string // staff member id
	Action  string // process|ship|deliver|cancel
	Note    string
}

// Transition advances order_status manually (staff action). payment_status is
// never touched here; the reconciliation flow owns it.
func (s *AdminService) Transition(ctx context.Context, in TransitionInput) error {
	if in.OrderID == "" || in.ActorID == "" || in.Action == "" {
		return ErrNotActionable
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order

		// row lock
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			return err
		}

		from := o.OrderStatus
		to, err := nextStatus(from, in.Action)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.WithContext(ctx).
			Model(&Order{}).
			Where("id = ? AND order_status = ?", o.ID, from). // optimistic guard
			Updates(map[string]any{
				"order_status": to,
				"updated_at":   now,
			}).Error; err != nil {
			return err
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		ev := OrderEvent{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			ActorID:    in.ActorID,
			Action:     in.Action,
			FromStatus: from,
			ToStatus:   to,
			Note:       notePtr,
			CreatedAt:  now,
		}
		return tx.WithContext(ctx).Create(&ev).Error
	})
}

func nextStatus(from, action string) (string, error) {
	switch action {
	case "process":
		if from == StatusPending {
			return StatusProcessing, nil
		}
		return "", ErrInvalidTransition
	case "ship":
		if from == StatusProcessing {
			return StatusShipped, nil
		}
		return "", ErrInvalidTransition
	case "deliver":
		if from == StatusShipped {
			return StatusDelivered, nil
		}
		return "", ErrInvalidTransition
	case "cancel":
		if from == StatusPending || from == StatusProcessing {
			return StatusCancelled, nil
		}
		return "", ErrInvalidTransition
	default:
		return "", ErrInvalidTransition
	}
}
