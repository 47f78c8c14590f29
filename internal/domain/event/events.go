package event

import (
	"time"

	"github.com/Josepharis/siparis/internal/domain"
)

type Operation string

const (
	OpCreate Operation = "c"
	OpUpdate Operation = "u"
	OpDelete Operation = "d"
)

// OrderChangeEvent is the change record published for every write to the orders table.
type OrderChangeEvent struct {
	Op        Operation     `json:"op"`
	OrderID   string        `json:"order_id"`
	Before    *domain.Order `json:"before,omitempty"`
	After     *domain.Order `json:"after,omitempty"`
	Timestamp time.Time     `json:"ts"`
}
