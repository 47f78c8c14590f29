package domain

import (
	"errors"
	"fmt"
)

// MulticastBatchLimit is the most tokens the push platform accepts in one multicast call.
const MulticastBatchLimit = 500

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoDeviceToken   = errors.New("user has no device token")
	ErrNoRecipients    = errors.New("no recipients")
	ErrBatchTooLarge   = fmt.Errorf("multicast batch exceeds %d tokens", MulticastBatchLimit)
)

// Notification type discriminators carried in the data payload.
const (
	TypeNewOrder          = "new_order"
	TypeOrderStatusUpdate = "order_status_update"
	TypeTestNotification  = "test_notification"
	TypeBulkNotification  = "bulk_notification"
)

// Data payload keys.
const (
	DataOrderID      = "orderId"
	DataType         = "type"
	DataStatus       = "status"
	DataCustomerID   = "customerId"
	DataCustomerName = "customerName"
	DataCompanyID    = "companyId"
)

type NotificationContent struct {
	Title string
	Body  string
}

// No entry for StatusWaiting: customers are never notified of the state they caused.
var statusContents = map[StatusName]NotificationContent{
	StatusProcessing: {Title: "Preparing", Body: "Your order is being prepared"},
	StatusCompleted:  {Title: "Completed", Body: "Your order is complete. Enjoy!"},
	StatusCancelled:  {Title: "Order Cancelled", Body: "Your order has been cancelled. Check the app for details"},
}

func ContentFor(name StatusName) (NotificationContent, bool) {
	c, ok := statusContents[name]
	return c, ok
}

const (
	NewOrderTitle        = "New order!"
	newOrderBodyTemplate = "%s placed an order, waiting to be prepared"
)

func NewOrderBody(customerName string) string {
	return fmt.Sprintf(newOrderBodyTemplate, customerName)
}

// StatusUpdateBody suffixes the content body with the short order reference.
func StatusUpdateBody(content NotificationContent, orderID string) string {
	return fmt.Sprintf("%s (Order #%s)", content.Body, ShortOrderID(orderID))
}

// PlatformHints are delivery hints for the mobile platforms.
type PlatformHints struct {
	AndroidChannelID string
	AndroidPriority  string
	Sound            string
	Badge            int
}

func OrderUpdateHints() *PlatformHints {
	return &PlatformHints{
		AndroidChannelID: "order_updates",
		AndroidPriority:  "high",
		Sound:            "default",
		Badge:            1,
	}
}

// Notification is the ephemeral message handed to a push transport. It is never persisted.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
	Hints *PlatformHints
}

type BatchResult struct {
	SuccessCount int
	FailureCount int
}

func (r BatchResult) Add(other BatchResult) BatchResult {
	return BatchResult{
		SuccessCount: r.SuccessCount + other.SuccessCount,
		FailureCount: r.FailureCount + other.FailureCount,
	}
}

// SplitBatches partitions tokens into consecutive chunks of at most size tokens.
func SplitBatches(tokens []string, size int) [][]string {
	if size <= 0 {
		size = MulticastBatchLimit
	}
	batches := make([][]string, 0, (len(tokens)+size-1)/size)
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		batches = append(batches, tokens[start:end])
	}
	return batches
}
