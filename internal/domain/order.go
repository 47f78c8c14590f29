package domain

// StatusCode is the integer order status stored by the ordering clients.
type StatusCode int

type StatusName string

const (
	StatusWaiting    StatusName = "waiting"
	StatusProcessing StatusName = "processing"
	StatusCompleted  StatusName = "completed"
	StatusCancelled  StatusName = "cancelled"
)

var statusNames = map[StatusCode]StatusName{
	0: StatusWaiting,
	1: StatusProcessing,
	2: StatusCompleted,
	3: StatusCancelled,
}

// Name resolves the code through the status table. ok is false for codes the
// table does not know, which callers treat as a data-quality anomaly.
func (c StatusCode) Name() (StatusName, bool) {
	name, ok := statusNames[c]
	return name, ok
}

const UnknownCustomerName = "Unknown customer"

type OrderCustomer struct {
	Name string `json:"name"`
}

type Order struct {
	ID                string         `json:"id,omitempty"`
	Status            StatusCode     `json:"status"`
	CustomerID        string         `json:"customerId"`
	ProducerCompanyID string         `json:"producerCompanyId"`
	Customer          *OrderCustomer `json:"customer,omitempty"`
}

// CustomerName returns the denormalized customer display name, or
// UnknownCustomerName when the order does not carry one.
func (o *Order) CustomerName() string {
	if o.Customer == nil || o.Customer.Name == "" {
		return UnknownCustomerName
	}
	return o.Customer.Name
}

// ShortOrderID is the human reference appended to customer notifications.
// It keeps the first 8 characters, not bytes, so the result stays valid UTF-8.
func ShortOrderID(orderID string) string {
	r := []rune(orderID)
	if len(r) <= 8 {
		return orderID
	}
	return string(r[:8])
}
