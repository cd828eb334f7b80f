package order

// OrderStatus represents the lifecycle state of an order.
// The values are a closed set; anything else in storage is a data
// integrity error, not a new state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "en_attente"
	StatusConfirmed OrderStatus = "confirmee"
	StatusPreparing OrderStatus = "en_preparation"
	StatusShipping  OrderStatus = "en_livraison"
	StatusDelivered OrderStatus = "livree"
	StatusCancelled OrderStatus = "annulee"
)

// AllStatuses lists every valid order status
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusShipping,
	StatusDelivered,
	StatusCancelled,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusShipping, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states that admit no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The happy path is a linear chain; cancellation is reachable from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending:
		return target == StatusConfirmed
	case StatusConfirmed:
		return target == StatusPreparing
	case StatusPreparing:
		return target == StatusShipping
	case StatusShipping:
		return target == StatusDelivered
	}
	return false
}

// Label returns the customer-facing French label for the status
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusConfirmed:
		return "Confirmée"
	case StatusPreparing:
		return "En préparation"
	case StatusShipping:
		return "En livraison"
	case StatusDelivered:
		return "Livrée"
	case StatusCancelled:
		return "Annulée"
	}
	return string(s)
}
