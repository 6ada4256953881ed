package domain

// Order Statuses (fulfillment axis)
const (
	OrderStatusPending        = "pending"
	OrderStatusProcessing     = "processing"
	OrderStatusPacked         = "packed"
	OrderStatusDispatched     = "dispatched"
	OrderStatusInTransit      = "in-transit"
	OrderStatusOutForDelivery = "out-for-delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Payment Statuses (independent axis)
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

// Payment Methods
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodGPay     = "gpay"
	PaymentMethodCOD      = "cod"
)

// OrderStatuses lists the fulfillment pipeline in delivery order, with
// cancelled as the terminal side branch at the end.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusPacked,
	OrderStatusDispatched,
	OrderStatusInTransit,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusConfirmed,
	PaymentStatusFailed,
}

var PaymentMethods = []string{
	PaymentMethodRazorpay,
	PaymentMethodGPay,
	PaymentMethodCOD,
}
