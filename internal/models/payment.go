package models

// Payment channels offered at the counter. The summary engine only
// classifies "cash" and "online"; everything else still counts toward
// total revenue.
const (
	PaymentCash        = "Cash"
	PaymentCard        = "Card"
	PaymentPaytm       = "Paytm"
	PaymentWhatsAppPay = "WhatsApp Pay"
	PaymentBhim        = "Bhim"
	PaymentGooglePay   = "Google Pay"
	PaymentPhonePe     = "PhonePe"
	PaymentBharatPe    = "BharatPe"
	PaymentAmazonPe    = "Amazon Pe"
	PaymentUPI         = "UPI"
	PaymentPayswiffUPI = "PayswiffUPI"
)

// PaymentChannels lists every method selectable in the payment modal,
// in display order.
var PaymentChannels = []string{
	PaymentCash,
	PaymentCard,
	PaymentPaytm,
	PaymentWhatsAppPay,
	PaymentBhim,
	PaymentGooglePay,
	PaymentPhonePe,
	PaymentBharatPe,
	PaymentAmazonPe,
	PaymentUPI,
	PaymentPayswiffUPI,
}
