package finance

// PaymentMethod is how a purchase is paid
type PaymentMethod string

const (
	PaymentMethodCash           PaymentMethod = "CASH"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodTransfer       PaymentMethod = "TRANSFER"
	PaymentMethodCard           PaymentMethod = "CARD"
	PaymentMethodCheck          PaymentMethod = "CHECK"
	PaymentMethodStoreCredit    PaymentMethod = "STORE_CREDIT"
)

// IsValid returns true if the payment method is recognized
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCashOnDelivery,
		PaymentMethodTransfer, PaymentMethodCard, PaymentMethodCheck,
		PaymentMethodStoreCredit:
		return true
	}
	return false
}

// Channel is the balance a payment affects
type Channel string

const (
	ChannelRegister Channel = "REGISTER" // Affects the cash-register balance
	ChannelBank     Channel = "BANK"     // Affects a bank-account balance
	ChannelNone     Channel = "NONE"     // Affects neither (store credit)
)

// ResolveChannel maps a payment method to its financial channel
func (m PaymentMethod) ResolveChannel() Channel {
	switch m {
	case PaymentMethodCash, PaymentMethodCashOnDelivery:
		return ChannelRegister
	case PaymentMethodTransfer, PaymentMethodCard, PaymentMethodCheck:
		return ChannelBank
	default:
		return ChannelNone
	}
}
