package order

import "gearph-api/internal/domain"

// Instruction payload types returned to the confirmation view.
const (
	InstructionsBankTransfer = "bank_transfer"
	InstructionsGCash        = "gcash"
	InstructionsCOD          = "cash_on_delivery"
)

// Static settlement details. Payment confirmation is manual: an
// operator checks the proof of payment and flips the payment status.
const (
	bankName          = "BDO Unibank"
	bankAccountName   = "GearPH Trading"
	bankAccountNumber = "0045-8821-3397"
	gcashNumber       = "0917 555 0199"
	gcashAccountName  = "GearPH Trading"
)

// Instructions tells the customer how to settle the order. Fields are
// method-specific; absent ones are omitted from the JSON.
type Instructions struct {
	Type          string `json:"type"`
	AmountCents   int64  `json:"amountCents"`
	Reference     string `json:"reference,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	WalletNumber  string `json:"walletNumber,omitempty"`
	Instructions  string `json:"instructions"`
}

// InstructionsFor derives the payment-instruction payload for a created
// order. The order number doubles as the payment reference for methods
// that need one; cash on delivery settles at handoff and carries none.
func InstructionsFor(method string, amountCents int64, orderNumber string) Instructions {
	switch method {
	case domain.PaymentBankTransfer:
		return Instructions{
			Type:          InstructionsBankTransfer,
			AmountCents:   amountCents,
			Reference:     orderNumber,
			BankName:      bankName,
			AccountName:   bankAccountName,
			AccountNumber: bankAccountNumber,
			Instructions:  "Transfer the exact amount to the account above and use the reference as the transfer note. Your order ships once an operator confirms the payment.",
		}
	case domain.PaymentGCash:
		return Instructions{
			Type:         InstructionsGCash,
			AmountCents:  amountCents,
			Reference:    orderNumber,
			WalletNumber: gcashNumber,
			AccountName:  gcashAccountName,
			Instructions: "Send the exact amount to the GCash number above and include the reference in the message. Your order ships once an operator confirms the payment.",
		}
	default:
		return Instructions{
			Type:         InstructionsCOD,
			AmountCents:  amountCents,
			Instructions: "Prepare the exact amount in cash. Payment is collected by the courier on delivery.",
		}
	}
}
