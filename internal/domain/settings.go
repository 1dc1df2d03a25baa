package domain

import "time"

// Settings is the single store-wide configuration record. The storage
// layer enforces that exactly one row exists.
type Settings struct {
	StoreName                  string    `json:"storeName"`
	StoreDescription           string    `json:"storeDescription,omitempty"`
	ContactEmail               string    `json:"contactEmail,omitempty"`
	ContactPhone               string    `json:"contactPhone,omitempty"`
	Currency                   string    `json:"currency"`
	FlatShippingCents          int64     `json:"flatShippingCents"`
	FreeShippingThresholdCents int64     `json:"freeShippingThresholdCents"`
	AllowGuestCheckout         bool      `json:"allowGuestCheckout"`
	MaintenanceMode            bool      `json:"maintenanceMode"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

// DefaultSettings is what the first read creates when no settings row
// exists yet.
func DefaultSettings() Settings {
	return Settings{
		StoreName:                  "GearPH",
		StoreDescription:           "Gaming gear for the Philippine market",
		ContactEmail:               "support@gearph.example",
		Currency:                   "PHP",
		FlatShippingCents:          0,
		FreeShippingThresholdCents: 0,
		AllowGuestCheckout:         true,
		MaintenanceMode:            false,
	}
}
