package domain

import (
	"context"
	"strings"
	"time"
)

// DeliveryRate maps a destination state to its shipping charge. States are
// matched case-insensitively on the exact name.
type DeliveryRate struct {
	State     string  `json:"state"`
	Region    string  `json:"region,omitempty"`
	ChargeINR float64 `json:"charge_inr"`
}

type ContactConfig struct {
	Phone string `json:"phoneE164"`
	Email string `json:"email"`
}

type PaymentsConfig struct {
	GPayUPIID   string `json:"gpayUpiId"`
	GPayQRImage string `json:"gpayQrImage"`
}

type PricingConfig struct {
	FreeShippingMin float64 `json:"freeShippingMin"`
}

type DeliveryConfig struct {
	Rates          []DeliveryRate `json:"rates"`
	ShippingPolicy string         `json:"shippingPolicy,omitempty"`
}

type AbroadConfig struct {
	Enabled       bool     `json:"enabled"`
	BaseCharge    float64  `json:"baseCharge"`
	PerKgRate     float64  `json:"perKgRate"`
	EstimatedDays string   `json:"estimatedDays"`
	Countries     []string `json:"countries"`
}

type RazorpayConfig struct {
	// KeyID is publishable and served to the storefront. The key secret is
	// deployment configuration and never part of this document.
	KeyID string `json:"keyId"`
}

// StoreConfig is the tenant settings document. It is a singleton: the
// storefront and checkout read it, only the back office writes it.
type StoreConfig struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Logo        string         `json:"logo"`
	BannerImage string         `json:"bannerImage"`
	Contact     ContactConfig  `json:"contact"`
	Payments    PaymentsConfig `json:"payments"`
	Pricing     PricingConfig  `json:"pricing"`
	Delivery    DeliveryConfig `json:"delivery"`
	Abroad      AbroadConfig   `json:"abroad"`
	Razorpay    RazorpayConfig `json:"razorpay"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// RateForState looks up the delivery rate for a destination state,
// case-insensitively. Returns nil when the state is not serviced.
func (c *StoreConfig) RateForState(state string) *DeliveryRate {
	state = strings.TrimSpace(state)
	if state == "" {
		return nil
	}
	for i := range c.Delivery.Rates {
		if strings.EqualFold(c.Delivery.Rates[i].State, state) {
			return &c.Delivery.Rates[i]
		}
	}
	return nil
}

// FreeShippingMin returns the configured threshold, falling back to the
// default when unset.
func (c *StoreConfig) FreeShippingMin() float64 {
	if c.Pricing.FreeShippingMin > 0 {
		return c.Pricing.FreeShippingMin
	}
	return DefaultFreeShippingMin
}

const DefaultFreeShippingMin = 999.0

type StoreConfigRepository interface {
	Get(ctx context.Context) (*StoreConfig, error)
	Save(ctx context.Context, cfg *StoreConfig) error
}
