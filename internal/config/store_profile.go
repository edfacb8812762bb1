package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreProfile is the public contact information of the store.
type StoreProfile struct {
	Name           string  `yaml:"name" json:"name"`
	Tagline        string  `yaml:"tagline" json:"tagline"`
	WhatsAppNumber string  `yaml:"whatsapp_number" json:"whatsappNumber"`
	ContactMessage string  `yaml:"contact_message" json:"contactMessage"`
	OrderEmail     string  `yaml:"order_email" json:"orderEmail"`
	Phone          string  `yaml:"phone" json:"phone"`
	Address        string  `yaml:"address" json:"address"`
	Latitude       float64 `yaml:"latitude" json:"latitude"`
	Longitude      float64 `yaml:"longitude" json:"longitude"`
}

// DefaultStoreProfile is used when no profile file is configured.
func DefaultStoreProfile() StoreProfile {
	return StoreProfile{
		Name:           "Mithila Bazaar",
		Tagline:        "Your trusted neighbourhood store",
		WhatsAppNumber: "917070848333",
		ContactMessage: "Hi! I'm interested in Mithila Bazaar. Please tell me more about your services and franchise opportunities.",
		OrderEmail:     "mithilabazaar7@gmail.com",
		Phone:          "+91 7070848333",
		Address:        "Darbhanga, Bihar, India",
		Latitude:       26.1542,
		Longitude:      85.8918,
	}
}

// LoadStoreProfile reads a YAML profile. Fields missing from the file keep
// their default values. An empty path returns the defaults.
func LoadStoreProfile(path string) (StoreProfile, error) {
	profile := DefaultStoreProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return StoreProfile{}, fmt.Errorf("read store profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return StoreProfile{}, fmt.Errorf("parse store profile: %w", err)
	}
	return profile, nil
}
