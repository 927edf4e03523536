package models

// Schedule is the opening window of a branch for one weekday.
type Schedule struct {
	Weekday  int     `json:"weekday"`
	IsClosed bool    `json:"is_closed"`
	OpensAt  *string `json:"opens_at"`
	ClosesAt *string `json:"closes_at"`
}

// Branch is a physical car-wash or fuel-station location of an organization.
type Branch struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Address  string     `json:"address"`
	Lat      float64    `json:"lat"`
	Lon      float64    `json:"lon"`
	Schedule []Schedule `json:"schedule"`
}

// Organization is a client company operating kiosks.
type Organization struct {
	ID              ID       `json:"id,omitempty"`
	DisplayName     string   `json:"display_name"`
	LegalName       string   `json:"legal_name"`
	TaxID           string   `json:"tax_id"`
	DefaultTakeRate float64  `json:"default_take_rate"`
	Status          string   `json:"status"`
	StartsAt        string   `json:"starts_at"`
	ExpiresAt       string   `json:"expires_at"`
	Branches        []Branch `json:"branches"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

// PlatformUser is an account of the platform itself (not of a client company).
type PlatformUser struct {
	ID        ID     `json:"id,omitempty"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsSuper   bool   `json:"is_super"`
	Status    *bool  `json:"status,omitempty"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
