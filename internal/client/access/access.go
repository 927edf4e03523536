// Package access decides which console sections a role may open.
package access

import (
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

// Section is a functional area of the admin console.
type Section string

const (
	Login     Section = "login"
	Dashboard Section = "dashboard"

	Organizations Section = "organizations"
	Accounts      Section = "accounts"
	QRCodes       Section = "qr-codes"
	Users         Section = "users"

	Kiosks         Section = "kiosks"
	PriceGoods     Section = "price-goods"
	Advertisements Section = "advertisements"
	Statistics     Section = "statistics"
	Promotions     Section = "promotions"
	Workers        Section = "workers"
)

var sections = map[models.Role][]Section{
	models.RoleSuperAdmin:  {Dashboard, Organizations, Accounts, QRCodes, Users},
	models.RoleClientAdmin: {Dashboard, Kiosks, PriceGoods, Advertisements, Statistics, Promotions, Workers},
}

// Allowed reports whether role may open section. The login section is open
// to everyone; an empty role is only allowed there.
func Allowed(role models.Role, section Section) bool {
	if section == Login {
		return true
	}
	for _, s := range sections[role] {
		if s == section {
			return true
		}
	}
	return false
}

// Sections lists what role may open, in menu order.
func Sections(role models.Role) []Section {
	return append([]Section(nil), sections[role]...)
}

// Home is the landing section after sign-in.
func Home(role models.Role) Section {
	switch role {
	case models.RoleSuperAdmin:
		return Organizations
	case models.RoleClientAdmin:
		return Kiosks
	}
	return Login
}
