package model

import "strings"

// PartyRole names the side of a match a Party is on.
type PartyRole string

const (
	PartyRoleFarmer    PartyRole = "farmer"
	PartyRoleRecipient PartyRole = "recipient"
)

type Preferences struct {
	SMS      bool `json:"sms"`
	WhatsApp bool `json:"whatsapp"`
}

// FoodDetails carries both the farmer and the recipient variants; a payload
// only fills in the fields for its own side.
type FoodDetails struct {
	// farmer
	CropTypes          []string `json:"cropTypes"`
	DeliveryCapability bool     `json:"deliveryCapability"`
	DeliveryRadius     *Radius  `json:"deliveryRadius"`
	AvailableDays      []string `json:"availableDays"`

	// recipient
	NeededFoodTypes         []string `json:"neededFoodTypes"`
	UrgencyLevel            string   `json:"urgencyLevel"`
	TransportationAvailable bool     `json:"transportationAvailable"`
	PickupRadius            *Radius  `json:"pickupRadius"`
	PreferredDeliveryDays   []string `json:"preferredDeliveryDays"`
}

type Party struct {
	ID               ID          `json:"id"`
	OrganizationName string      `json:"organizationName"`
	ContactName      string      `json:"contactName"`
	Phone            string      `json:"phone"`
	WhatsApp         string      `json:"whatsapp"`
	Address          string      `json:"address"`
	City             string      `json:"city"`
	State            string      `json:"state"`
	Preferences      Preferences `json:"preferences"`
	FoodDetails      FoodDetails `json:"foodDetails"`
}

// AddressFor returns the destination for ch, or "" when the party has none.
func (p *Party) AddressFor(ch Channel) string {
	switch ch {
	case ChannelSMS:
		return strings.TrimSpace(p.Phone)
	case ChannelWhatsApp:
		return strings.TrimSpace(p.WhatsApp)
	default:
		return ""
	}
}

// WantsChannel reports whether the party opted into ch and has an address for it.
func (p *Party) WantsChannel(ch Channel) bool {
	var opted bool
	switch ch {
	case ChannelSMS:
		opted = p.Preferences.SMS
	case ChannelWhatsApp:
		opted = p.Preferences.WhatsApp
	}
	return opted && p.AddressFor(ch) != ""
}

type MatchRequest struct {
	MatchID   ID     `json:"matchId"`
	Farmer    *Party `json:"farmer"`
	Recipient *Party `json:"recipient"`
}
