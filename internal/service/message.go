package service

import (
	"fmt"
	"strings"

	"github.com/opendoors/notify-relay/internal/model"
)

const (
	fallbackProduce     = "Various produce"
	fallbackDays        = "Flexible"
	fallbackUnspecified = "Not specified"
	fallbackAddress     = "N/A"
)

// FarmerMessage is sent to the farmer and describes the recipient organization.
func FarmerMessage(recipient *model.Party) string {
	food := recipient.FoodDetails

	var b strings.Builder
	b.WriteString("New Open-Doors Match Found!\n\n")
	b.WriteString("Organization Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", orDefault(recipient.OrganizationName, "Unnamed Organization"))
	fmt.Fprintf(&b, "Contact: %s\n", orDefault(recipient.ContactName, "Organization Contact"))
	fmt.Fprintf(&b, "Phone: %s\n", recipient.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", formatAddress(recipient))
	b.WriteString("Food Needs:\n")
	b.WriteString(bulletList(food.NeededFoodTypes))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Urgency Level: %s\n", orDefault(food.UrgencyLevel, fallbackUnspecified))
	if food.TransportationAvailable {
		b.WriteString("Transportation: Can arrange pickup\n")
	} else {
		b.WriteString("Transportation: Needs delivery\n")
	}
	if radius, ok := radiusValue(food.PickupRadius); ok {
		fmt.Fprintf(&b, "Pickup Radius: %s miles\n", radius)
	} else {
		fmt.Fprintf(&b, "Pickup Radius: %s\n", fallbackUnspecified)
	}
	fmt.Fprintf(&b, "Preferred Days: %s", dayList(food.PreferredDeliveryDays))
	return b.String()
}

// RecipientMessage is sent to the recipient and describes the farm.
func RecipientMessage(farmer *model.Party) string {
	food := farmer.FoodDetails

	var b strings.Builder
	b.WriteString("New Open Doors Match Found!\n\n")
	b.WriteString("Farm Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", orDefault(farmer.OrganizationName, "Unnamed Farm"))
	fmt.Fprintf(&b, "Contact: %s\n", orDefault(farmer.ContactName, "Farm Contact"))
	fmt.Fprintf(&b, "Phone: %s\n", farmer.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", formatAddress(farmer))
	b.WriteString("Available Crops:\n")
	b.WriteString(bulletList(food.CropTypes))
	b.WriteString("\n\n")
	if food.DeliveryCapability {
		b.WriteString("Delivery: Offers delivery")
		if radius, ok := radiusValue(food.DeliveryRadius); ok {
			fmt.Fprintf(&b, " (within %s miles)", radius)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Delivery: Pickup only\n")
	}
	fmt.Fprintf(&b, "Available Days: %s", dayList(food.AvailableDays))
	return b.String()
}

func formatAddress(p *model.Party) string {
	return strings.Join([]string{
		orDefault(p.Address, fallbackAddress),
		orDefault(p.City, fallbackAddress),
		orDefault(p.State, fallbackAddress),
	}, ", ")
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return fallbackProduce
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}

func dayList(days []string) string {
	if len(days) == 0 {
		return fallbackDays
	}
	return strings.Join(days, ", ")
}

// radiusValue treats a missing or zero radius as not provided.
func radiusValue(radius *model.Radius) (string, bool) {
	if radius == nil || *radius == 0 {
		return "", false
	}
	return radius.String(), true
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
