package domain

import "strings"

// CustomerType matches the values used in the uploaded business data, which
// is Russian-first with English aliases accepted on input.
type CustomerType string

const (
	CustomerRetail     CustomerType = "розница"
	CustomerWholesale  CustomerType = "опт"
	CustomerIndividual CustomerType = "физ. лицо"
	CustomerCorporate  CustomerType = "юр. лицо"
)

// SalesChannel is the two-value channel classification.
type SalesChannel string

const (
	ChannelOnline  SalesChannel = "Онлайн"
	ChannelOffline SalesChannel = "Офлайн"
)

// ShippingStatusDelivered is the default shipping status for ingested rows.
const ShippingStatusDelivered = "доставлено"

// ParseCustomerType maps free-text customer descriptions onto the enum by
// case-insensitive substring match, defaulting to an individual customer.
func ParseCustomerType(raw string) CustomerType {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "retail"), strings.Contains(s, "розница"):
		return CustomerRetail
	case strings.Contains(s, "wholesale"), strings.Contains(s, "опт"):
		return CustomerWholesale
	case strings.Contains(s, "individual"), strings.Contains(s, "физ"), strings.Contains(s, "частное"):
		return CustomerIndividual
	case strings.Contains(s, "corporate"), strings.Contains(s, "юр"), strings.Contains(s, "компания"):
		return CustomerCorporate
	default:
		return CustomerIndividual
	}
}

var onlineMarkers = []string{"online", "онлайн", "интернет", "сайт", "web", "веб"}

// ParseSalesChannel maps free-text channel descriptions onto the enum.
// Anything not recognizably online is offline.
func ParseSalesChannel(raw string) SalesChannel {
	s := strings.ToLower(raw)
	for _, marker := range onlineMarkers {
		if strings.Contains(s, marker) {
			return ChannelOnline
		}
	}
	return ChannelOffline
}
