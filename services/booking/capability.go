package booking

import "concierge/models"

var requiredTransactions = map[models.Category]string{
	models.CategoryDining:         models.TxRestaurantReservation,
	models.CategoryAccommodation:  models.TxHotelReservation,
	models.CategoryAttraction:     models.TxTicketSales,
	models.CategoryTransportation: models.TxTransportBooking,
	models.CategoryEntertainment:  models.TxEventTickets,
}

// RequiredTransaction is the capability flag a venue must declare to be booked online for c.
func RequiredTransaction(c models.Category) string {
	return requiredTransactions[c]
}

// TransactionCapability checks the venue's declared transaction types.
type TransactionCapability struct{}

func (TransactionCapability) Supports(venue models.Venue, category models.Category) bool {
	tx := RequiredTransaction(category)
	return tx != "" && venue.Supports(tx)
}
