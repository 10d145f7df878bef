package booking

import (
	"fmt"
	"strings"
	"unicode"

	"concierge/models"
)

// ManualBookingFor builds the book-it-yourself instructions from the venue's contact info.
// It returns nil when the venue has neither a phone number nor a URL.
func ManualBookingFor(v models.Venue) *models.ManualBooking {
	phone := strings.TrimSpace(v.Contact.Phone)
	url := strings.TrimSpace(v.Contact.URL)
	if phone == "" && url == "" {
		return nil
	}
	mb := &models.ManualBooking{
		Phone:        v.Contact.Phone,
		URL:          v.Contact.URL,
		DisplayPhone: DisplayPhone(phone),
	}
	switch {
	case phone != "" && url != "":
		mb.Instructions = fmt.Sprintf("Call %s at %s or book through %s.", v.Name, mb.DisplayPhone, url)
	case phone != "":
		mb.Instructions = fmt.Sprintf("Call %s at %s to book directly.", v.Name, mb.DisplayPhone)
	default:
		mb.Instructions = fmt.Sprintf("Book %s directly through %s.", v.Name, url)
	}
	return mb
}

// DisplayPhone formats North American numbers as "(415) 555-0123" and leaves others unchanged.
func DisplayPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}
