package notifications

import (
	"fmt"
	"os"

	"github.com/hoodshookups/hoods-app/models"
)

func appURL() string {
	if url := os.Getenv("APP_URL"); url != "" {
		return url
	}
	return "http://localhost:8000"
}

// NotifyQuoteReceived confirms the new lead to the customer and alerts the
// admin contacts.
func NotifyQuoteReceived(quote *models.Quote) {
	variables := map[string]string{
		"customer_name": quote.Name,
		"service_name":  quote.Service.Name,
		"address":       quote.Address,
		"message":       orDefault(quote.Message, "No additional details"),
	}

	Dispatch(Intent{
		TemplateName: "quote_received_email",
		Recipient:    quote.Email,
		Variables:    variables,
		EntityType:   "quote",
		EntityID:     quote.ID,
	})
	Dispatch(Intent{
		TemplateName: "quote_received_sms",
		Recipient:    quote.Phone,
		Variables:    variables,
		EntityType:   "quote",
		EntityID:     quote.ID,
	})

	adminVariables := map[string]string{
		"customer_name": quote.Name,
		"service_name":  quote.Service.Name,
		"address":       quote.Address,
		"message":       orDefault(quote.Message, "No additional details"),
		"phone":         quote.Phone,
		"email":         quote.Email,
		"admin_link":    appURL() + "/admin",
	}
	Dispatch(Intent{
		TemplateName: "new_lead_admin_email",
		Recipient:    os.Getenv("ADMIN_EMAIL"),
		Variables:    adminVariables,
		EntityType:   "quote",
		EntityID:     quote.ID,
	})
	Dispatch(Intent{
		TemplateName: "new_lead_admin_sms",
		Recipient:    os.Getenv("ADMIN_PHONE"),
		Variables:    adminVariables,
		EntityType:   "quote",
		EntityID:     quote.ID,
	})
}

// NotifyPriceResponse sends the customer their price with the public
// approval link.
func NotifyPriceResponse(quote *models.Quote, response *models.QuoteResponse) {
	validUntil := "N/A"
	if response.ValidUntil != nil {
		validUntil = response.ValidUntil.Format("Jan 2, 2006")
	}

	variables := map[string]string{
		"customer_name":     quote.Name,
		"service_name":      quote.Service.Name,
		"price":             fmt.Sprintf("%.2f", response.Price),
		"price_description": response.PriceDescription,
		"message":           response.Message,
		"valid_until":       validUntil,
		"approval_link":     fmt.Sprintf("%s/approve/%d", appURL(), response.ID),
	}

	Dispatch(Intent{
		TemplateName: "price_response_email",
		Recipient:    quote.Email,
		Variables:    variables,
		EntityType:   "quote_response",
		EntityID:     response.ID,
	})
	Dispatch(Intent{
		TemplateName: "price_response_sms",
		Recipient:    quote.Phone,
		Variables:    variables,
		EntityType:   "quote_response",
		EntityID:     response.ID,
	})
}

// NotifyScheduleRequest invites the customer to self-schedule after
// approving a quote.
func NotifyScheduleRequest(quote *models.Quote, response *models.QuoteResponse, businessName string) {
	variables := map[string]string{
		"customer_name":   quote.Name,
		"service_name":    quote.Service.Name,
		"business_name":   orDefault(businessName, "our team"),
		"price":           fmt.Sprintf("%.2f", response.Price),
		"scheduling_link": fmt.Sprintf("%s/schedule/%d", appURL(), response.ID),
	}

	Dispatch(Intent{
		TemplateName: "schedule_request_email",
		Recipient:    quote.Email,
		Variables:    variables,
		EntityType:   "quote_response",
		EntityID:     response.ID,
	})
	Dispatch(Intent{
		TemplateName: "schedule_request_sms",
		Recipient:    quote.Phone,
		Variables:    variables,
		EntityType:   "quote_response",
		EntityID:     response.ID,
	})
}

// NotifyAppointmentConfirmed confirms the booked window to the customer.
func NotifyAppointmentConfirmed(appointment *models.Appointment, quote *models.Quote, businessName string) {
	variables := appointmentVariables(appointment, quote, businessName)
	variables["price"] = fmt.Sprintf("%.2f", appointment.QuoteResponse.Price)

	Dispatch(Intent{
		TemplateName: "appointment_confirmed_email",
		Recipient:    quote.Email,
		Variables:    variables,
		EntityType:   "appointment",
		EntityID:     appointment.ID,
	})
	Dispatch(Intent{
		TemplateName: "appointment_confirmed_sms",
		Recipient:    quote.Phone,
		Variables:    variables,
		EntityType:   "appointment",
		EntityID:     appointment.ID,
	})
}

// NotifyAppointmentReminder reminds the customer of tomorrow's visit.
func NotifyAppointmentReminder(appointment *models.Appointment, quote *models.Quote, businessName string) {
	variables := appointmentVariables(appointment, quote, businessName)

	Dispatch(Intent{
		TemplateName: "appointment_reminder_email",
		Recipient:    quote.Email,
		Variables:    variables,
		EntityType:   "appointment",
		EntityID:     appointment.ID,
	})
	Dispatch(Intent{
		TemplateName: "appointment_reminder_sms",
		Recipient:    quote.Phone,
		Variables:    variables,
		EntityType:   "appointment",
		EntityID:     appointment.ID,
	})
}

func appointmentVariables(appointment *models.Appointment, quote *models.Quote, businessName string) map[string]string {
	return map[string]string{
		"customer_name":  quote.Name,
		"service_name":   quote.Service.Name,
		"scheduled_date": appointment.ScheduledDate.Format("Jan 2, 2006"),
		"start_time":     appointment.StartTime,
		"end_time":       appointment.EndTime,
		"business_name":  orDefault(businessName, "our team"),
		"address":        quote.Address,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
