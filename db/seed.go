package db

import (
	"log"
	"os"

	"github.com/hoodshookups/hoods-app/models"
)

// Seed installs the default admin account, service catalog and notification
// templates. Safe to run repeatedly: existing rows are left alone.
func Seed() {
	seedAdmin()
	seedServices()
	seedTemplates()
	log.Println("✅ Seed data applied successfully!")
}

func seedAdmin() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("ADMIN_EMAIL not set, skipping admin seed")
		return
	}

	normalized := models.NormalizeContact(models.ContactTypeEmail, adminEmail)
	var existing models.ContactMethod
	if DB.Where("type = ? AND normalized_value = ?", models.ContactTypeEmail, normalized).First(&existing).RowsAffected > 0 {
		return
	}

	admin := models.User{Name: "Admin", Role: models.RoleAdmin}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	contact := models.ContactMethod{
		UserID:          admin.ID,
		Type:            models.ContactTypeEmail,
		Value:           adminEmail,
		NormalizedValue: normalized,
		IsPrimary:       true,
	}
	if err := DB.Create(&contact).Error; err != nil {
		log.Printf("Failed to seed admin contact: %v", err)
	}
}

func seedServices() {
	services := []models.Service{
		{Name: "Lawn Care", Slug: "lawn-care", Description: "Mowing, edging and seasonal cleanup"},
		{Name: "Gutter Cleaning", Slug: "gutter-cleaning", Description: "Gutter and downspout cleaning"},
		{Name: "Pressure Washing", Slug: "pressure-washing", Description: "Driveways, siding and decks"},
		{Name: "Handyman", Slug: "handyman", Description: "Small repairs around the house"},
		{Name: "Junk Removal", Slug: "junk-removal", Description: "Haul-away for furniture and debris"},
		{Name: "Snow Removal", Slug: "snow-removal", Description: "Driveway and walkway clearing"},
	}

	for _, service := range services {
		var existing models.Service
		if DB.Where("slug = ?", service.Slug).First(&existing).RowsAffected == 0 {
			DB.Create(&service)
		}
	}
}

func seedTemplates() {
	templates := []models.NotificationTemplate{
		{
			Name:    "quote_received_email",
			Type:    "email",
			Subject: "We got your request, {{customer_name}}!",
			Body:    "Hi {{customer_name}},\n\nThanks for requesting {{service_name}} at {{address}}. We'll review your request and get back to you with a price shortly.\n\nYour note: {{message}}",
		},
		{
			Name: "quote_received_sms",
			Type: "sms",
			Body: "Hoods Hookups: thanks {{customer_name}}! We received your {{service_name}} request and will text you a price soon.",
		},
		{
			Name:    "new_lead_admin_email",
			Type:    "email",
			Subject: "New lead: {{service_name}} for {{customer_name}}",
			Body:    "New lead received.\n\nCustomer: {{customer_name}}\nPhone: {{phone}}\nEmail: {{email}}\nService: {{service_name}}\nAddress: {{address}}\nMessage: {{message}}\n\nReview: {{admin_link}}",
		},
		{
			Name: "new_lead_admin_sms",
			Type: "sms",
			Body: "New lead: {{service_name}} for {{customer_name}} at {{address}}. {{admin_link}}",
		},
		{
			Name:    "price_response_email",
			Type:    "email",
			Subject: "Your {{service_name}} quote: ${{price}}",
			Body:    "Hi {{customer_name}},\n\nYour quote for {{service_name}} is ${{price}}. {{price_description}}\n\n{{message}}\n\nValid until {{valid_until}}.\n\nApprove here: {{approval_link}}",
		},
		{
			Name: "price_response_sms",
			Type: "sms",
			Body: "Hoods Hookups: your {{service_name}} quote is ${{price}}, valid until {{valid_until}}. Approve: {{approval_link}}",
		},
		{
			Name:    "schedule_request_email",
			Type:    "email",
			Subject: "Pick a time for your {{service_name}}",
			Body:    "Hi {{customer_name}},\n\nGreat news, your ${{price}} quote with {{business_name}} is approved. Pick a time that works for you:\n\n{{scheduling_link}}",
		},
		{
			Name: "schedule_request_sms",
			Type: "sms",
			Body: "Hoods Hookups: your quote is approved! Schedule your {{service_name}} here: {{scheduling_link}}",
		},
		{
			Name:    "appointment_confirmed_email",
			Type:    "email",
			Subject: "Confirmed: {{service_name}} on {{scheduled_date}}",
			Body:    "Hi {{customer_name}},\n\nYour {{service_name}} with {{business_name}} is confirmed for {{scheduled_date}}, {{start_time}}-{{end_time}} at {{address}}.\n\nPrice: {{price}}",
		},
		{
			Name: "appointment_confirmed_sms",
			Type: "sms",
			Body: "Hoods Hookups: confirmed! {{service_name}} on {{scheduled_date}} {{start_time}}-{{end_time}} with {{business_name}}.",
		},
		{
			Name:    "appointment_reminder_email",
			Type:    "email",
			Subject: "Reminder: {{service_name}} tomorrow",
			Body:    "Hi {{customer_name}},\n\nA reminder that {{business_name}} is scheduled for {{service_name}} on {{scheduled_date}}, {{start_time}}-{{end_time}} at {{address}}.",
		},
		{
			Name: "appointment_reminder_sms",
			Type: "sms",
			Body: "Hoods Hookups reminder: {{service_name}} tomorrow {{start_time}}-{{end_time}} with {{business_name}}.",
		},
	}

	for _, template := range templates {
		var existing models.NotificationTemplate
		if DB.Where("name = ?", template.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&template)
		}
	}
}
