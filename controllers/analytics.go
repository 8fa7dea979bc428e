package controllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/redis"
	"github.com/hoodshookups/hoods-app/utils"
)

const summaryCacheKey = "analytics:summary"

type dashboardSummary struct {
	TotalQuotes       int64     `json:"total_quotes"`
	NewCount          int64     `json:"new_count"`
	InReviewCount     int64     `json:"in_review_count"`
	AcceptedCount     int64     `json:"accepted_count"`
	ScheduledCount    int64     `json:"scheduled_count"`
	CompletedCount    int64     `json:"completed_count"`
	CancelledCount    int64     `json:"cancelled_count"`
	TotalAppointments int64     `json:"total_appointments"`
	UpcomingCount     int64     `json:"upcoming_count"`
	TotalBusinesses   int64     `json:"total_businesses"`
	TotalRevenue      float64   `json:"total_revenue"`
	NotificationsSent int64     `json:"notifications_sent"`
	LastUpdated       time.Time `json:"last_updated"`
}

// GetDashboardSummary aggregates headline counts for the admin dashboard.
// Results are cached in redis for a minute.
func GetDashboardSummary(c *fiber.Ctx) error {
	if cached := redis.CacheGet(summaryCacheKey); cached != "" {
		var summary dashboardSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return c.JSON(summary)
		}
	}

	var summary dashboardSummary

	db.DB.Model(&models.Quote{}).Count(&summary.TotalQuotes)
	db.DB.Model(&models.Quote{}).Where("status = ?", models.QuoteNew).Count(&summary.NewCount)
	db.DB.Model(&models.Quote{}).Where("status = ?", models.QuoteInReview).Count(&summary.InReviewCount)
	db.DB.Model(&models.Quote{}).Where("status = ?", models.QuoteAccepted).Count(&summary.AcceptedCount)
	db.DB.Model(&models.Quote{}).Where("status = ?", models.QuoteScheduled).Count(&summary.ScheduledCount)
	db.DB.Model(&models.Quote{}).Where("status = ?", models.QuoteCompleted).Count(&summary.CompletedCount)
	db.DB.Model(&models.Quote{}).Where("status IN ?", []models.QuoteStatus{models.QuoteCancelled, models.QuoteClosed}).
		Count(&summary.CancelledCount)

	db.DB.Model(&models.Appointment{}).Count(&summary.TotalAppointments)
	db.DB.Model(&models.Appointment{}).
		Where("status = ? AND scheduled_date >= ?", models.StatusConfirmed, time.Now().Format("2006-01-02")).
		Count(&summary.UpcomingCount)

	db.DB.Model(&models.Business{}).Count(&summary.TotalBusinesses)

	type revenueResult struct {
		TotalRevenue float64
	}
	var revenue revenueResult
	db.DB.Table("quote_responses").
		Joins("JOIN quotes ON quotes.id = quote_responses.quote_id").
		Where("quote_responses.status = ? AND quotes.status = ?", models.ResponseApproved, models.QuoteCompleted).
		Select("COALESCE(SUM(quote_responses.price), 0) as total_revenue").
		Scan(&revenue)
	summary.TotalRevenue = revenue.TotalRevenue

	db.DB.Model(&models.NotificationLog{}).Where("status = ?", models.NotificationSent).
		Count(&summary.NotificationsSent)

	summary.LastUpdated = time.Now()

	if encoded, err := json.Marshal(summary); err == nil {
		redis.CacheSet(summaryCacheKey, string(encoded), time.Minute)
	}
	return c.JSON(summary)
}

// quoteFunnel counts quotes cumulatively through the lifecycle: a
// completed quote was also responded to, accepted and scheduled.
type quoteFunnel struct {
	Total     int64 `json:"total"`
	Responded int64 `json:"responded"`
	Accepted  int64 `json:"accepted"`
	Scheduled int64 `json:"scheduled"`
	Completed int64 `json:"completed"`
}

func buildQuoteFunnel(total int64, counts map[models.QuoteStatus]int64) quoteFunnel {
	f := quoteFunnel{Total: total}
	f.Completed = counts[models.QuoteCompleted]
	f.Scheduled = f.Completed + counts[models.QuoteScheduled]
	f.Accepted = f.Scheduled + counts[models.QuoteAccepted]
	f.Responded = f.Accepted + counts[models.QuoteInReview]
	return f
}

// percent returns part/whole as a percentage rounded to one decimal, 0
// when the denominator is empty.
func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func (f quoteFunnel) rates() fiber.Map {
	return fiber.Map{
		"response_rate":      percent(f.Responded, f.Total),
		"acceptance_rate":    percent(f.Accepted, f.Responded),
		"scheduling_rate":    percent(f.Scheduled, f.Accepted),
		"completion_rate":    percent(f.Completed, f.Scheduled),
		"overall_conversion": percent(f.Completed, f.Total),
	}
}

// GetQuoteStats breaks quotes down by status, service, day and hour within
// a date range, with the conversion funnel on top.
func GetQuoteStats(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Quote{})
	if start := c.Query("start"); start != "" {
		query = query.Where("quotes.created_at >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		query = query.Where("quotes.created_at <= ?", end)
	}

	var total int64
	query.Session(&gorm.Session{}).Count(&total)

	type statusCount struct {
		Status models.QuoteStatus `json:"status"`
		Count  int64              `json:"count"`
	}
	var byStatus []statusCount
	query.Session(&gorm.Session{}).Select("status, COUNT(*) as count").Group("status").Scan(&byStatus)

	statusMap := make(map[models.QuoteStatus]int64, len(byStatus))
	for _, row := range byStatus {
		statusMap[row.Status] = row.Count
	}
	funnel := buildQuoteFunnel(total, statusMap)

	type serviceCount struct {
		ServiceName string `json:"service_name"`
		Count       int64  `json:"count"`
		Completed   int64  `json:"completed"`
		Converted   int64  `json:"converted"`
	}
	var byService []serviceCount
	query.Session(&gorm.Session{}).
		Joins("JOIN services ON services.id = quotes.service_id").
		Select(`services.name as service_name, COUNT(*) as count,
			COUNT(CASE WHEN quotes.status = 'completed' THEN 1 END) as completed,
			COUNT(CASE WHEN quotes.status IN ('accepted', 'scheduled', 'completed') THEN 1 END) as converted`).
		Group("services.name").
		Order("count DESC").
		Scan(&byService)

	days := c.QueryInt("days", 30)
	if days <= 0 {
		days = 30
	}

	type dayCount struct {
		Date      string `json:"date"`
		Count     int64  `json:"count"`
		Completed int64  `json:"completed"`
	}
	var byDay []dayCount
	db.DB.Model(&models.Quote{}).
		Where("created_at >= CURRENT_DATE - CAST(? AS integer)", days).
		Select(`DATE(created_at) as date, COUNT(*) as count,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed`).
		Group("DATE(created_at)").
		Order("date").
		Scan(&byDay)

	type hourCount struct {
		Hour  int   `json:"hour"`
		Count int64 `json:"count"`
	}
	var byHour []hourCount
	db.DB.Model(&models.Quote{}).
		Where("created_at >= CURRENT_DATE - CAST(? AS integer)", days).
		Select("CAST(EXTRACT(HOUR FROM created_at) AS integer) as hour, COUNT(*) as count").
		Group("EXTRACT(HOUR FROM created_at)").
		Order("hour").
		Scan(&byHour)

	return c.JSON(fiber.Map{
		"total":            total,
		"by_status":        byStatus,
		"by_service":       byService,
		"by_day":           byDay,
		"by_hour":          byHour,
		"funnel":           funnel,
		"conversion_rates": funnel.rates(),
	})
}

// GetAppointmentStats breaks appointments down by status and business, with
// completion/cancellation/no-show rates and the next upcoming bookings.
func GetAppointmentStats(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Appointment{})
	if start := c.Query("start"); start != "" {
		query = query.Where("appointments.scheduled_date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		query = query.Where("appointments.scheduled_date <= ?", end)
	}

	var total int64
	query.Session(&gorm.Session{}).Count(&total)

	type statusCount struct {
		Status models.AppointmentStatus `json:"status"`
		Count  int64                    `json:"count"`
	}
	var byStatus []statusCount
	query.Session(&gorm.Session{}).Select("status, COUNT(*) as count").Group("status").Scan(&byStatus)

	statusMap := make(map[models.AppointmentStatus]int64, len(byStatus))
	for _, row := range byStatus {
		statusMap[row.Status] = row.Count
	}

	type businessCount struct {
		BusinessID   uint   `json:"business_id"`
		BusinessName string `json:"business_name"`
		Count        int64  `json:"count"`
		Completed    int64  `json:"completed"`
		Cancelled    int64  `json:"cancelled"`
		NoShows      int64  `json:"no_shows"`
	}
	var byBusiness []businessCount
	query.Session(&gorm.Session{}).
		Joins("JOIN businesses ON businesses.id = appointments.business_id").
		Select(`businesses.id as business_id, businesses.name as business_name, COUNT(*) as count,
			COUNT(CASE WHEN appointments.status = 'completed' THEN 1 END) as completed,
			COUNT(CASE WHEN appointments.status = 'cancelled' THEN 1 END) as cancelled,
			COUNT(CASE WHEN appointments.status = 'no_show' THEN 1 END) as no_shows`).
		Group("businesses.id, businesses.name").
		Order("count DESC").
		Scan(&byBusiness)

	var upcoming []models.Appointment
	db.DB.Preload("Quote.Service").Preload("Business").
		Where("scheduled_date >= ? AND status IN ?",
			time.Now().Format("2006-01-02"),
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("scheduled_date ASC, start_time ASC").
		Limit(10).
		Find(&upcoming)

	return c.JSON(fiber.Map{
		"total":       total,
		"by_status":   byStatus,
		"by_business": byBusiness,
		"upcoming":    upcoming,
		"rates": fiber.Map{
			"completion_rate":   percent(statusMap[models.StatusCompleted], total),
			"cancellation_rate": percent(statusMap[models.StatusCancelled], total),
			"no_show_rate":      percent(statusMap[models.StatusNoShow], total),
		},
	})
}

// GetRevenueStats aggregates quoted and approved dollar values overall, per
// service and per month.
func GetRevenueStats(c *fiber.Ctx) error {
	query := db.DB.Table("quote_responses").Where("quote_responses.deleted_at IS NULL")
	if start := c.Query("start"); start != "" {
		query = query.Where("quote_responses.created_at >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		query = query.Where("quote_responses.created_at <= ?", end)
	}

	type pricingSummary struct {
		TotalQuotes   int64   `json:"total_quotes"`
		TotalQuoted   float64 `json:"total_quoted"`
		AvgPrice      float64 `json:"avg_price"`
		MinPrice      float64 `json:"min_price"`
		MaxPrice      float64 `json:"max_price"`
		ApprovedValue float64 `json:"approved_value"`
		ApprovedCount int64   `json:"approved_count"`
	}
	var summary pricingSummary
	query.Session(&gorm.Session{}).
		Select(`COUNT(*) as total_quotes,
			COALESCE(SUM(price), 0) as total_quoted,
			COALESCE(AVG(price), 0) as avg_price,
			COALESCE(MIN(price), 0) as min_price,
			COALESCE(MAX(price), 0) as max_price,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN price ELSE 0 END), 0) as approved_value,
			COUNT(CASE WHEN status = 'approved' THEN 1 END) as approved_count`).
		Scan(&summary)

	type serviceRevenue struct {
		ServiceName   string  `json:"service_name"`
		QuoteCount    int64   `json:"quote_count"`
		TotalQuoted   float64 `json:"total_quoted"`
		AvgPrice      float64 `json:"avg_price"`
		ApprovedValue float64 `json:"approved_value"`
	}
	var byService []serviceRevenue
	query.Session(&gorm.Session{}).
		Joins("JOIN quotes ON quotes.id = quote_responses.quote_id").
		Joins("JOIN services ON services.id = quotes.service_id").
		Select(`services.name as service_name, COUNT(*) as quote_count,
			COALESCE(SUM(quote_responses.price), 0) as total_quoted,
			COALESCE(AVG(quote_responses.price), 0) as avg_price,
			COALESCE(SUM(CASE WHEN quote_responses.status = 'approved' THEN quote_responses.price ELSE 0 END), 0) as approved_value`).
		Group("services.name").
		Order("approved_value DESC").
		Scan(&byService)

	type monthlyRevenue struct {
		Month   string  `json:"month"`
		Revenue float64 `json:"revenue"`
		Deals   int64   `json:"deals"`
	}
	var monthly []monthlyRevenue
	db.DB.Table("quote_responses").
		Where("deleted_at IS NULL AND created_at >= CURRENT_DATE - INTERVAL '12 months'").
		Select(`TO_CHAR(created_at, 'YYYY-MM') as month,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN price ELSE 0 END), 0) as revenue,
			COUNT(CASE WHEN status = 'approved' THEN 1 END) as deals`).
		Group("TO_CHAR(created_at, 'YYYY-MM')").
		Order("month").
		Scan(&monthly)

	return c.JSON(fiber.Map{
		"summary":       summary,
		"approval_rate": percent(summary.ApprovedCount, summary.TotalQuotes),
		"by_service":    byService,
		"monthly":       monthly,
	})
}

// GetCustomerStats counts distinct lead customers, splits new vs returning
// and surfaces the heaviest requesters.
func GetCustomerStats(c *fiber.Ctx) error {
	var total int64
	db.DB.Model(&models.Quote{}).Distinct("user_id").Count(&total)

	type typeCount struct {
		CustomerType string `json:"customer_type"`
		Count        int64  `json:"count"`
	}
	var byType []typeCount
	db.DB.Raw(`
		SELECT CASE WHEN quote_count = 1 THEN 'new' ELSE 'returning' END as customer_type,
		       COUNT(*) as count
		FROM (
			SELECT user_id, COUNT(*) as quote_count
			FROM quotes
			WHERE deleted_at IS NULL
			GROUP BY user_id
		) customer_quotes
		GROUP BY CASE WHEN quote_count = 1 THEN 'new' ELSE 'returning' END
	`).Scan(&byType)

	type topCustomer struct {
		UserID         uint      `json:"user_id"`
		Name           string    `json:"name"`
		Email          string    `json:"email"`
		Phone          string    `json:"phone"`
		QuoteCount     int64     `json:"quote_count"`
		CompletedCount int64     `json:"completed_count"`
		LastQuoteDate  time.Time `json:"last_quote_date"`
	}
	var topCustomers []topCustomer
	db.DB.Model(&models.Quote{}).
		Select(`user_id, name, email, phone, COUNT(*) as quote_count,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed_count,
			MAX(created_at) as last_quote_date`).
		Group("user_id, name, email, phone").
		Order("quote_count DESC").
		Limit(20).
		Scan(&topCustomers)

	return c.JSON(fiber.Map{
		"total":         total,
		"by_type":       byType,
		"top_customers": topCustomers,
	})
}

// GetNotificationStats aggregates the delivery log by channel and template
// and surfaces the latest failures.
func GetNotificationStats(c *fiber.Ctx) error {
	query := db.DB.Model(&models.NotificationLog{})
	if start := c.Query("start"); start != "" {
		query = query.Where("created_at >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		query = query.Where("created_at <= ?", end)
	}

	type channelCount struct {
		Type   string `json:"type"`
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byChannel []channelCount
	query.Session(&gorm.Session{}).
		Select("type, status, COUNT(*) as count").
		Group("type, status").
		Order("type, status").
		Scan(&byChannel)

	type templateCount struct {
		TemplateName string `json:"template_name"`
		Type         string `json:"type"`
		Count        int64  `json:"count"`
		Sent         int64  `json:"sent"`
		Failed       int64  `json:"failed"`
	}
	var byTemplate []templateCount
	query.Session(&gorm.Session{}).
		Joins("LEFT JOIN notification_templates ON notification_templates.id = notification_logs.template_id").
		Select(`COALESCE(notification_templates.name, 'unknown') as template_name,
			notification_logs.type, COUNT(*) as count,
			COUNT(CASE WHEN notification_logs.status = 'sent' THEN 1 END) as sent,
			COUNT(CASE WHEN notification_logs.status = 'failed' THEN 1 END) as failed`).
		Group("notification_templates.name, notification_logs.type").
		Order("count DESC").
		Scan(&byTemplate)

	var recentFailures []models.NotificationLog
	db.DB.Where("status = ?", models.NotificationFailed).
		Order("created_at DESC").
		Limit(10).
		Find(&recentFailures)

	return c.JSON(fiber.Map{
		"by_channel":      byChannel,
		"by_template":     byTemplate,
		"recent_failures": recentFailures,
	})
}

// GetBusinessStats summarizes the contractor roster and ranks businesses by
// approved revenue through their appointments.
func GetBusinessStats(c *fiber.Ctx) error {
	var total, acceptingLeads int64
	db.DB.Model(&models.Business{}).Count(&total)
	db.DB.Model(&models.Business{}).Where("accepts_leads = true").Count(&acceptingLeads)

	type categoryCount struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	var byCategory []categoryCount
	db.DB.Model(&models.Business{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&byCategory)

	type businessPerformance struct {
		BusinessID        uint    `json:"business_id"`
		BusinessName      string  `json:"business_name"`
		TotalAppointments int64   `json:"total_appointments"`
		Completed         int64   `json:"completed"`
		TotalRevenue      float64 `json:"total_revenue"`
	}
	var topPerformers []businessPerformance
	db.DB.Model(&models.Business{}).
		Joins("LEFT JOIN appointments ON appointments.business_id = businesses.id AND appointments.deleted_at IS NULL").
		Joins("LEFT JOIN quote_responses ON quote_responses.id = appointments.quote_response_id").
		Select(`businesses.id as business_id, businesses.name as business_name,
			COUNT(appointments.id) as total_appointments,
			COUNT(CASE WHEN appointments.status = 'completed' THEN 1 END) as completed,
			COALESCE(SUM(CASE WHEN quote_responses.status = 'approved' THEN quote_responses.price END), 0) as total_revenue`).
		Group("businesses.id, businesses.name").
		Order("total_revenue DESC").
		Limit(10).
		Scan(&topPerformers)

	return c.JSON(fiber.Map{
		"summary": fiber.Map{
			"total":           total,
			"accepting_leads": acceptingLeads,
		},
		"by_category":    byCategory,
		"top_performers": topPerformers,
	})
}

// ExportCSV streams quotes or appointments as a CSV download.
func ExportCSV(c *fiber.Ctx) error {
	exportType := c.Query("type", "quotes")

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case "quotes":
		var quotes []models.Quote
		if err := db.DB.Preload("Service").Order("created_at ASC").Find(&quotes).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to fetch quotes",
				Error:   err.Error(),
			})
		}
		writer.Write(quoteCSVHeader)
		for _, quote := range quotes {
			writer.Write(quoteCSVRow(&quote))
		}
	case "appointments":
		var appointments []models.Appointment
		if err := db.DB.Preload("Quote").Preload("Business").Order("scheduled_date ASC").Find(&appointments).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to fetch appointments",
				Error:   err.Error(),
			})
		}
		writer.Write(appointmentCSVHeader)
		for _, appointment := range appointments {
			writer.Write(appointmentCSVRow(&appointment))
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "type must be quotes or appointments",
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to write CSV",
			Error:   err.Error(),
		})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.csv", exportType, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

var quoteCSVHeader = []string{"id", "created_at", "name", "phone", "email", "address", "service", "status", "message"}

func quoteCSVRow(quote *models.Quote) []string {
	return []string{
		fmt.Sprintf("%d", quote.ID),
		quote.CreatedAt.Format(time.RFC3339),
		quote.Name,
		quote.Phone,
		quote.Email,
		quote.Address,
		quote.Service.Name,
		string(quote.Status),
		quote.Message,
	}
}

var appointmentCSVHeader = []string{"id", "scheduled_date", "start_time", "end_time", "status", "customer", "business", "quote_id"}

func appointmentCSVRow(appointment *models.Appointment) []string {
	businessName := ""
	if appointment.Business != nil {
		businessName = appointment.Business.Name
	}
	return []string{
		fmt.Sprintf("%d", appointment.ID),
		appointment.ScheduledDate.Format("2006-01-02"),
		appointment.StartTime,
		appointment.EndTime,
		string(appointment.Status),
		appointment.Quote.Name,
		businessName,
		fmt.Sprintf("%d", appointment.QuoteID),
	}
}

// GetActivityLog lists audit entries, filterable by entity type.
func GetActivityLog(c *fiber.Ctx) error {
	query := db.DB.Order("created_at DESC").Limit(200)
	if entityType := c.Query("entity_type"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var entries []models.ActivityLog
	if err := query.Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch activity log",
			Error:   err.Error(),
		})
	}
	return c.JSON(entries)
}

// GetNotificationLog lists recent notification attempts for admin review.
func GetNotificationLog(c *fiber.Ctx) error {
	query := db.DB.Order("created_at DESC").Limit(200)
	if entityType := c.Query("entity_type"); entityType != "" {
		query = query.Where("related_entity_type = ?", entityType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var entries []models.NotificationLog
	if err := query.Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch notification log",
			Error:   err.Error(),
		})
	}
	return c.JSON(entries)
}
