// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"homeserve-backend/models"
	"homeserve-backend/utils"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	cron   *cron.Cron
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the reminder job every day at 8 AM.
func (s *ReminderService) StartScheduler() {
	s.cron = cron.New()
	s.cron.AddFunc("0 8 * * *", s.SendUpcomingReminders)
	s.cron.Start()
	log.Println("Booking reminder scheduler started")
}

// StopScheduler stops the cron loop; running jobs finish first.
func (s *ReminderService) StopScheduler() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SendUpcomingReminders notifies every customer with a non-cancelled
// booking scheduled for tomorrow.
func (s *ReminderService) SendUpcomingReminders() {
	log.Println("Starting booking reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1).Format(utils.ScheduleDateLayout)

	var bookings []models.Booking
	if err := s.db.Where("scheduled_date = ? AND status NOT IN ?", tomorrow,
		[]models.BookingStatus{models.BookingCancelled, models.BookingCompleted}).
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch upcoming bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		s.sendReminder(booking)
	}

	log.Println("Booking reminder processing completed")
}

func (s *ReminderService) sendReminder(booking models.Booking) {
	var user models.User
	if err := s.db.First(&user, "id = ?", booking.UserID).Error; err != nil {
		log.Printf("Booking %s: owner not found: %v", booking.ID, err)
		return
	}
	if user.Phone == "" {
		log.Printf("Booking %s: owner %s has no phone, skipping", booking.ID, user.ID)
		return
	}

	message := "Hi " + user.Name + ", a reminder for your HomeServe booking tomorrow at " +
		booking.ScheduledTime + ". Reply to this message if you need to reschedule."

	// Use WhatsApp when the phone is in E.164 format, else SMS
	channel := "sms"
	to := user.Phone
	if strings.HasPrefix(user.Phone, "+") {
		to = "whatsapp:" + user.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", user.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", user.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", user.Phone)
	}

	reminderLog := models.ReminderLog{
		ID:           uuid.New(),
		BookingID:    booking.ID,
		Message:      message,
		Channel:      channel,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for booking %s: %v", booking.ID, err)
	}
}
