package notifications

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/velcric/scheduler_platform/configs"
	"github.com/velcric/scheduler_platform/database"
	"github.com/velcric/scheduler_platform/models"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	Loc         *time.Location
}

var EmailClient *BrevoService

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
	Attachment  []brevoAttachment   `json:"attachment,omitempty"`
}

func InitEmailService(loc *time.Location) {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		Loc:         loc,
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string, attachments []brevoAttachment) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
		Attachment:  attachments,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: %s", string(bodyBytes))
	}

	return nil
}

func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Println("Email client not initialized, skipping email send.")
		return
	}

	err := EmailClient.send(toEmail, toName, subject, htmlContent, nil)
	if err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return
	}

	log.Printf("✅ Email sent successfully to %s", toEmail)
}

// SendBookingConfirmation emails the booker their confirmation with the
// calendar file attached. Best-effort by contract: the booking is already
// committed, so every failure here is logged and swallowed.
func (s *BrevoService) SendBookingConfirmation(booking *models.Booking, displayHost string) {
	var full models.Booking
	err := database.DB.Preload("Resource").Preload("User").First(&full, "id = ?", booking.ID).Error
	if err != nil {
		log.Printf("🔥 Booking confirmation skipped, could not load booking %s: %v", booking.ID, err)
		return
	}

	startsLocal := full.StartsAtUTC.In(s.Loc)
	endsLocal := full.EndsAtUTC().In(s.Loc)
	body := fmt.Sprintf(
		"<h1>Your appointment is confirmed</h1>"+
			"<p><b>Resource:</b> %s<br>"+
			"<b>Starts (local):</b> %s<br>"+
			"<b>Ends (local):</b> %s</p>"+
			"<p>The attached ICS file can be imported into Google Calendar.</p>",
		full.Resource.Name,
		startsLocal.Format("2006-01-02 15:04"),
		endsLocal.Format("2006-01-02 15:04"),
	)

	icsBytes, err := BuildICS(&full, displayHost)
	if err != nil {
		log.Printf("🔥 Failed to build ICS for booking %s: %v", full.ID, err)
		icsBytes = nil
	}

	var attachments []brevoAttachment
	if icsBytes != nil {
		attachments = append(attachments, brevoAttachment{
			Name:    "appointment.ics",
			Content: base64.StdEncoding.EncodeToString(icsBytes),
		})
	}

	if err := s.send(full.User.Email, full.User.FullName, "Your appointment is confirmed", body, attachments); err != nil {
		log.Printf("🔥 Failed to send booking confirmation to %s: %v", full.User.Email, err)
		return
	}

	log.Printf("✅ Booking confirmation sent for %s", full.ID)
}
