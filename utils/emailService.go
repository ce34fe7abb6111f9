package utils

import (
	"edustream/config"
	"fmt"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Edustream", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid returned %d for email to %s: %s", resp.StatusCode, toEmail, resp.Body)
		return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}
	return nil
}

// SendCourseRemovedNotice tells a course owner that a moderator removed their course
func SendCourseRemovedNotice(toName, toEmail, courseTitle string) {
	body := getEmailTemplate("Course Removed",
		fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your course <b>%s</b> and all of its videos were removed by a platform moderator.</p>
		<p>If you believe this was a mistake, please contact support.</p>`, toName, courseTitle))

	if err := SendEmail(toName, toEmail, "Your course has been removed", body); err != nil {
		log.Printf("Failed to send course removal notice to %s: %v", toEmail, err)
	}
}

// SendVideoRemovedNotice tells a video owner that a moderator removed their video
func SendVideoRemovedNotice(toName, toEmail, videoTitle string) {
	body := getEmailTemplate("Video Removed",
		fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your video <b>%s</b> was removed by a platform moderator.</p>
		<p>If you believe this was a mistake, please contact support.</p>`, toName, videoTitle))

	if err := SendEmail(toName, toEmail, "Your video has been removed", body); err != nil {
		log.Printf("Failed to send video removal notice to %s: %v", toEmail, err)
	}
}

// getEmailTemplate wraps body content in the standard HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B4332; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B4332; line-height: 1.6; }
			.content h2 { color: #1B4332; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDUSTREAM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; %d Edustream. All rights reserved.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent, time.Now().Year())
}
