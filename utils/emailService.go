package utils

import (
	"fmt"
	"log"

	"aerocert/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendExpiryReminderEmail notifies a certificate holder that their
// certificate expires within the reminder window
func SendExpiryReminderEmail(toName, toEmail, certificateNumber, programTitle string, daysLeft int) error {
	from := mail.NewEmail("AeroCert Compliance", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)

	subject := fmt.Sprintf("Certificate %s expires in %d days", certificateNumber, daysLeft)

	plain := fmt.Sprintf(
		"Hello %s,\n\nYour certificate %s (%s) expires in %d days. Please schedule refresher training before the expiry date to remain compliant.\n\nAeroCert Compliance",
		toName, certificateNumber, programTitle, daysLeft,
	)

	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #1a3c6e;">Certificate expiry reminder</h2>
					<p>Hello %s,</p>
					<p>Your certificate <b>%s</b> for <b>%s</b> expires in <b>%d days</b>.</p>
					<p>Please schedule refresher training before the expiry date to remain compliant.</p>
					<p style="color: #888; font-size: 12px;">AeroCert Compliance</p>
				</div>
			</body>
		</html>`,
		toName, certificateNumber, programTitle, daysLeft,
	)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error while sending expiry reminder to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Failed to send expiry reminder to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send expiry reminder, code: %d", resp.StatusCode)
	}

	log.Println("Expiry reminder sent to", toEmail)
	return nil
}
