// Package mailer renders and sends the registration confirmation email.
package mailer

import "fmt"

// Content is a rendered email: subject plus HTML and plain-text alternatives.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

const htmlTemplate = `<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 10px; text-align: center; }
        .content { padding: 20px; }
        .footer { background-color: #f1f1f1; padding: 10px; text-align: center; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Registration Confirmation</h1>
        </div>
        <div class="content">
            <p>Dear %s %s,</p>
            <p>Thank you for registering for our <strong>%s</strong> event!</p>
            <p>Your registration has been confirmed and we look forward to seeing you there.</p>
            <p>Event details will be sent to you in a separate email closer to the date.</p>
            <p>If you have any questions, please don't hesitate to contact us.</p>
            <p>Best regards,<br>The Event Team</p>
        </div>
        <div class="footer">
            <p>This is an automated message, please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>`

const textTemplate = `Dear %s %s,

Thank you for registering for our %s event!

Your registration has been confirmed and we look forward to seeing you there.

Event details will be sent to you in a separate email closer to the date.

If you have any questions, please don't hesitate to contact us.

Best regards,
The Event Team

This is an automated message, please do not reply to this email.`

// RenderConfirmation builds the confirmation email for a booking. Direct
// string interpolation, no template engine; field values are not
// HTML-escaped, matching the published email content.
func RenderConfirmation(name, surname, category string) Content {
	return Content{
		Subject: "Registration Confirmation: " + category,
		HTML:    fmt.Sprintf(htmlTemplate, name, surname, category),
		Text:    fmt.Sprintf(textTemplate, name, surname, category),
	}
}
