package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// email request payload for the ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// SendEmail sends an HTML email through the ZeptoMail HTTP API.
func SendEmail(to, toName, subject, body string) error {
	apiURL := os.Getenv("ZEPTO_API_URL") // e.g. https://api.zeptomail.com/v1.1/email
	apiKey := os.Getenv("ZEPTO_API_KEY") // e.g. Zoho-enczapikey xxxxx
	from := os.Getenv("EMAIL_FROM")      // e.g. noreply@lbdevents.com

	if apiURL == "" || apiKey == "" || from == "" {
		return fmt.Errorf("missing required email config")
	}

	payload := emailRequest{
		From: emailAddress{Address: from},
		To: []toRecipient{
			{
				Email: emailWithName{
					Address: to,
					Name:    toName,
				},
			},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	return nil
}

// SendAdminCredentials delivers the one-time credential email to a newly
// created admin. The password is never stored anywhere in plaintext beyond
// this send.
func SendAdminCredentials(log *zap.Logger, email, username, password string) error {
	body := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; color: #333;">
          <h2>Welcome to LBD Events Admin Panel</h2>
          <p>Hello %s,</p>
          <p>Your admin account has been created successfully. Here are your login credentials:</p>
          <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
            <p style="margin: 5px 0;"><strong>Email:</strong> %s</p>
            <p style="margin: 5px 0;"><strong>Password:</strong> %s</p>
          </div>
          <p>Please change your password after your first login for security purposes.</p>
          <p>Best regards,<br>LBD Events Team</p>
        </div>`, username, email, password)

	if err := SendEmail(email, username, "Your Admin Account Credentials", body); err != nil {
		log.Error("failed to send credential email", zap.String("email", email), zap.Error(err))
		return err
	}

	log.Info("credential email sent", zap.String("email", email))
	return nil
}
