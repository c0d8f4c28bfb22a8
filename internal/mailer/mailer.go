package mailer

import (
	"fmt"

	"portal-backend/internal/config"
	"portal-backend/internal/logs"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

type Invitation struct {
	Email            string
	FirstName        string
	CompanyName      string
	InviterFirstName string
	InviterLastName  string
	Token            string
}

// SendInvitation davet e-postasını gönderir. SMTP yapılandırılmamışsa
// gönderim atlanır ve sadece loglanır (dev/test ortamı).
func (m *Mailer) SendInvitation(inv Invitation) error {
	verificationURL := fmt.Sprintf("%s/auth/verify/%s", m.cfg.AppBaseURL, inv.Token)

	if m.cfg.SMTPHost == "" {
		logs.Logger.Warnf("SMTP yapılandırılmamış, %s adresine davet e-postası gönderilmedi (link: %s)", inv.Email, verificationURL)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", inv.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Invitation to Join %s", inv.CompanyName))
	msg.SetBody("text/html", invitationBody(inv, verificationURL))

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("davet e-postası gönderilemedi: %w", err)
	}

	logs.Logger.Infof("Davet e-postası gönderildi: %s", inv.Email)
	return nil
}

func invitationBody(inv Invitation, verificationURL string) string {
	inviter := fmt.Sprintf("%s %s", inv.InviterFirstName, inv.InviterLastName)
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #e0e0e0; border-radius: 10px; overflow: hidden;">
        <div style="background-color: #4CAF50; color: white; padding: 20px;">
          <h2 style="margin: 0;">%s has invited you to join %s</h2>
        </div>
        <div style="padding: 20px;">
          <p style="font-size: 16px;">Hi %s, %s has invited you to join <strong>%s</strong>. Do your best work:</p>
          <ul style="list-style-type: none; padding: 0; font-size: 16px; color: #555;">
            <li style="margin-bottom: 10px;">View your schedule and get notified of changes</li>
            <li style="margin-bottom: 10px;">Access job details and checklists</li>
            <li style="margin-bottom: 10px;">Add notes and photos from the job site</li>
            <li style="margin-bottom: 10px;">Track your work hours</li>
          </ul>
          <p style="font-size: 16px;">Click below to finish your profile setup and join your team!</p>
          <a href="%s" style="display: inline-block; padding: 15px 25px; font-size: 18px; color: white; background-color: #4CAF50; text-decoration: none; border-radius: 5px; margin-top: 20px;">Accept the Invitation</a>
        </div>
      </div>
    `, inviter, inv.CompanyName, inv.FirstName, inviter, inv.CompanyName, verificationURL)
}
