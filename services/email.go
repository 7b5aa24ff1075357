package services

import (
	"fmt"
	"strings"

	"fashion-shop/config"
	"fashion-shop/models"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(cfg *config.Config) (*EmailService, error) {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	return &EmailService{dialer: dialer, from: from}, nil
}

func (s *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%d - Fashion Shop", order.ID))

	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td style="text-align:center;">%d</td><td style="text-align:right;">%.2f</td></tr>`,
			item.Name, item.Quantity, item.Price,
		))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #1f2937; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
        .total { font-size: 18px; font-weight: bold; text-align: right; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Fashion Shop</div>
        </div>
        <h2 style="color: #333;">Thank you for your order!</h2>
        <p>Your order <strong>#%d</strong> has been received on %s.</p>
        <table>
            <tr><th>Item</th><th style="text-align:center;">Qty</th><th style="text-align:right;">Price</th></tr>
            %s
        </table>
        <p class="total">Total: %.2f</p>
        <div class="footer">
            <p>This is an automated message, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, order.ID, order.CreatedAt.Format("January 2, 2006"), rows.String(), order.Total)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
