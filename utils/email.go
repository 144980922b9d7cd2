package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// PurchaseConfirmationData feeds the purchase confirmation template.
type PurchaseConfirmationData struct {
	PurchaseCode string
	EventTitle   string
	EventStart   string
	Venue        string
	Seats        string
	GeneralCount int
	TicketCount  int
	TotalAmount  float64
	DetailLink   string
}

// TransferNotificationData feeds the transfer notification template.
type TransferNotificationData struct {
	TicketCode        string
	EventTitle        string
	SeatLabel         string
	NewOwnerName      string
	PreviousOwnerName string
}

func dialerFromEnv() *gomail.Dialer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}

func embedQR(m *gomail.Message, content, cid string) {
	qrBytes, err := GenerateQRCode(content, 400)
	if err != nil {
		log.Printf("QR generation failed for %s: %v", content, err)
		return
	}
	m.Embed("qr_code.png",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrBytes)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type":        {"image/png"},
			"Content-ID":          {"<" + cid + ">"},
			"Content-Disposition": {"inline"},
		}),
	)
}

// SendPurchaseConfirmationEmail sends the confirmation async so the
// purchase response never waits on SMTP. Failures are only logged.
func SendPurchaseConfirmationEmail(to string, data PurchaseConfirmationData) {
	go func() {
		tmpl, err := template.ParseFiles("templates/purchase_confirmation.html")
		if err != nil {
			log.Printf("failed to load purchase email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render purchase email: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your tickets - order "+data.PurchaseCode)
		m.SetBody("text/html", body.String())
		embedQR(m, data.PurchaseCode, "qr_purchase_code")

		if err := dialerFromEnv().DialAndSend(m); err != nil {
			log.Printf("failed to send purchase email to %s: %v", to, err)
		}
	}()
}

// SendTransferNotificationEmail notifies the new owner async.
func SendTransferNotificationEmail(to string, data TransferNotificationData) {
	go func() {
		tmpl, err := template.ParseFiles("templates/ticket_transfer.html")
		if err != nil {
			log.Printf("failed to load transfer email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render transfer email: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "A ticket was transferred to you - "+data.TicketCode)
		m.SetBody("text/html", body.String())
		embedQR(m, data.TicketCode, "qr_ticket_code")

		if err := dialerFromEnv().DialAndSend(m); err != nil {
			log.Printf("failed to send transfer email to %s: %v", to, err)
		}
	}()
}
