package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, name string) error
	SendBookingConfirmation(email, name, address string, start, end time.Time, totalCost float64, receiptPath string) error
	SendReceiptEmail(email, name string, totalCost float64, receiptPath string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to ParkEzy!")

	body := fmt.Sprintf(`
		<h2>Welcome to ParkEzy, %s!</h2>
		<p>Your account has been created. Find a spot, book it, and drive in.</p>
		<p>Best regards,<br>The ParkEzy Team</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

func (s *emailService) SendBookingConfirmation(email, name, address string, start, end time.Time, totalCost float64, receiptPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your ParkEzy booking is confirmed")

	body := fmt.Sprintf(`
		<h3>Booking confirmed</h3>
		<p>Hi %s, your parking at <strong>%s</strong> is booked.</p>
		<p>%s &mdash; %s</p>
		<p>Total: ₹%.2f</p>
		<p>Your access code has been sent by SMS. Enter it at the spot to start your session.</p>
	`, name, address,
		start.Format("02 Jan 2006 15:04"),
		end.Format("02 Jan 2006 15:04"),
		totalCost,
	)

	m.SetBody("text/html", body)
	if receiptPath != "" {
		m.Attach(receiptPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}

	return nil
}

func (s *emailService) SendReceiptEmail(email, name string, totalCost float64, receiptPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your ParkEzy receipt")

	body := fmt.Sprintf(`
		<h3>Session complete</h3>
		<p>Thanks for parking with us, %s.</p>
		<p>Total charged: ₹%.2f</p>
		<p>Your receipt is attached.</p>
	`, name, totalCost)

	m.SetBody("text/html", body)
	if receiptPath != "" {
		m.Attach(receiptPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	return nil
}
