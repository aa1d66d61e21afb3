package authUtils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

const defaultSender = "citypulsead@gmail.com"

// SenderForDepartment resolves the outbound SMTP identity for a department.
// Each department may carry its own credential pair (SMTP_USER_ROADS etc.);
// anything unset falls back to the default SMTP_USER/SMTP_PASS pair.
func SenderForDepartment(department string) (user, pass string) {
	switch strings.ToLower(department) {
	case "main", "":
		user = os.Getenv("SMTP_USER_MAIN")
		pass = os.Getenv("SMTP_PASS_MAIN")
		if user == "" {
			user = defaultSender
		}
	case "roads":
		user = os.Getenv("SMTP_USER_ROADS")
		pass = os.Getenv("SMTP_PASS_ROADS")
	case "water":
		user = os.Getenv("SMTP_USER_WATER")
		pass = os.Getenv("SMTP_PASS_WATER")
	case "environment":
		user = os.Getenv("SMTP_USER_ENVIRONMENT")
		pass = os.Getenv("SMTP_PASS_ENVIRONMENT")
	}

	if user == "" {
		user = os.Getenv("SMTP_USER")
	}
	if pass == "" {
		pass = os.Getenv("SMTP_PASS")
	}
	if user == "" {
		user = defaultSender
	}
	return user, pass
}

// BroadcastEmail sends a notification to every recipient as a single BCC
// batch from the department's sender identity. Without a credential pair it
// degrades to a logged mock send instead of failing.
func BroadcastEmail(department, title, message string, recipients []string) error {
	if len(recipients) == 0 {
		log.Println("No citizens found to email.")
		return nil
	}

	smtpUser, smtpPass := SenderForDepartment(department)
	if smtpUser == "" || smtpPass == "" {
		log.Printf("[MOCK EMAIL] From: %s (%s) | To: %d citizens | Title: %s | Message: %s",
			department, smtpUser, len(recipients), title, message)
		return nil
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", smtpUser, fmt.Sprintf("CityPulse %s Alerts", department))
	m.SetHeader("Bcc", recipients...)
	m.SetHeader("Subject", "CityPulse Alert: "+title)
	m.SetBody("text/plain", fmt.Sprintf("%s\n\n- CityPulse %s Administration", message, department))
	m.AddAlternative("text/html", fmt.Sprintf("<div><p>%s</p><br/><p>- CityPulse %s Administration</p></div>", message, department))

	d := gomail.NewDialer(host, port, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		return err
	}

	log.Printf("Successfully sent email alert from %s to %d citizens.", smtpUser, len(recipients))
	return nil
}
