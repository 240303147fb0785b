package service

import (
	"net/url"
	"strings"

	"github.com/MKhiriev/go-ledger/internal/mail"
	"github.com/MKhiriev/go-ledger/models"
)

const (
	verificationSubject  = "Verify your email"
	passwordResetSubject = "Reset your Password"
)

func emailVerifyLink(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/auth/email-verify?token=" + url.QueryEscape(token)
}

func passwordResetLink(publicURL string, link models.PasswordResetLink) string {
	return strings.TrimRight(publicURL, "/") + "/auth/password-reset/" +
		url.PathEscape(link.UIDB64) + "/" + url.PathEscape(link.Token)
}

func verificationMessage(user models.User, link string) mail.Message {
	return mail.Message{
		To:      user.Email,
		Subject: verificationSubject,
		Body:    "Hi " + user.FirstName + " " + user.LastName + " Use link below to verify your email \n" + link,
	}
}

func passwordResetMessage(user models.User, link string) mail.Message {
	return mail.Message{
		To:      user.Email,
		Subject: passwordResetSubject,
		Body:    "Hello, \n Use link below to reset your password \n" + link,
	}
}
