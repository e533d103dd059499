package mailer

import (
	"context"
	"fmt"

	"cashtrackr/internal/logger"
)

// AuthEmail composes and sends the account-lifecycle emails.
type AuthEmail struct {
	mailer Mailer
	from   string
}

// NewAuthEmail creates an AuthEmail sending through the given Mailer.
func NewAuthEmail(mailer Mailer, from string) *AuthEmail {
	return &AuthEmail{mailer: mailer, from: from}
}

// SendConfirmationEmail mails the 6-digit confirmation code to a new account.
func (a *AuthEmail) SendConfirmationEmail(ctx context.Context, name, email, code string) error {
	msg := Message{
		From:    a.from,
		To:      email,
		Subject: "CashTrackr - Confirm your account",
		HTML: fmt.Sprintf(`
        <p>Hola: %s, you have created an account in CashTrackr, it's almost done</p>
        <p>Visit the following link: <a></a></p>
        <a href="#">Confirm account</a>
        <p>enter the code: <b>%s</b></p>
        `, name, code),
	}

	if err := a.mailer.Send(ctx, msg); err != nil {
		return err
	}
	logger.Get().Infow("confirmation email sent", "to", email)
	return nil
}

// SendPasswordResetToken mails the password-reset code.
func (a *AuthEmail) SendPasswordResetToken(ctx context.Context, name, email, code string) error {
	msg := Message{
		From:    a.from,
		To:      email,
		Subject: "CashTrackr - Reset your Password",
		HTML: fmt.Sprintf(`
        <p>Hola: %s, you have requested to change your password </p>
        <p>Visit the following link: <a></a></p>
        <a href="#">Reset Password</a>
        <p>enter the code: <b>%s</b></p>
        `, name, code),
	}

	if err := a.mailer.Send(ctx, msg); err != nil {
		return err
	}
	logger.Get().Infow("password reset email sent", "to", email)
	return nil
}
