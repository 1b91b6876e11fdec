// internal/service/account/email.go
package account

import (
	"fmt"

	"backoffice-service/internal/domain/user"

	"go.uber.org/zap"
)

// Mail delivery is best effort: a failed SMTP round trip must never
// fail the account operation that triggered it.

func (s *Service) sendWelcomeMail(u *user.User) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been created. You can sign in with this email address right away.</p>
	`, u.Name)

	if err := s.email.Send(u.Email, "Welcome", body); err != nil {
		s.logger.Warn("failed to send welcome mail", zap.String("email", u.Email), zap.Error(err))
	}
}

func (s *Service) sendActivationPendingMail(u *user.User) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thanks for registering. An administrator will activate your account shortly;
		we will let you know as soon as you can sign in.</p>
	`, u.Name)

	if err := s.email.Send(u.Email, "Registration received", body); err != nil {
		s.logger.Warn("failed to send activation mail", zap.String("email", u.Email), zap.Error(err))
	}
}

func (s *Service) sendResetMail(u *user.User, link string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password. The link below is valid for 24 hours:</p>
		<p><a class="button" href="%s">Reset password</a></p>
		<p>If you did not request this, you can ignore this message.</p>
	`, u.Name, link)

	if err := s.email.Send(u.Email, "Password reset", body); err != nil {
		s.logger.Warn("failed to send reset mail", zap.String("email", u.Email), zap.Error(err))
	}
}
