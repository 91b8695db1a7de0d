package email

import "fmt"

func verificationEmail(baseURL, to, name, token string) *Email {
	link := fmt.Sprintf("%s/auth/verify?token=%s", baseURL, token)
	return &Email{
		To:      to,
		Subject: "Confirm your email address",
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Welcome! Please confirm your email address by clicking the link below:</p>`+
				`<p><a href="%s">Confirm email</a></p>`+
				`<p>If you did not create an account, you can ignore this message.</p>`,
			name, link),
		TextBody: fmt.Sprintf("Hi %s,\n\nConfirm your email address: %s\n\nIf you did not create an account, ignore this message.\n", name, link),
	}
}

func passwordResetEmail(baseURL, to, name, token string) *Email {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", baseURL, token)
	return &Email{
		To:      to,
		Subject: "Reset your password",
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>We received a request to reset your password. The link below is valid for one hour:</p>`+
				`<p><a href="%s">Reset password</a></p>`+
				`<p>If you did not request a reset, you can ignore this message.</p>`,
			name, link),
		TextBody: fmt.Sprintf("Hi %s,\n\nReset your password (valid for one hour): %s\n\nIf you did not request a reset, ignore this message.\n", name, link),
	}
}

func welcomeEmail(baseURL, to, name string) *Email {
	return &Email{
		To:      to,
		Subject: "Welcome aboard",
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Your email is confirmed and your account is ready.</p>`+
				`<p><a href="%s">Start reading and writing</a></p>`,
			name, baseURL),
		TextBody: fmt.Sprintf("Hi %s,\n\nYour email is confirmed and your account is ready: %s\n", name, baseURL),
	}
}
