package smtp

import (
	"fmt"
	"html/template"
	"strings"
)

// Email subjects used by the auth flow.
const (
	SubjectOTP     = "Your Verification Code"
	SubjectWelcome = "Welcome to Dashboard App!"
)

var otpTmpl = template.Must(template.New("otp").Parse(`<html>
<body style="font-family:Arial,sans-serif;background:#f4f4f7;padding:24px">
  <div style="max-width:480px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px">
    <h1 style="font-size:24px;color:#1a1a2e">Verify Your Email</h1>
    <p style="font-size:15px;color:#333">Hi there! Please use the following verification code to confirm your email address:</p>
    <div style="background:#f0f0f5;border-radius:6px;padding:20px;text-align:center;margin:24px 0">
      <span style="font-size:32px;letter-spacing:6px;font-weight:bold;color:#1a1a2e">{{.Code}}</span>
    </div>
    <p style="font-size:13px;color:#666">This code will expire in 10 minutes. If you didn't request this email, please ignore it.</p>
  </div>
</body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family:Arial,sans-serif;background:#f4f4f7;padding:24px">
  <div style="max-width:480px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px">
    <h1 style="font-size:24px;color:#1a1a2e">Welcome to Dashboard App!</h1>
    <p style="font-size:15px;color:#333">Your email {{.Email}} has been verified. You now have full access to the inventory dashboard:</p>
    <ul style="font-size:14px;color:#333;line-height:1.8">
      <li>Browse and filter the full product catalog</li>
      <li>Analyze categories, pricing and ratings</li>
      <li>Track stock levels and brand performance</li>
    </ul>
    <p style="font-size:13px;color:#666">If this wasn't you, you can safely ignore this email.</p>
  </div>
</body>
</html>`))

// RenderOTPEmail renders the verification-code email body.
func RenderOTPEmail(code string) (string, error) {
	var b strings.Builder
	if err := otpTmpl.Execute(&b, struct{ Code string }{code}); err != nil {
		return "", fmt.Errorf("render otp email: %w", err)
	}
	return b.String(), nil
}

// RenderWelcomeEmail renders the post-verification welcome email body.
func RenderWelcomeEmail(email string) (string, error) {
	var b strings.Builder
	if err := welcomeTmpl.Execute(&b, struct{ Email string }{email}); err != nil {
		return "", fmt.Errorf("render welcome email: %w", err)
	}
	return b.String(), nil
}
