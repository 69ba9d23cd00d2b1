package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var verificationCode = template.Must(template.New("verification_code").Parse(`
<p>Thank you for registering.</p>
<p>Your verification code is:</p>
<h2>{{.Code}}</h2>
<p>This code will expire in {{.ExpiresMinutes}} minutes.</p>
`))

// Render returns subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	switch name {
	case "verification_code":
		var buf bytes.Buffer
		if err := verificationCode.Execute(&buf, data); err != nil {
			return "", "", err
		}
		return "Your Email Verification Code", buf.String(), nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
}
