package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// TicketEmailData carries everything the ticket email shows. Amount is in
// rupees, QRLink is the self-serve ticket page with the encoded payload.
type TicketEmailData struct {
	Name      string
	Zone      string
	Amount    int
	QRLink    string
	IsRahasya bool

	// derived presentation fields, filled in by RenderTicketEmail
	Accent    string
	EventName string
	Tagline   string
}

const (
	amisparkAccent = "#8a2be2"
	rahasyaAccent  = "#dc2626"
)

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#0f0c29;font-family:'Courier New',monospace;color:#ffffff;">
  <div style="max-width:600px;margin:0 auto;padding:40px 20px;">
    <div style="border:2px solid {{.Accent}};border-radius:12px;padding:30px;background-color:rgba(255,255,255,0.03);">
      <h1 style="color:{{.Accent}};text-align:center;letter-spacing:4px;margin-top:0;">{{.EventName}}</h1>
      <p style="text-align:center;color:#aaaaaa;">{{.Tagline}}</p>
      <hr style="border:none;border-top:1px dashed {{.Accent}};" />
      <p>Hello <strong>{{.Name}}</strong>,</p>
      {{if .IsRahasya}}
      <p>Your clearance has been processed. The coordinates below are for your eyes only.</p>
      {{else}}
      <p>Your booking is confirmed! We can't wait to see you there.</p>
      {{end}}
      <table style="width:100%;color:#ffffff;margin:20px 0;">
        <tr><td style="color:#aaaaaa;padding:6px 0;">Zone</td><td style="text-align:right;font-weight:bold;">{{.Zone}}</td></tr>
        <tr><td style="color:#aaaaaa;padding:6px 0;">Amount Paid</td><td style="text-align:right;font-weight:bold;">&#8377;{{.Amount}}</td></tr>
      </table>
      <div style="text-align:center;margin:30px 0;">
        <a href="{{.QRLink}}" style="background-color:{{.Accent}};color:#ffffff;padding:14px 28px;text-decoration:none;border-radius:8px;font-weight:bold;">VIEW YOUR TICKET</a>
      </div>
      <p style="color:#888888;font-size:12px;text-align:center;">
        Do not scan your own ticket. Each scan is logged and a ticket that has
        already been scanned will be flagged at the gate.
      </p>
    </div>
  </div>
</body>
</html>`))

// RenderTicketEmail produces the themed subject and HTML body for a ticket.
func RenderTicketEmail(data TicketEmailData) (subject, html string, err error) {
	if data.IsRahasya {
		data.Accent = rahasyaAccent
		data.EventName = "RAHASYA"
		data.Tagline = "The briefing is over. The operation begins."
		subject = "CONFIDENTIAL: Your Access Protocols"
	} else {
		data.Accent = amisparkAccent
		data.EventName = "AMISPARK 2026"
		data.Tagline = "Two days. One stage. Infinite noise."
		subject = "Your Ticket for Amispark 2026"
	}

	var buf bytes.Buffer
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render ticket email: %w", err)
	}
	return subject, buf.String(), nil
}
