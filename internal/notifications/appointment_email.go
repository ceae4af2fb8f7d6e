package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"arogya-backend/internal/appointments"
)

const appointmentConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Dear {{.Name}},</p>
  <p>Your appointment is confirmed. Details below:</p>
  <ul>
    <li>Doctor: {{.DoctorName}} ({{.Specialty}})</li>
    <li>Clinic: {{.Clinic}}</li>
    <li>Location: {{.Area}}, {{.District}}, {{.State}}</li>
    <li>Date: {{.Date}}</li>
    <li>Time: {{.Time}}</li>
    <li>Estimated wait: {{.WaitTime}} minutes</li>
    <li>Consultation fee: Rs. {{.Fee}}</li>
    <li>Appointment number: {{.AppointmentNumber}}</li>
  </ul>
  <p>Please bring:</p>
  <ul>
    <li>A government photo ID</li>
    <li>Any previous prescriptions or reports</li>
  </ul>
  <p>Thank you.</p>
</body>
</html>`

var appointmentConfirmationTmpl = template.Must(template.New("appointment_confirmation").Parse(appointmentConfirmationTemplate))

type appointmentConfirmationData struct {
	Name              string
	DoctorName        string
	Specialty         string
	Clinic            string
	Area              string
	District          string
	State             string
	Date              string
	Time              string
	WaitTime          int
	Fee               int
	AppointmentNumber string
}

func buildAppointmentConfirmationHTML(appt appointments.Appointment) (string, error) {
	data := appointmentConfirmationData{
		Name:              appt.Name,
		DoctorName:        appt.DoctorName,
		Specialty:         appt.Specialty,
		Clinic:            appt.Clinic,
		Area:              appt.Area,
		District:          appt.District,
		State:             appt.State,
		Date:              appt.Date,
		Time:              appt.Time,
		WaitTime:          appt.WaitTime,
		Fee:               appt.Fee,
		AppointmentNumber: appt.AppointmentNumber,
	}
	var buf bytes.Buffer
	if err := appointmentConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *BrevoClient) SendAppointmentConfirmation(ctx context.Context, appt appointments.Appointment) (string, error) {
	if c == nil {
		return "", errors.New("brevo client is nil")
	}
	subject := fmt.Sprintf("Appointment confirmed - %s", appt.DoctorName)
	htmlBody, err := buildAppointmentConfirmationHTML(appt)
	if err != nil {
		return "", err
	}
	return c.sendHTML(ctx, appt.Email, appt.Name, subject, htmlBody)
}
