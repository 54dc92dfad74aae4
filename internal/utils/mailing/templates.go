package mailing

import (
	"bytes"
	"html/template"
)

var requestDecisionTemplate = template.Must(template.New("request_decision").Parse(`<p>Hi {{.ReceiverName}},</p>
<p>Your request for <strong>{{.RequestedQuantity}} {{.Unit}}</strong> of <strong>{{.FoodTitle}}</strong> has been <strong>{{.Status}}</strong>.</p>
{{if eq .Status "approved"}}<p>You can reach the donor, {{.DonorName}}, at {{.DonorPhone}}. Pickup address: {{.Address}}.</p>{{end}}
{{if .AppURL}}<p><a href="{{.AppURL}}/my-requests">View your requests</a></p>{{end}}`))

type RequestDecision struct {
	ReceiverName      string
	FoodTitle         string
	RequestedQuantity int
	Unit              string
	Status            string
	DonorName         string
	DonorPhone        string
	Address           string
	AppURL            string
}

// RenderRequestDecision returns the subject and HTML body sent to a receiver
// once a donor approves or rejects their request.
func RenderRequestDecision(data RequestDecision) (string, string, error) {
	buf := new(bytes.Buffer)
	if err := requestDecisionTemplate.Execute(buf, data); err != nil {
		return "", "", err
	}
	return "Your food request was " + data.Status, buf.String(), nil
}
