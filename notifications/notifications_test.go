package notifications

import (
	"errors"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	cases := []struct {
		name      string
		template  string
		variables map[string]string
		want      string
	}{
		{
			name:      "single placeholder",
			template:  "Hi {{customer_name}}, we got your request.",
			variables: map[string]string{"customer_name": "Jordan"},
			want:      "Hi Jordan, we got your request.",
		},
		{
			name:     "repeated placeholder replaced everywhere",
			template: "{{name}} and {{name}} again",
			variables: map[string]string{
				"name": "Sam",
			},
			want: "Sam and Sam again",
		},
		{
			name:      "unknown placeholder left in place",
			template:  "Your quote for {{service_name}} is {{price}}",
			variables: map[string]string{"service_name": "Hood Cleaning"},
			want:      "Your quote for Hood Cleaning is {{price}}",
		},
		{
			name:      "no placeholders",
			template:  "plain text",
			variables: map[string]string{"anything": "x"},
			want:      "plain text",
		},
		{
			name:      "empty value renders empty",
			template:  "link: {{approval_link}}",
			variables: map[string]string{"approval_link": ""},
			want:      "link: ",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderTemplate(tc.template, tc.variables)
			if got != tc.want {
				t.Errorf("RenderTemplate() = %q, want %q", got, tc.want)
			}
		})
	}
}

// recordingDispatcher captures intents so handler-level dispatch paths can be
// asserted without a database or SMTP server.
type recordingDispatcher struct {
	sent []Intent
	err  error
}

func (d *recordingDispatcher) Send(intent Intent) error {
	d.sent = append(d.sent, intent)
	return d.err
}

func TestDispatchUsesActiveDispatcher(t *testing.T) {
	rec := &recordingDispatcher{}
	prev := Active
	Active = rec
	defer func() { Active = prev }()

	Dispatch(Intent{
		TemplateName: "quote_received_email",
		Recipient:    "customer@example.com",
		Variables:    map[string]string{"customer_name": "Jordan"},
		EntityType:   "quote",
		EntityID:     42,
	})

	if len(rec.sent) != 1 {
		t.Fatalf("expected 1 intent, got %d", len(rec.sent))
	}
	got := rec.sent[0]
	if got.TemplateName != "quote_received_email" || got.Recipient != "customer@example.com" {
		t.Errorf("unexpected intent: %+v", got)
	}
	if got.EntityID != 42 {
		t.Errorf("EntityID = %d, want 42", got.EntityID)
	}
}

func TestDispatchSkipsEmptyRecipient(t *testing.T) {
	rec := &recordingDispatcher{}
	prev := Active
	Active = rec
	defer func() { Active = prev }()

	Dispatch(Intent{TemplateName: "quote_received_sms", Recipient: ""})

	if len(rec.sent) != 0 {
		t.Errorf("expected no sends for empty recipient, got %d", len(rec.sent))
	}
}

func TestDispatchSwallowsSendErrors(t *testing.T) {
	rec := &recordingDispatcher{err: errors.New("smtp down")}
	prev := Active
	Active = rec
	defer func() { Active = prev }()

	// Must not panic or propagate anything to the caller.
	Dispatch(Intent{TemplateName: "appointment_reminder_email", Recipient: "x@example.com"})

	if len(rec.sent) != 1 {
		t.Errorf("expected the failing send to still be attempted, got %d", len(rec.sent))
	}
}
