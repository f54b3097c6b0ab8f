package email

import (
	"fmt"
)

// OnboardingInviteMail - mail for clients that are invited to an onboarding portal
type OnboardingInviteMail struct {
	BodyBuilder EmailBodyBuilder
	AgencyName  string
	ClientName  string
	PortalURL   string
}

// GetSubject - gets the subject of the email
func (invite OnboardingInviteMail) GetSubject(info Notification) string {
	return fmt.Sprintf("%s needs access to your marketing accounts", invite.AgencyName)
}

// GetBody - gets the body of the email
func (invite OnboardingInviteMail) GetBody(info Notification) string {
	return invite.BodyBuilder.
		WithHeadline(fmt.Sprintf("Grant %s access", invite.AgencyName)).
		WithParagraph(fmt.Sprintf("Hello %s,", invite.ClientName)).
		WithParagraph(fmt.Sprintf("%s has asked for access to the marketing accounts listed in your onboarding portal. The portal walks you through each platform step by step.", invite.AgencyName)).
		WithHtml(styledButton(invite.PortalURL, "Open onboarding portal")).
		WithParagraph(fmt.Sprintf("If the button does not work, copy this link into your browser: %s", invite.PortalURL)).
		WithParagraph("If you were not expecting this request, you can ignore this email.").
		Build()
}
