package notification

import (
	"fmt"
	"strings"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
)

// causeLabel names the aggregation target in outgoing messages
func causeLabel(donation *entity.Donation, causeTitle string) string {
	if donation.CauseID == nil || causeTitle == "" {
		return "General Fund"
	}
	return causeTitle
}

// DonorMessage builds the donor-facing subject and body for a donation's current status
func DonorMessage(donation *entity.Donation, causeTitle string) (subject, body string) {
	amount := fmt.Sprintf("%s %s", donation.Currency, donation.Amount)

	switch donation.Status {
	case entity.StatusCompleted:
		subject = "Thank You for Your Donation - Payment Successful"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour donation of %s to %s has been received.\nPayment ID: %s\n\nThank you for your generosity.",
			donation.DonorName, amount, causeLabel(donation, causeTitle), donation.PaymentID)
	case entity.StatusFailed:
		subject = "Your Donation Could Not Be Processed"
		body = fmt.Sprintf(
			"Dear %s,\n\nUnfortunately your donation of %s to %s could not be processed.\nNo amount has been charged. You are welcome to try again.",
			donation.DonorName, amount, causeLabel(donation, causeTitle))
	case entity.StatusRefunded:
		subject = "Your Donation Has Been Refunded"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour donation of %s to %s has been refunded.\nThe amount will reach your account within a few business days.",
			donation.DonorName, amount, causeLabel(donation, causeTitle))
	default:
		subject = "Your Donation Is Being Processed"
		body = fmt.Sprintf(
			"Dear %s,\n\nWe have received your donation request of %s to %s.\nWe will confirm as soon as the payment completes.",
			donation.DonorName, amount, causeLabel(donation, causeTitle))
	}
	return subject, body
}

// OrgMessage builds the organization-facing subject and body for a donation's current status
func OrgMessage(donation *entity.Donation, causeTitle string) (subject, body string) {
	amount := fmt.Sprintf("%s %s", donation.Currency, donation.Amount)
	statusWord := string(donation.Status)
	statusWord = statusWord[:1] + strings.ToLower(statusWord[1:])
	subject = fmt.Sprintf("Donation %s - %s from %s", statusWord, amount, donation.DonorName)

	var details strings.Builder
	fmt.Fprintf(&details, "Donation #%d is %s.\n\n", donation.ID, donation.Status)
	fmt.Fprintf(&details, "Donor: %s <%s>\n", donation.DonorName, donation.DonorEmail)
	fmt.Fprintf(&details, "Amount: %s\n", amount)
	fmt.Fprintf(&details, "Cause: %s\n", causeLabel(donation, causeTitle))
	if donation.PaymentID != "" {
		fmt.Fprintf(&details, "Payment ID: %s\n", donation.PaymentID)
	}
	if donation.OrderID != "" {
		fmt.Fprintf(&details, "Order ID: %s\n", donation.OrderID)
	}
	if donation.Message != "" {
		fmt.Fprintf(&details, "Message: %s\n", donation.Message)
	}
	return subject, details.String()
}

// FollowupMessage builds the reminder sent to donors whose donation stays unresolved
func FollowupMessage(donation *entity.Donation, causeTitle string) (subject, body string) {
	amount := fmt.Sprintf("%s %s", donation.Currency, donation.Amount)
	subject = "Your Donation Is Still Pending"
	body = fmt.Sprintf(
		"Dear %s,\n\nYour donation of %s to %s is still awaiting payment confirmation.\nIf you did not finish the checkout, you can complete it at any time.\nIf you already paid, no action is needed - we will confirm automatically.",
		donation.DonorName, amount, causeLabel(donation, causeTitle))
	return subject, body
}
