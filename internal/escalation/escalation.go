// Package escalation produces the fixed human-handoff reply for queries
// the knowledge base cannot serve.
package escalation

import "fmt"

// Support contact channels, also referenced by the generator's fallback.
const (
	SupportEmail   = "support@techgear.com"
	SupportPhone   = "1800-123-4567"
	SupportHours   = "Monday to Saturday, 9 AM to 6 PM IST"
	SupportWebsite = "www.techgear.com/support"
)

var message = fmt.Sprintf(`Thank you for contacting TechGear Electronics!

For personalized assistance with your inquiry, please reach out to our support team:

  Email:   %s
  Phone:   %s
  Hours:   %s
  Website: %s

Meanwhile, I can help you with:
  - Product features, specifications and pricing
  - Warranty information and coverage
  - Return policy and procedures
  - Payment methods and shipping details

Would you like to know more about the SmartWatch Pro X, Wireless Earbuds Elite or Power Bank Ultra?`,
	SupportEmail, SupportPhone, SupportHours, SupportWebsite)

// Respond returns the escalation message. Pure; no inputs, no failures.
func Respond() string {
	return message
}
