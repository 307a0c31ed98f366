package corpus

import (
	"github.com/mikey/bayes-spam-classifier/internal/core"
)

// Example is a single labelled training record
type Example struct {
	Text  string
	Label string
}

// Builtin returns the hand-written synthetic training corpus: ten short
// email texts, half spam and half ham. The set is fixed at authoring time.
func Builtin() []Example {
	return []Example{
		{Text: "Congratulations! You have won a $1000 gift card. Click here to claim your prize now", Label: core.LabelSpam},
		{Text: "Limited time offer! Buy cheap meds online without prescription, lowest prices guaranteed", Label: core.LabelSpam},
		{Text: "URGENT: Your account has been suspended. Verify your password immediately to avoid closure", Label: core.LabelSpam},
		{Text: "Earn money fast from home! No experience needed, start today and make thousands weekly", Label: core.LabelSpam},
		{Text: "You were selected for an exclusive lottery reward. Send your bank details to receive the transfer", Label: core.LabelSpam},
		{Text: "Hi team, attaching the minutes from today's standup. Let me know if I missed anything", Label: core.LabelHam},
		{Text: "Are we still on for lunch tomorrow? The usual place at noon works for me", Label: core.LabelHam},
		{Text: "The quarterly report is ready for review. Please add your comments before Friday", Label: core.LabelHam},
		{Text: "Thanks for the code review feedback, I pushed the fixes to the branch this morning", Label: core.LabelHam},
		{Text: "Reminder: the dentist appointment was moved to Thursday at 3pm, see you there", Label: core.LabelHam},
	}
}

// Texts returns the text column of a set of examples
func Texts(examples []Example) []string {
	texts := make([]string, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
	}
	return texts
}

// Labels returns the label column of a set of examples
func Labels(examples []Example) []string {
	labels := make([]string, len(examples))
	for i, ex := range examples {
		labels[i] = ex.Label
	}
	return labels
}
