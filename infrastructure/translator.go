package infrastructure

// mapTranslator resolves message keys from an in-memory table. Unknown keys
// and locales fall back to English, then to the key itself so a missing
// translation is visible instead of silent.
type mapTranslator struct {
	messages map[string]map[string]string
}

// NewTranslator creates the default translator with the built-in message set.
func NewTranslator() *mapTranslator {
	return &mapTranslator{messages: map[string]map[string]string{
		"en": {
			"welcome":                        "Welcome! Your balance is %s. Share your referral code: %s",
			"balance":                        "Your balance: %s",
			"stake_placed":                   "Stake accepted. Ticket %s, new balance %s. Good luck!",
			"deposit_filed":                  "Deposit claim #%d filed. You will be credited once an admin verifies it.",
			"withdrawal_filed":               "Withdrawal request #%d filed. An admin will process it shortly.",
			"deposit_approved":               "Deposit of %s approved. New balance: %s",
			"deposit_rejected":               "Your deposit claim was rejected. Contact support if you believe this is a mistake.",
			"referral_bonus":                 "Referral bonus credited: %s",
			"withdrawal_approved":            "Withdrawal of %s approved. New balance: %s",
			"withdrawal_auto_rejected":       "Your withdrawal of %s was rejected: insufficient balance.",
			"win_notification":               "Congratulations! You won %s. New balance: %s",
			"admin_deposit_approved":         "Deposit claim #%d approved for %s.",
			"admin_deposit_rejected":         "Deposit claim #%d rejected.",
			"admin_withdrawal_approved":      "Withdrawal request #%d approved.",
			"admin_withdrawal_auto_rejected": "Withdrawal request #%d auto-rejected: user %d has insufficient balance.",
			"admin_withdrawal_rejected":      "Withdrawal request #%d rejected.",
			"pending_header":                 "Pending: %d deposit claims, %d withdrawal requests",
			"no_draws_yet":                   "No draws have been settled yet.",
			"announcement_header":            "Draw %s results: %s",
			"announcement_no_winners":        "No winning tickets today.",
			"announcement_winner":            "User %d staked %s and won %s",
			"announcement_total":             "Total paid out: %s",
			"language_set":                   "Language set to %s.",
			"unknown_command":                "I did not understand that. Send numbers like 1,2,3,4,5:10 to place a stake.",
			"error_validation":               "Invalid input: %s",
			"error_not_found":                "%s %d not found.",
			"error_busy":                     "The system is busy, please try again.",
			"error_internal":                 "Something went wrong, please try again later.",
		},
	}}
}

// Translate resolves a (key, locale) pair to a message string.
func (t *mapTranslator) Translate(key, locale string) string {
	if msgs, ok := t.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages["en"][key]; ok {
		return msg
	}
	return key
}
