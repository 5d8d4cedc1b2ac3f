package core

import "strconv"

// ActionType pool operation type
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeDeposit deposit principal
	ActionTypeDeposit
	// ActionTypeWithdraw withdraw principal
	ActionTypeWithdraw
	// ActionTypeDonate donate to the beneficiary
	ActionTypeDonate
	// ActionTypeWithdrawInterest beneficiary takes excess
	ActionTypeWithdrawInterest
)

var actionTypeNames = map[ActionType]string{
	ActionTypeDeposit:          "deposit",
	ActionTypeWithdraw:         "withdraw",
	ActionTypeDonate:           "donate",
	ActionTypeWithdrawInterest: "withdraw_interest",
}

func (a ActionType) String() string {
	if name, ok := actionTypeNames[a]; ok {
		return name
	}

	return strconv.Itoa(int(a))
}

// ParseActionType parse action type from its name
func ParseActionType(name string) (ActionType, bool) {
	for a, n := range actionTypeNames {
		if n == name {
			return a, true
		}
	}

	return 0, false
}
