package main

// Session states
type sessionState int

const (
	dashboardState sessionState = iota
	transactionsState
	accountsState
	accountDetailState
	newTransactionState
	newAccountState
	configViewState
	loadingState
	errorState
)

func (ss sessionState) String() string {
	switch ss {
	case dashboardState:
		return "dashboard"
	case transactionsState:
		return "transactions"
	case accountsState:
		return "accounts"
	case accountDetailState:
		return "account details"
	case newTransactionState:
		return "new transaction"
	case newAccountState:
		return "new account"
	case configViewState:
		return "configuration"
	case loadingState:
		return "loading"
	case errorState:
		return "error"
	}

	return "unknown"
}
