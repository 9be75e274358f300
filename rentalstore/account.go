package rentalstore

// Account is a snapshot of one bank-style account row.
// The account number is assigned at creation and immutable; the balance is
// held in the currency's minor unit and never goes below zero.
//
// A snapshot is owned exclusively by the operation that read it. It is
// never shared across concurrent operations; serialization happens through
// the Store's row lock, not through this value.
type Account struct {
	AccountNo  string
	HolderName string
	Balance    int64
}

// BuildAccount creates an Account snapshot.
func BuildAccount(accountNo string, holderName string, balance int64) Account {
	return Account{
		AccountNo:  accountNo,
		HolderName: holderName,
		Balance:    balance,
	}
}
