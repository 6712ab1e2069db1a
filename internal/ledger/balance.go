package ledger

import (
	"sort"

	"ledgerline/internal/logger"
)

// Delta returns how much tx moves the balance of account. Transactions that
// don't involve the account, or whose type doesn't apply to it, contribute zero.
func Delta(account Account, tx Transaction) Cents {
	var d Cents
	if tx.DebitAccountID == account.ID {
		d += debitEffect(account.Type, tx)
	}
	if tx.CreditAccountID == account.ID {
		d += creditEffect(account.Type, tx)
	}
	return d
}

func debitEffect(accountType AccountType, tx Transaction) Cents {
	switch accountType {
	case AccountTypeAsset:
		if tx.Type == TransactionTypeIncome || tx.Type == TransactionTypeTransfer {
			return tx.Amount
		}
	case AccountTypeLiability:
		if tx.Type == TransactionTypeTransfer {
			return -tx.Amount
		}
	case AccountTypeExpense:
		if tx.Type == TransactionTypeExpense || tx.Type == TransactionTypeDebt {
			return tx.Amount
		}
	}
	return 0
}

func creditEffect(accountType AccountType, tx Transaction) Cents {
	switch accountType {
	case AccountTypeAsset:
		if tx.Type == TransactionTypeExpense || tx.Type == TransactionTypeTransfer {
			return -tx.Amount
		}
	case AccountTypeLiability:
		if tx.Type == TransactionTypeDebt || tx.Type == TransactionTypeTransfer {
			return tx.Amount
		}
	case AccountTypeIncome:
		if tx.Type == TransactionTypeIncome {
			return tx.Amount
		}
	}
	return 0
}

// malformed reports records that can't be attributed to any account. They
// are skipped by every fold instead of failing it.
func malformed(tx Transaction) bool {
	if tx.CreditAccountID == "" && tx.DebitAccountID == "" {
		logger.Get().Debugw("skipping transaction without accounts", "transaction_id", tx.ID)
		return true
	}
	return false
}

// CalculateBalance folds txs over the account's opening balance.
func CalculateBalance(account Account, txs []Transaction) Cents {
	balance := account.OpeningBalance
	for _, tx := range txs {
		if malformed(tx) || !tx.Involves(account.ID) {
			continue
		}
		balance += Delta(account, tx)
	}
	return balance
}

// Balances computes the balance of every account in one pass over txs.
// Transactions referencing unknown accounts only affect the known side.
func Balances(accounts []Account, txs []Transaction) map[string]Cents {
	byID := AccountsByID(accounts)
	out := make(map[string]Cents, len(accounts))
	for _, a := range accounts {
		out[a.ID] = a.OpeningBalance
	}
	for _, tx := range txs {
		if malformed(tx) {
			continue
		}
		if a, ok := byID[tx.CreditAccountID]; ok {
			out[a.ID] += Delta(a, tx)
		}
		if tx.DebitAccountID == tx.CreditAccountID {
			continue
		}
		if a, ok := byID[tx.DebitAccountID]; ok {
			out[a.ID] += Delta(a, tx)
		}
	}
	return out
}

// BalancesByType sums account balances per account type.
func BalancesByType(accounts []Account, txs []Transaction) map[AccountType]Cents {
	balances := Balances(accounts, txs)
	out := make(map[AccountType]Cents, len(AccountTypes))
	for _, t := range AccountTypes {
		out[t] = 0
	}
	for _, a := range accounts {
		out[a.Type] += balances[a.ID]
	}
	return out
}

// CalculateNetWorth is total assets minus total liabilities. Income and
// expense accounts are flow accounts and never count towards net worth.
func CalculateNetWorth(byType map[AccountType]Cents) Cents {
	return byType[AccountTypeAsset] - byType[AccountTypeLiability]
}

// Summary is the aggregate view of a set of accounts.
type Summary struct {
	Assets      Cents            `json:"assets"`
	Liabilities Cents            `json:"liabilities"`
	Income      Cents            `json:"income"`
	Expenses    Cents            `json:"expenses"`
	NetWorth    Cents            `json:"net_worth"`
	ByAccount   map[string]Cents `json:"by_account"`
}

// Summarize computes per-account balances, per-type totals and net worth.
func Summarize(accounts []Account, txs []Transaction) Summary {
	balances := Balances(accounts, txs)
	byType := make(map[AccountType]Cents, len(AccountTypes))
	for _, a := range accounts {
		byType[a.Type] += balances[a.ID]
	}
	return Summary{
		Assets:      byType[AccountTypeAsset],
		Liabilities: byType[AccountTypeLiability],
		Income:      byType[AccountTypeIncome],
		Expenses:    byType[AccountTypeExpense],
		NetWorth:    CalculateNetWorth(byType),
		ByAccount:   balances,
	}
}

// RunningBalance is one point of an account's balance history.
type RunningBalance struct {
	TransactionID string `json:"transaction_id"`
	Date          Date   `json:"date"`
	Delta         Cents  `json:"delta"`
	Balance       Cents  `json:"balance"`
}

// RunningSeries returns the balance of account after each transaction that
// involves it, ordered by date. Transactions on the same date keep their
// input order. The last element equals CalculateBalance when starting is the
// opening balance.
func RunningSeries(txs []Transaction, account Account, starting Cents) []RunningBalance {
	ordered := SortByDate(txs)
	series := make([]RunningBalance, 0, len(ordered))
	balance := starting
	for _, tx := range ordered {
		if malformed(tx) || !tx.Involves(account.ID) {
			continue
		}
		d := Delta(account, tx)
		balance += d
		series = append(series, RunningBalance{
			TransactionID: tx.ID,
			Date:          tx.Date,
			Delta:         d,
			Balance:       balance,
		})
	}
	return series
}

// CalculateRunningBalances maps each transaction id to the account balance
// right after that transaction.
func CalculateRunningBalances(txs []Transaction, account Account, starting Cents) map[string]Cents {
	series := RunningSeries(txs, account, starting)
	out := make(map[string]Cents, len(series))
	for _, p := range series {
		out[p.TransactionID] = p.Balance
	}
	return out
}

// SortByDate returns a copy of txs ordered by date. The sort is stable, so
// same-day transactions keep insertion order, and undated records sort first.
func SortByDate(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
