// Package ledger keeps the utang book: customer balances plus the
// append-only debt transaction history they are derived from. The one
// invariant that matters: for every customer,
//
//	totalBalance == Σ(Debt amounts) − Σ(Payment amounts)
//
// PostTransaction is the only path that moves a balance, and it appends
// the transaction and adjusts the balance as a single unit.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"sari-pos-agent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListCustomers returns every registered customer, oldest first.
func (s *Store) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Order("created_at asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer looks a customer up by id.
func (s *Store) GetCustomer(id string) (models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, fmt.Errorf("customer %s: %w", id, models.ErrNotFound)
		}
		return models.Customer{}, err
	}
	return customer, nil
}

// RegisterCustomer adds a new debtor with a zero balance.
func (s *Store) RegisterCustomer(name, phone string) (models.Customer, error) {
	customer := models.Customer{
		ID:              uuid.NewString(),
		Name:            name,
		Phone:           phone,
		TotalBalance:    0,
		LastTransaction: time.Now(),
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// UpdateCustomer edits contact details only. The balance is off limits:
// it moves exclusively through PostTransaction.
func (s *Store) UpdateCustomer(id, name, phone string) (models.Customer, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return models.Customer{}, err
	}
	customer.Name = name
	customer.Phone = phone
	err = s.db.Model(&models.Customer{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "phone": phone}).Error
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// ListTransactions returns debt history. With a customer id the result
// is that customer's history, most recent first; with an empty id the
// full book is returned in append order.
func (s *Store) ListTransactions(customerID string) ([]models.DebtTransaction, error) {
	var txns []models.DebtTransaction
	q := s.db.Model(&models.DebtTransaction{})
	if customerID != "" {
		q = q.Where("customer_id = ?", customerID).Order("timestamp desc")
	} else {
		q = q.Order("timestamp asc")
	}
	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// PostTransaction records a debt or payment as its own unit of work.
func (s *Store) PostTransaction(customerID string, amount float64, txnType, note, saleID string) (models.DebtTransaction, error) {
	var txn models.DebtTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = s.PostTransactionTx(tx, customerID, amount, txnType, note, saleID)
		return err
	})
	return txn, err
}

// PostTransactionTx appends an immutable DebtTransaction and adjusts the
// customer's balance inside a caller-owned transaction: never one
// without the other. Debt increases the balance, Payment decreases it;
// an overpayment legitimately drives it negative.
func (s *Store) PostTransactionTx(tx *gorm.DB, customerID string, amount float64, txnType, note, saleID string) (models.DebtTransaction, error) {
	if amount <= 0 {
		return models.DebtTransaction{}, fmt.Errorf("%w: got %.2f", models.ErrInvalidAmount, amount)
	}
	if txnType != models.TxnDebt && txnType != models.TxnPayment {
		return models.DebtTransaction{}, fmt.Errorf("unknown transaction type %q", txnType)
	}

	var customer models.Customer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&customer, "id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DebtTransaction{}, fmt.Errorf("customer %s: %w", customerID, models.ErrNotFound)
		}
		return models.DebtTransaction{}, err
	}

	now := time.Now()
	txn := models.DebtTransaction{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Type:       txnType,
		Amount:     amount,
		Timestamp:  now,
		Note:       note,
		SaleID:     saleID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return models.DebtTransaction{}, err
	}

	delta := amount
	if txnType == models.TxnPayment {
		delta = -amount
	}
	err = tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"total_balance":    gorm.Expr("total_balance + ?", delta),
			"last_transaction": now,
		}).Error
	if err != nil {
		return models.DebtTransaction{}, err
	}

	return txn, nil
}
