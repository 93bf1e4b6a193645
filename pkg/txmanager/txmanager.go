package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DBExecutor интерфейс для выполнения запросов
// Реализуется и *sql.DB, и *sql.Tx, поэтому репозитории работают
// одинаково внутри и вне транзакции
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ErrSerialization возвращается при конфликте сериализуемых транзакций
// (две конкурентные записи прошли проверку до коммита). Вызывающий код
// может безопасно повторить операцию.
var ErrSerialization = errors.New("txmanager: serialization conflict")

type ctxKey struct{}

// TransactionManager управляет транзакциями БД и передает активную
// транзакцию через context
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// Используется для check-then-insert сценариев (анти-дубли бронирований)
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin: %w", err)
	}

	txCtx := context.WithValue(ctx, ctxKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		// 40001/40P01 прилетают и до коммита, на FOR UPDATE или INSERT
		if isSerializationFailure(err) {
			return ErrSerialization
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return ErrSerialization
		}
		return fmt.Errorf("txmanager: commit: %w", err)
	}
	return nil
}

// ExecutorFromContext возвращает активную транзакцию из контекста
// или fallback-executor, если транзакции нет
func ExecutorFromContext(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(ctxKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}

// InTransaction сообщает, есть ли в контексте активная транзакция
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return ok
}

// isSerializationFailure проверяет SQLSTATE 40001 (serialization_failure)
// и 40P01 (deadlock_detected)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// IsSerialization сообщает, вызвана ли ошибка конфликтом сериализации
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization) || isSerializationFailure(err)
}
