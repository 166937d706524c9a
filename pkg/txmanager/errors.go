package txmanager

import "errors"

var (
	// ErrTransaction возвращается при ошибках начала или фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrRetriesExhausted возвращается, когда сериализуемая транзакция так и не прошла
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)
