package sessionstore

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("sessionstore: session not found")

	// ErrMarshal возвращается при ошибке сериализации сессии
	ErrMarshal = errors.New("sessionstore: failed to marshal session")

	// ErrStorage возвращается при ошибке обращения к Redis
	ErrStorage = errors.New("sessionstore: storage error")
)
