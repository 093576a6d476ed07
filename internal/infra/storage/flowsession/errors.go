package flowsession

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессии нет или истёк её TTL
	ErrSessionNotFound = errors.New("flowsession.store: session not found")

	// ErrStore возвращается при ошибках Redis
	ErrStore = errors.New("flowsession.store: redis error")

	// ErrEncode возвращается при ошибке сериализации сессии
	ErrEncode = errors.New("flowsession.store: failed to encode session")
)
