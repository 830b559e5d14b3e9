package notification

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("notification: failed to connect to broker")

	// ErrDeclareQueue возвращается при ошибке объявления очереди
	ErrDeclareQueue = errors.New("notification: failed to declare queue")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("notification: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("notification: failed to publish event")
)
