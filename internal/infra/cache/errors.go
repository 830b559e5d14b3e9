package cache

import "errors"

var (
	// ErrRedis возвращается при ошибке обращения к redis
	ErrRedis = errors.New("cache: redis error")

	// ErrDecode возвращается, когда запись кеша не удалось разобрать
	ErrDecode = errors.New("cache: failed to decode entry")
)
