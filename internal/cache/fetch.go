package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader lee a través del caché: en un miss ejecuta la carga una sola vez
// aunque haya varias peticiones concurrentes por la misma clave.
type Loader struct {
	cache Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewLoader(c Cache, ttl time.Duration) *Loader {
	if c == nil {
		c = Noop{}
	}
	return &Loader{cache: c, ttl: ttl}
}

// Invalidate elimina las claves con el prefijo dado
func (l *Loader) Invalidate(ctx context.Context, prefix string) error {
	return l.cache.DeleteByPrefix(ctx, prefix)
}

// Fetch devuelve el valor cacheado en key o lo obtiene con load y lo guarda.
// Los errores de load no se cachean. Un caché caído no rompe la lectura: se registra y se sigue.
func Fetch[T any](ctx context.Context, l *Loader, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	found, err := l.cache.Get(ctx, key, &cached)
	if err != nil {
		zap.L().Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		// la carga es compartida: que se cancele la petición que la inició no corta a los demás
		shared := context.WithoutCancel(ctx)
		value, err := load(shared)
		if err != nil {
			return value, err
		}
		if err := l.cache.Set(shared, key, value, l.ttl); err != nil {
			zap.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
