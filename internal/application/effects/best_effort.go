// Package effects hace visible en el código la supresión de fallos de los
// efectos secundarios (notificaciones, auditoría). El caller que quiere
// semántica best-effort lo dice explícitamente llamando Fire, en lugar de
// tragarse errores por accidente.
package effects

import "github.com/jhoicas/pos-api/pkg/logger"

// Fire ejecuta el efecto; si falla, lo deja en el log y descarta el error.
// Nunca interrumpe la operación principal.
func Fire(log *logger.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("effect", name).Msg("efecto best-effort falló")
	}
}
