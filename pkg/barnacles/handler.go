package barnacles

import (
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
)

// Handler receives every raddec coming off the bus.
// HandleRaddec must not block on outbound I/O and must not keep the raddec.
type Handler interface {
	HandleRaddec(r *raddec.Raddec)
}

type HandlerFunc func(r *raddec.Raddec)

func (f HandlerFunc) HandleRaddec(r *raddec.Raddec) {
	f(r)
}

type multiHandler struct {
	handlers []Handler
}

// NewMultiHandler fans every raddec out to all handlers, in order.
func NewMultiHandler(handlers ...Handler) Handler {
	return &multiHandler{
		handlers: handlers,
	}
}

func (m *multiHandler) HandleRaddec(r *raddec.Raddec) {
	for _, handler := range m.handlers {
		handler.HandleRaddec(r)
	}
}
