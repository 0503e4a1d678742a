package barnacles

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
)

type stdoutHandler struct {
	mu      sync.Mutex
	out     io.Writer
	options raddec.FlattenOptions
}

// NewStdoutHandler prints each raddec as one line of flattened json.
func NewStdoutHandler(out io.Writer, options raddec.FlattenOptions) Handler {
	return &stdoutHandler{
		out:     out,
		options: options,
	}
}

func (h *stdoutHandler) HandleRaddec(r *raddec.Raddec) {
	data, _ := json.Marshal(r.ToFlattened(h.options))
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, string(data))
}
