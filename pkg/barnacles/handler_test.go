package barnacles_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/reelyactive/barnacles-azureblobstorage/pkg/barnacles"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
)

var _ = Describe("Handlers", func() {
	It("fans out to every handler", func() {
		var seen []string
		first := HandlerFunc(func(r *raddec.Raddec) { seen = append(seen, "first:"+r.TransmitterID) })
		second := HandlerFunc(func(r *raddec.Raddec) { seen = append(seen, "second:"+r.TransmitterID) })

		NewMultiHandler(first, second).HandleRaddec(newRaddec())

		Expect(seen).To(Equal([]string{"first:fee150bada55", "second:fee150bada55"}))
	})

	It("prints one json line per raddec", func() {
		var out bytes.Buffer
		handler := NewStdoutHandler(&out, raddec.FlattenOptions{IncludePackets: true})

		handler.HandleRaddec(newRaddec())
		handler.HandleRaddec(newRaddec())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(ContainSubstring(`"transmitterId":"fee150bada55"`))
		Expect(lines[0]).To(ContainSubstring(`"packets":["061bfee150bada5502011a"]`))
	})
})
