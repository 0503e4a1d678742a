package rawdatalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/stan.go"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
)

type Publisher interface {
	Publish(topic string, r *raddec.Raddec) error
}

type stanPublisher struct {
	sc stan.Conn
}

func NewStanPublisher(sc stan.Conn) Publisher {
	return &stanPublisher{
		sc: sc,
	}
}

// topic == subject == channel
func (p *stanPublisher) Publish(topic string, r *raddec.Raddec) error {
	msg, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.sc.Publish(topic, msg)
}

type natsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) Publisher {
	return &natsPublisher{
		nc: nc,
	}
}

func (p *natsPublisher) Publish(subject string, r *raddec.Raddec) error {
	msg, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(subject, msg); err != nil {
		return err
	}
	return p.nc.Flush()
}

type writerPublisher struct {
	out io.Writer
}

// NewWriterPublisher prints instead of publishing, handy for a dry run.
func NewWriterPublisher(out io.Writer) Publisher {
	return &writerPublisher{
		out: out,
	}
}

func (p *writerPublisher) Publish(topic string, r *raddec.Raddec) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%s %s\n", topic, data)
	return err
}
