package publisher

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"railwatch/internal/collector"
)

// NATS is an optional sink that streams each observation as JSON on
// trains.<type>.<id> subjects for live consumers.
type NATS struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewNATS connects to the given NATS server.
func NewNATS(url string, logger *slog.Logger) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("railwatch"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			logger.Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	logger.Info("nats connected", "url", url)
	return &NATS{nc: nc, logger: logger}, nil
}

// Write publishes one observation, satisfying collector.Sink.
func (p *NATS) Write(o collector.Observation) error {
	subject := fmt.Sprintf("trains.%s.%s", subjectToken(o.TrainType), subjectToken(o.TrainID))
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal observation: %w", err)
	}
	return p.nc.Publish(subject, b)
}

// Close drains and closes the connection.
func (p *NATS) Close() error {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.nc.Close()
			return err
		}
		p.nc.Close()
	}
	return nil
}

// subjectToken sanitizes a value for use as a NATS subject token.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
