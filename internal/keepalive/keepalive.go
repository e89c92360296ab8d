// Package keepalive periodically requests a URL so that hosting platforms
// which park idle services keep this one running.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"venuspay-go/internal/metrics"
)

// Pinger sends one GET per schedule tick. Failures are logged and the next
// tick tries again; nothing is retried in between.
type Pinger struct {
	url    string
	http   *http.Client
	logger *log.Logger
	cron   *cron.Cron
}

func New(url string, interval time.Duration, logger *log.Logger) (*Pinger, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("keep-alive interval must be positive, got %s", interval)
	}
	p := &Pinger{
		url:    url,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.WithPrefix("keepalive"),
	}
	p.cron = cron.New(cron.WithLogger(cronLogger{p.logger}))
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		_ = p.Ping(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule keep-alive: %w", err)
	}
	return p, nil
}

func (p *Pinger) Start() {
	p.logger.Info("started", "url", p.url)
	p.cron.Start()
}

// Stop waits for a running ping to finish, or for ctx to expire.
func (p *Pinger) Stop(ctx context.Context) {
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Ping issues a single request. The response status is logged, not checked.
func (p *Pinger) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		metrics.KeepAlivePings.WithLabelValues("error").Inc()
		p.logger.Error("build request", "err", err)
		return err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		metrics.KeepAlivePings.WithLabelValues("error").Inc()
		p.logger.Warn("ping failed", "err", err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	metrics.KeepAlivePings.WithLabelValues("ok").Inc()
	p.logger.Info("ping sent", "status", resp.StatusCode)
	return nil
}

// cronLogger adapts the logger to cron's logging interface.
type cronLogger struct {
	logger *log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
