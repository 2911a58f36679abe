package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

// AuditLogObserver grava uma linha "[yyyy-mm-dd hh:mm:ss] mensagem" por evento.
// O writer tem trava própria, independente do repositório.
type AuditLogObserver struct {
	logger *zap.Logger
	closer io.Closer
}

// NewAuditLogObserver abre (ou cria) o arquivo de auditoria em modo append.
func NewAuditLogObserver(path string) (*AuditLogObserver, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	observer := NewAuditLogObserverFromWriter(file)
	observer.closer = file
	return observer, nil
}

func NewAuditLogObserverFromWriter(w io.Writer, opts ...zap.Option) *AuditLogObserver {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("[2006-01-02 15:04:05]"),
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.InfoLevel,
	)
	return &AuditLogObserver{logger: zap.New(core, opts...)}
}

func (o *AuditLogObserver) OnCreated(ctx context.Context, ticket domain.Ticket) error {
	o.logger.Info(fmt.Sprintf("Ticket #%d created for %s", ticket.ID, ticket.Passenger.FullName()))
	return nil
}

func (o *AuditLogObserver) OnCancelled(ctx context.Context, ticket domain.Ticket) error {
	o.logger.Info(fmt.Sprintf("Ticket #%d cancelled for %s", ticket.ID, ticket.Passenger.FullName()))
	return nil
}

func (o *AuditLogObserver) OnStatusChanged(ctx context.Context, ticket domain.Ticket, oldStatus, newStatus domain.Status) error {
	o.logger.Info(fmt.Sprintf("Ticket #%d status changed from %s to %s", ticket.ID, oldStatus, newStatus))
	return nil
}

func (o *AuditLogObserver) Close() error {
	err := o.logger.Sync()
	if o.closer != nil {
		err = multierr.Append(err, o.closer.Close())
	}
	return err
}
