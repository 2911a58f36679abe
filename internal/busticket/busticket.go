package busticket

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	"github.com/mateusmacedo/go-busstation/internal/busticket/infrastructure"
	"github.com/mateusmacedo/go-busstation/internal/config"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
	channelsAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/channels/adapter"
	pkgDomain "github.com/mateusmacedo/go-busstation/pkg/domain"
)

// undoDepth mantém apenas o último comando para desfazer.
const undoDepth = 1

// Options controla a montagem da fatia.
type Options struct {
	Config   config.Config
	InMemory bool
	Now      func() time.Time
}

// BusTicketSlice monta repositório, observadores, broker, serviço e guichê.
type BusTicketSlice struct {
	Repository domain.TicketRepository
	Service    *application.TicketService
	Terminal   *infrastructure.TerminalHandler

	pubSub *gochannel.GoChannel
	audit  *infrastructure.AuditLogObserver
	worker *infrastructure.ExportWorker
	logger pkgApp.AppLogger
}

func NewBusTicketSlice(
	ctx context.Context,
	opts Options,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) (*BusTicketSlice, error) {
	cfg := opts.Config

	var repository domain.TicketRepository
	if opts.InMemory {
		repository = infrastructure.NewInMemoryTicketRepository(nil, logger)
	} else {
		repository = infrastructure.NewJSONTicketRepository(cfg.DataFile, logger)
	}
	repository.LoadAll(ctx)

	audit, err := infrastructure.NewAuditLogObserver(cfg.AuditLog)
	if err != nil {
		return nil, err
	}

	pubSub := channelsAdapter.NewGoChannelPubSub(logger)
	publisher := channelsAdapter.NewWatermillEventPublisher[application.TicketEventData](pubSub, logger)

	subject := application.NewSubject(logger)
	subject.Attach(audit)
	subject.Attach(infrastructure.NewPersistenceObserver(repository))
	subject.Attach(infrastructure.NewBrokerObserver(publisher, idGenerator))

	service := application.NewTicketService(
		repository,
		subject,
		application.NewTicketProcessor(opts.Now),
		application.NewHistory(undoDepth),
		logger,
	)
	exporter := infrastructure.NewTextExporter(cfg.ExportDir, opts.Now, logger)

	slice := &BusTicketSlice{
		Repository: repository,
		Service:    service,
		Terminal:   infrastructure.NewTerminalHandler(service, exporter, cfg.HistoryFile, logger),
		pubSub:     pubSub,
		audit:      audit,
		logger:     logger,
	}

	if cfg.AutoExport {
		worker, err := infrastructure.NewExportWorker(pubSub, repository, exporter, logger)
		if err != nil {
			_ = slice.Close()
			return nil, err
		}
		slice.worker = worker
		go func() {
			if err := worker.Run(ctx); err != nil {
				pkgApp.LogError(ctx, logger, "Export worker stopped", err, nil)
			}
		}()
		select {
		case <-worker.Running():
		case <-ctx.Done():
		}
	}

	return slice, nil
}

// Close encerra o worker, o broker e o log de auditoria, nessa ordem.
func (s *BusTicketSlice) Close() error {
	var err error
	if s.worker != nil {
		err = multierr.Append(err, s.worker.Close())
	}
	err = multierr.Append(err, s.pubSub.Close())
	err = multierr.Append(err, s.audit.Close())
	return err
}
