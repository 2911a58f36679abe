package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
	watermillAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/watermill/adapter"
)

// ExportWorker exporta em segundo plano cada passagem vendida.
// Lê a passagem de um snapshot do repositório e renderiza fora da trava.
type ExportWorker struct {
	router     *message.Router
	repository domain.TicketRepository
	exporter   *TextExporter
	logger     pkgApp.AppLogger
}

func NewExportWorker(
	subscriber message.Subscriber,
	repository domain.TicketRepository,
	exporter *TextExporter,
	logger pkgApp.AppLogger,
) (*ExportWorker, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermillAdapter.NewWatermillLoggerAdapter(logger))
	if err != nil {
		return nil, err
	}

	w := &ExportWorker{
		router:     router,
		repository: repository,
		exporter:   exporter,
		logger:     logger,
	}
	router.AddNoPublisherHandler("export_ticket", application.EventTicketCreated, subscriber, w.handle)
	return w, nil
}

// Run bloqueia até o contexto ser cancelado ou Close ser chamado.
func (w *ExportWorker) Run(ctx context.Context) error {
	return w.router.Run(ctx)
}

// Running é fechado quando as assinaturas estão ativas.
func (w *ExportWorker) Running() chan struct{} {
	return w.router.Running()
}

func (w *ExportWorker) Close() error {
	return w.router.Close()
}

// handle nunca devolve erro: uma exportação falha é registrada e a mensagem confirmada.
func (w *ExportWorker) handle(msg *message.Message) error {
	ctx := msg.Context()

	var data application.TicketEventData
	if err := json.Unmarshal(msg.Payload, &data); err != nil {
		pkgApp.LogError(ctx, w.logger, "Evento inválido descartado", err, map[string]interface{}{"message_id": msg.UUID})
		return nil
	}

	ticket, ok := w.repository.Snapshot(ctx).FindTicket(data.TicketID)
	if !ok {
		pkgApp.LogInfo(ctx, w.logger, "Passagem não encontrada para exportação", map[string]interface{}{"ticket_id": data.TicketID})
		return nil
	}

	if _, err := w.exporter.Export(ctx, ticket); err != nil {
		pkgApp.LogError(ctx, w.logger, "Exportação automática falhou", err, map[string]interface{}{"ticket_id": data.TicketID})
	}
	return nil
}
