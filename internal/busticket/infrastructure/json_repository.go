package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
)

// JSONTicketRepository mantém rotas e passagens em memória e as persiste num arquivo JSON.
// Todas as operações passam pelo mesmo mutex, inclusive o acesso ao arquivo.
type JSONTicketRepository struct {
	mu           sync.Mutex
	path         string
	routes       []domain.Route
	tickets      []domain.Ticket
	nextTicketID int
	dirty        bool
	logger       pkgApp.AppLogger
}

func NewJSONTicketRepository(path string, logger pkgApp.AppLogger) *JSONTicketRepository {
	return &JSONTicketRepository{
		path:         path,
		nextTicketID: 1,
		logger:       logger,
	}
}

func (r *JSONTicketRepository) Path() string {
	return r.path
}

// AddTicket atribui o próximo id quando ticket.ID é 0 e grava o id de volta em ticket.
// Não persiste.
func (r *JSONTicketRepository) AddTicket(ctx context.Context, ticket *domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.ID == 0 {
		ticket.ID = r.nextTicketID
		r.nextTicketID++
	} else if ticket.ID >= r.nextTicketID {
		r.nextTicketID = ticket.ID + 1
	}
	r.tickets = append(r.tickets, *ticket)
	r.dirty = true

	pkgApp.LogDebug(ctx, r.logger, "ticket added", map[string]interface{}{"ticket_id": ticket.ID})
}

func (r *JSONTicketRepository) RemoveTicket(ctx context.Context, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.tickets, func(t domain.Ticket) bool { return t.ID == id })
	if idx < 0 {
		return
	}
	r.tickets = slices.Delete(r.tickets, idx, idx+1)
	r.dirty = true

	pkgApp.LogDebug(ctx, r.logger, "ticket removed", map[string]interface{}{"ticket_id": id})
}

func (r *JSONTicketRepository) UpdateTicket(ctx context.Context, ticket domain.Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.tickets, func(t domain.Ticket) bool { return t.ID == ticket.ID })
	if idx < 0 {
		return false
	}
	r.tickets[idx] = ticket
	r.dirty = true

	pkgApp.LogDebug(ctx, r.logger, "ticket updated", map[string]interface{}{"ticket_id": ticket.ID})
	return true
}

// GetTicket relê o arquivo antes da busca para enxergar edições externas.
// Alterações ainda não salvas têm precedência sobre o arquivo.
func (r *JSONTicketRepository) GetTicket(ctx context.Context, id int) (domain.Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		r.refresh(ctx)
	}

	for _, t := range r.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

func (r *JSONTicketRepository) ListTickets(ctx context.Context) []domain.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tickets)
}

func (r *JSONTicketRepository) ListRoutes(ctx context.Context) []domain.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.routes)
}

func (r *JSONTicketRepository) Snapshot(ctx context.Context) domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Snapshot{
		Routes:  slices.Clone(r.routes),
		Tickets: slices.Clone(r.tickets),
	}
}

// SaveAll grava o arquivo inteiro com write-then-replace. Falhas são registradas e ignoradas.
func (r *JSONTicketRepository) SaveAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.save(ctx)
}

// LoadAll recarrega o estado do arquivo. Nunca falha: arquivo ausente gera as rotas
// padrão e é gravado; conteúdo inválido degrada para o que foi possível ler.
func (r *JSONTicketRepository) LoadAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		pkgApp.LogInfo(ctx, r.logger, "Arquivo de dados não encontrado, criando rotas padrão", map[string]interface{}{"path": r.path})
		r.apply(DefaultRoutes(), nil)
		r.save(ctx)
		return
	}
	if err != nil {
		pkgApp.LogError(ctx, r.logger, "Erro ao ler arquivo de dados", err, map[string]interface{}{"path": r.path})
		if len(r.routes) == 0 {
			r.routes = DefaultRoutes()
		}
		return
	}

	routes, tickets, issues, err := DecodeDocument(data)
	if err != nil {
		pkgApp.LogError(ctx, r.logger, "Arquivo de dados inválido, usando rotas padrão", err, map[string]interface{}{"path": r.path})
		r.apply(nil, nil)
		return
	}
	r.logIssues(ctx, issues)
	r.apply(routes, tickets)
}

// refresh substitui o estado em memória pelo arquivo quando a leitura é completa.
// Um documento com estrutura errada não substitui nada.
func (r *JSONTicketRepository) refresh(ctx context.Context) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		pkgApp.LogDebug(ctx, r.logger, "refresh skipped", map[string]interface{}{"path": r.path, "error": err.Error()})
		return
	}
	routes, tickets, issues, err := DecodeDocument(data)
	if err != nil {
		pkgApp.LogError(ctx, r.logger, "Arquivo de dados inválido, mantendo estado em memória", err, map[string]interface{}{"path": r.path})
		return
	}
	r.logIssues(ctx, issues)
	if HasStructuralIssue(issues) {
		pkgApp.LogInfo(ctx, r.logger, "Estrutura do arquivo de dados inválida, mantendo estado em memória", map[string]interface{}{"path": r.path})
		return
	}
	r.apply(routes, tickets)
}

// apply troca o estado e avança o contador para max(id)+1 sem nunca recuá-lo.
func (r *JSONTicketRepository) apply(routes []domain.Route, tickets []domain.Ticket) {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	r.routes = routes
	r.tickets = tickets

	for _, t := range tickets {
		if t.ID >= r.nextTicketID {
			r.nextTicketID = t.ID + 1
		}
	}
	r.dirty = false
}

func (r *JSONTicketRepository) save(ctx context.Context) {
	data, err := EncodeDocument(r.routes, r.tickets)
	if err != nil {
		pkgApp.LogError(ctx, r.logger, "Erro ao serializar dados", err, map[string]interface{}{"path": r.path})
		return
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		pkgApp.LogError(ctx, r.logger, "Erro ao criar diretório de dados", err, map[string]interface{}{"path": r.path})
		return
	}

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		pkgApp.LogError(ctx, r.logger, "Erro ao salvar dados", err, map[string]interface{}{"path": r.path})
		return
	}
	r.dirty = false

	pkgApp.LogDebug(ctx, r.logger, "data saved", map[string]interface{}{
		"path":    r.path,
		"routes":  len(r.routes),
		"tickets": len(r.tickets),
	})
}

func (r *JSONTicketRepository) logIssues(ctx context.Context, issues []DecodeIssue) {
	for _, issue := range issues {
		pkgApp.LogError(ctx, r.logger, "Valor inválido no arquivo de dados, usando padrão", issue.Err, map[string]interface{}{
			"path":  r.path,
			"field": issue.Path,
		})
	}
}
