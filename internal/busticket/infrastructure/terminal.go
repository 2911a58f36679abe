package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/mateusmacedo/go-busstation/internal/busticket/application"
	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
)

var ErrUsage = errors.New("usage")

const travelDateLayout = "2006-01-02"

type terminalCommand struct {
	usage string
	run   func(ctx context.Context, args []string, out io.Writer) error
}

// TerminalHandler é o guichê interativo: traduz linhas digitadas em chamadas ao serviço.
type TerminalHandler struct {
	service     *application.TicketService
	exporter    *TextExporter
	logger      pkgApp.AppLogger
	historyPath string
	commands    map[string]terminalCommand
}

func NewTerminalHandler(service *application.TicketService, exporter *TextExporter, historyPath string, logger pkgApp.AppLogger) *TerminalHandler {
	h := &TerminalHandler{
		service:     service,
		exporter:    exporter,
		logger:      logger,
		historyPath: historyPath,
	}
	h.registerCommands()
	return h
}

func (h *TerminalHandler) registerCommands() {
	h.commands = map[string]terminalCommand{
		"routes": {usage: "routes", run: h.handleRoutes},
		"list":   {usage: "list [--status S] [--passenger NAME]", run: h.handleList},
		"show":   {usage: "show <id>", run: h.handleShow},
		"sell": {
			usage: "sell --route N --date YYYY-MM-DD --last L --first F [--middle M] [--phone P] [--document D] [--type T] [--payment P] [--insurance] [--baggage]",
			run:   h.handleSell,
		},
		"cancel": {usage: "cancel <id>", run: h.handleCancel},
		"status": {usage: "status <id> <Active|Cancelled|Used>", run: h.handleStatus},
		"undo":   {usage: "undo", run: h.handleUndo},
		"export": {usage: "export <id>", run: h.handleExport},
		"save":   {usage: "save", run: h.handleSave},
	}
}

// Dispatch executa uma linha. quit indica que a sessão deve terminar.
func (h *TerminalHandler) Dispatch(ctx context.Context, line string, out io.Writer) (bool, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}

	name := strings.ToLower(parts[0])
	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		h.printHelp(out)
		return false, nil
	}

	command, ok := h.commands[name]
	if !ok {
		return false, fmt.Errorf("%w: unknown command %q (type 'help')", ErrUsage, name)
	}
	return false, command.run(ctx, parts[1:], out)
}

// Run lê comandos até quit, Ctrl-C, EOF ou cancelamento do contexto.
func (h *TerminalHandler) Run(ctx context.Context, out io.Writer) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if h.historyPath != "" {
		if f, err := os.Open(h.historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
		defer h.saveHistory(ctx, state)
	}

	fmt.Fprintln(out, "Bus station ticket office. Type 'help' for commands.")
	for ctx.Err() == nil {
		line, err := state.Prompt("tickets> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		state.AppendHistory(line)

		quit, err := h.Dispatch(ctx, line, out)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func (h *TerminalHandler) saveHistory(ctx context.Context, state *liner.State) {
	f, err := os.Create(h.historyPath)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao salvar histórico", err, map[string]interface{}{"path": h.historyPath})
		return
	}
	defer f.Close()
	_, _ = state.WriteHistory(f)
}

func (h *TerminalHandler) printHelp(out io.Writer) {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Commands:")
	for _, name := range names {
		fmt.Fprintln(out, "  "+h.commands[name].usage)
	}
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  quit")
	fmt.Fprintln(out, "Repeat --last/--first (and optionally --middle, --phone, --document, --type) to sell several tickets at once.")
}

func (h *TerminalHandler) handleRoutes(ctx context.Context, args []string, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROUTE\tDEPARTS\tDISTANCE\tBASE PRICE")
	for _, r := range h.service.Routes(ctx) {
		fmt.Fprintf(tw, "%d\t%s → %s\t%s\t%d km\t%s\n", r.ID, r.Departure, r.Arrival, r.DepartureTime.Short(), r.DistanceKm, r.BasePrice.StringFixed(2))
	}
	return tw.Flush()
}

func (h *TerminalHandler) handleList(ctx context.Context, args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("list", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	status := flagSet.String("status", "", "Filter by status")
	passenger := flagSet.String("passenger", "", "Filter by passenger name")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	filter := application.TicketFilter{PassengerName: *passenger}
	if flagSet.Changed("status") {
		st, err := domain.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = st
	}

	tickets := h.service.List(ctx, filter)
	if len(tickets) == 0 {
		fmt.Fprintln(out, "No tickets.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPASSENGER\tROUTE\tDATE\tTYPE\tPRICE\tSTATUS")
	for _, t := range tickets {
		fmt.Fprintf(tw, "%d\t%s\t%s → %s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Passenger.FullName(), t.Route.Departure, t.Route.Arrival,
			t.Date.Format(travelDateLayout), t.TicketType, t.Price.StringFixed(2), t.Status)
	}
	return tw.Flush()
}

func (h *TerminalHandler) handleShow(ctx context.Context, args []string, out io.Writer) error {
	id, err := parseID(args, 1)
	if err != nil {
		return err
	}
	ticket, ok := h.service.Get(ctx, id)
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, id)
	}
	printTicket(out, ticket)
	return nil
}

func (h *TerminalHandler) handleSell(ctx context.Context, args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("sell", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	routeID := flagSet.Int("route", 0, "Route id")
	date := flagSet.String("date", "", "Travel date (YYYY-MM-DD)")
	payment := flagSet.String("payment", string(domain.PaymentCash), "Cash, Card or Online")
	insurance := flagSet.Bool("insurance", false, "Add travel insurance")
	baggage := flagSet.Bool("baggage", false, "Add baggage")
	lasts := flagSet.StringArray("last", nil, "Passenger last name")
	firsts := flagSet.StringArray("first", nil, "Passenger first name")
	middles := flagSet.StringArray("middle", nil, "Passenger middle name")
	phones := flagSet.StringArray("phone", nil, "Passenger phone")
	documents := flagSet.StringArray("document", nil, "Passenger document")
	types := flagSet.StringArray("type", nil, "Regular, Discount or Child")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if *routeID == 0 || *date == "" {
		return fmt.Errorf("%w: %s", ErrUsage, h.commands["sell"].usage)
	}
	travelDate, err := time.ParseInLocation(travelDateLayout, *date, time.Local)
	if err != nil {
		return &domain.ValidationError{Field: "date", Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", *date)}
	}
	method, err := domain.ParsePaymentMethod(*payment)
	if err != nil {
		return err
	}
	if len(*lasts) != len(*firsts) {
		return &domain.ValidationError{Field: "passenger", Message: "every --last needs a matching --first"}
	}

	req := application.SaleRequest{
		RouteID:       *routeID,
		Date:          travelDate,
		PaymentMethod: method,
	}
	if *insurance {
		req.AddOns = append(req.AddOns, application.InsuranceAddOn)
	}
	if *baggage {
		req.AddOns = append(req.AddOns, application.BaggageAddOn)
	}
	for i := range *lasts {
		ticketType := domain.TicketTypeRegular
		if raw := at(*types, i); raw != "" {
			if ticketType, err = domain.ParseTicketType(raw); err != nil {
				return err
			}
		}
		req.Orders = append(req.Orders, application.PassengerOrder{
			Passenger: domain.Passenger{
				LastName:   (*lasts)[i],
				FirstName:  (*firsts)[i],
				MiddleName: at(*middles, i),
				Phone:      at(*phones, i),
				Document:   at(*documents, i),
			},
			TicketType: ticketType,
		})
	}

	sold, err := h.service.Sell(ctx, req)
	for _, t := range sold {
		fmt.Fprintf(out, "Sold ticket #%d to %s for %s\n", t.ID, t.Passenger.FullName(), t.Price.StringFixed(2))
	}
	return err
}

func (h *TerminalHandler) handleCancel(ctx context.Context, args []string, out io.Writer) error {
	id, err := parseID(args, 1)
	if err != nil {
		return err
	}
	ticket, err := h.service.Cancel(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Ticket #%d is %s\n", ticket.ID, ticket.Status)
	return nil
}

func (h *TerminalHandler) handleStatus(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: %s", ErrUsage, h.commands["status"].usage)
	}
	id, err := parseID(args[:1], 1)
	if err != nil {
		return err
	}
	target, err := domain.ParseStatus(args[1])
	if err != nil {
		return err
	}
	ticket, err := h.service.ChangeStatus(ctx, id, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Ticket #%d is %s\n", ticket.ID, ticket.Status)
	return nil
}

func (h *TerminalHandler) handleUndo(ctx context.Context, args []string, out io.Writer) error {
	command, err := h.service.Undo(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Undone: %s\n", command.CommandName())
	return nil
}

func (h *TerminalHandler) handleExport(ctx context.Context, args []string, out io.Writer) error {
	id, err := parseID(args, 1)
	if err != nil {
		return err
	}
	ticket, ok := h.service.Get(ctx, id)
	if !ok {
		return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, id)
	}
	path, err := h.exporter.Export(ctx, ticket)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported to %s\n", path)
	return nil
}

func (h *TerminalHandler) handleSave(ctx context.Context, args []string, out io.Writer) error {
	h.service.Save(ctx)
	fmt.Fprintln(out, "Saved.")
	return nil
}

func parseID(args []string, want int) (int, error) {
	if len(args) != want {
		return 0, fmt.Errorf("%w: expected a ticket id", ErrUsage)
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid ticket id %q", ErrUsage, args[0])
	}
	return id, nil
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func printTicket(out io.Writer, t domain.Ticket) {
	fmt.Fprintf(out, "Ticket #%d\n", t.ID)
	fmt.Fprintf(out, "  Route:     %s → %s, departs %s\n", t.Route.Departure, t.Route.Arrival, t.Route.DepartureTime.Short())
	fmt.Fprintf(out, "  Date:      %s\n", t.Date.Format(travelDateLayout))
	fmt.Fprintf(out, "  Passenger: %s\n", t.Passenger.FullName())
	if t.Passenger.Phone != "" {
		fmt.Fprintf(out, "  Phone:     %s\n", t.Passenger.Phone)
	}
	if t.Passenger.Document != "" {
		fmt.Fprintf(out, "  Document:  %s\n", t.Passenger.Document)
	}
	fmt.Fprintf(out, "  Type:      %s\n", t.TicketType)
	fmt.Fprintf(out, "  Payment:   %s\n", t.PaymentMethod)
	fmt.Fprintf(out, "  Price:     %s\n", t.Price.StringFixed(2))
	fmt.Fprintf(out, "  Status:    %s\n", t.Status)
}
