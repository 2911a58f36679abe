package infrastructure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateusmacedo/go-busstation/internal/busticket/domain"
)

const (
	DateLayout      = "2006-01-02T15:04:05"
	dateOnlyLayout  = "2006-01-02"
	zeroDateLiteral = "0001-01-01T00:00:00"
)

var ErrMalformedDocument = errors.New("malformed tickets document")

var (
	errNotObject     = errors.New("not an object")
	errNegativePrice = errors.New("negative base price")
)

type routeRecord struct {
	ID            int         `json:"Id"`
	Departure     string      `json:"Departure"`
	Arrival       string      `json:"Arrival"`
	Distance      int         `json:"Distance"`
	BasePrice     json.Number `json:"BasePrice"`
	DepartureTime string      `json:"DepartureTime"`
}

type passengerRecord struct {
	LastName   string `json:"LastName"`
	FirstName  string `json:"FirstName"`
	MiddleName string `json:"MiddleName"`
	Phone      string `json:"Phone"`
	Document   string `json:"Document"`
}

type ticketRecord struct {
	ID            int             `json:"Id"`
	Route         routeRecord     `json:"Route"`
	Passenger     passengerRecord `json:"Passenger"`
	Date          string          `json:"Date"`
	Price         json.Number     `json:"Price"`
	TicketType    string          `json:"TicketType"`
	PaymentMethod string          `json:"PaymentMethod"`
	Status        string          `json:"Status"`
}

type documentRecord struct {
	Routes  []routeRecord  `json:"Routes"`
	Tickets []ticketRecord `json:"Tickets"`
}

// DecodeIssue descreve um valor que não pôde ser lido e foi substituído pelo padrão.
// Structural indica que uma parte inteira do documento foi descartada.
type DecodeIssue struct {
	Path       string
	Err        error
	Structural bool
}

// HasStructuralIssue informa se a leitura perdeu o documento, uma das listas ou um elemento inteiro.
func HasStructuralIssue(issues []DecodeIssue) bool {
	for _, issue := range issues {
		if issue.Structural {
			return true
		}
	}
	return false
}

func (i DecodeIssue) String() string {
	return fmt.Sprintf("%s: %v", i.Path, i.Err)
}

// EncodeDocument serializa rotas e passagens no formato do arquivo de dados.
func EncodeDocument(routes []domain.Route, tickets []domain.Ticket) ([]byte, error) {
	doc := documentRecord{
		Routes:  make([]routeRecord, 0, len(routes)),
		Tickets: make([]ticketRecord, 0, len(tickets)),
	}
	for _, r := range routes {
		doc.Routes = append(doc.Routes, encodeRoute(r))
	}
	for _, t := range tickets {
		doc.Tickets = append(doc.Tickets, encodeTicket(t))
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeRoute(r domain.Route) routeRecord {
	return routeRecord{
		ID:            r.ID,
		Departure:     r.Departure,
		Arrival:       r.Arrival,
		Distance:      r.DistanceKm,
		BasePrice:     json.Number(r.BasePrice.String()),
		DepartureTime: r.DepartureTime.String(),
	}
}

func encodeTicket(t domain.Ticket) ticketRecord {
	return ticketRecord{
		ID:    t.ID,
		Route: encodeRoute(t.Route),
		Passenger: passengerRecord{
			LastName:   t.Passenger.LastName,
			FirstName:  t.Passenger.FirstName,
			MiddleName: t.Passenger.MiddleName,
			Phone:      t.Passenger.Phone,
			Document:   t.Passenger.Document,
		},
		Date:          formatDate(t.Date),
		Price:         json.Number(t.Price.String()),
		TicketType:    string(t.TicketType),
		PaymentMethod: string(t.PaymentMethod),
		Status:        string(t.Status),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return zeroDateLiteral
	}
	return t.Format(DateLayout)
}

// DecodeDocument lê o arquivo de dados de forma tolerante. Apenas um documento
// sintaticamente inválido retorna erro; valores ruins viram padrão e são reportados.
func DecodeDocument(data []byte) ([]domain.Route, []domain.Ticket, []DecodeIssue, error) {
	var raw struct {
		Routes  json.RawMessage `json:"Routes"`
		Tickets json.RawMessage `json:"Tickets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		return nil, nil, []DecodeIssue{{Path: "$", Err: err, Structural: true}}, nil
	}

	var issues []DecodeIssue
	routeElems, err := splitArray(raw.Routes)
	if err != nil {
		issues = append(issues, DecodeIssue{Path: "Routes", Err: err, Structural: true})
	}
	ticketElems, err := splitArray(raw.Tickets)
	if err != nil {
		issues = append(issues, DecodeIssue{Path: "Tickets", Err: err, Structural: true})
	}

	routes := make([]domain.Route, 0, len(routeElems))
	for i, elem := range routeElems {
		path := fmt.Sprintf("Routes[%d]", i)
		if !isObject(elem) {
			issues = append(issues, DecodeIssue{Path: path, Err: errNotObject, Structural: true})
			continue
		}
		var rec routeRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			issues = append(issues, DecodeIssue{Path: path, Err: err})
		}
		routes = append(routes, decodeRoute(rec, path, &issues))
	}

	tickets := make([]domain.Ticket, 0, len(ticketElems))
	for i, elem := range ticketElems {
		path := fmt.Sprintf("Tickets[%d]", i)
		if !isObject(elem) {
			issues = append(issues, DecodeIssue{Path: path, Err: errNotObject, Structural: true})
			continue
		}
		var rec ticketRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			issues = append(issues, DecodeIssue{Path: path, Err: err})
		}
		tickets = append(tickets, decodeTicket(rec, path, &issues))
	}

	return routes, tickets, issues, nil
}

func splitArray(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

func isObject(elem json.RawMessage) bool {
	trimmed := bytes.TrimSpace(elem)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeRoute(rec routeRecord, path string, issues *[]DecodeIssue) domain.Route {
	route := domain.Route{
		ID:         rec.ID,
		Departure:  rec.Departure,
		Arrival:    rec.Arrival,
		DistanceKm: rec.Distance,
		BasePrice:  decodeDecimal(rec.BasePrice, path+".BasePrice", issues),
	}
	if route.BasePrice.IsNegative() {
		*issues = append(*issues, DecodeIssue{Path: path + ".BasePrice", Err: fmt.Errorf("%w: %s", errNegativePrice, route.BasePrice)})
		route.BasePrice = decimal.Zero
	}
	if rec.DepartureTime != "" {
		tod, err := domain.ParseTimeOfDay(rec.DepartureTime)
		if err != nil {
			*issues = append(*issues, DecodeIssue{Path: path + ".DepartureTime", Err: err})
		}
		route.DepartureTime = tod
	}
	return route
}

func decodeTicket(rec ticketRecord, path string, issues *[]DecodeIssue) domain.Ticket {
	ticket := domain.Ticket{
		ID:    rec.ID,
		Route: decodeRoute(rec.Route, path+".Route", issues),
		Passenger: domain.Passenger{
			LastName:   rec.Passenger.LastName,
			FirstName:  rec.Passenger.FirstName,
			MiddleName: rec.Passenger.MiddleName,
			Phone:      rec.Passenger.Phone,
			Document:   rec.Passenger.Document,
		},
		Date:          decodeDate(rec.Date, path+".Date", issues),
		Price:         decodeDecimal(rec.Price, path+".Price", issues),
		TicketType:    domain.TicketType(orDefault(rec.TicketType, string(domain.TicketTypeRegular))),
		PaymentMethod: domain.PaymentMethod(orDefault(rec.PaymentMethod, string(domain.PaymentCash))),
		Status:        domain.Status(orDefault(rec.Status, string(domain.StatusActive))),
	}
	return ticket
}

func decodeDecimal(n json.Number, path string, issues *[]DecodeIssue) decimal.Decimal {
	if n == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		*issues = append(*issues, DecodeIssue{Path: path, Err: err})
		return decimal.Zero
	}
	return d
}

// decodeDate devolve time.Time{} para valores ausentes, inválidos ou para a data zero.
func decodeDate(s, path string, issues *[]DecodeIssue) time.Time {
	if s == "" || s == zeroDateLiteral {
		return time.Time{}
	}
	for _, layout := range []string{DateLayout, dateOnlyLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	*issues = append(*issues, DecodeIssue{Path: path, Err: fmt.Errorf("invalid date %q", s)})
	return time.Time{}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
