package domain

import (
	"fmt"
	"strings"
)

type Action string

const (
	ActionActivate Action = "activate"
	ActionCancel   Action = "cancel"
	ActionUse      Action = "use"
)

// transitions mapeia estado atual e ação para o próximo estado.
// Ausência de entrada significa transição ilegal.
var transitions = map[Status]map[Action]Status{
	StatusActive: {
		ActionActivate: StatusActive,
		ActionCancel:   StatusCancelled,
		ActionUse:      StatusUsed,
	},
	StatusCancelled: {
		ActionCancel: StatusCancelled,
	},
	StatusUsed: {
		ActionUse: StatusUsed,
	},
}

// StateMachine controla as transições de status de uma passagem.
type StateMachine struct {
	current Status
}

// NewStateMachine cria uma máquina no estado inicial Active.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StatusActive}
}

// RestoreStateMachine reconstrói a máquina a partir de um status persistido.
// Uso restrito à desserialização.
func RestoreStateMachine(status Status) (*StateMachine, error) {
	if _, ok := transitions[status]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return &StateMachine{current: status}, nil
}

func (m *StateMachine) Current() Status {
	return m.current
}

func (m *StateMachine) Status() string {
	return string(m.current)
}

func (m *StateMachine) Activate() error {
	return m.apply(ActionActivate)
}

func (m *StateMachine) Cancel() error {
	return m.apply(ActionCancel)
}

func (m *StateMachine) Use() error {
	return m.apply(ActionUse)
}

// Transition converte o status desejado na ação correspondente.
func (m *StateMachine) Transition(to Status) error {
	switch to {
	case StatusActive:
		return m.Activate()
	case StatusCancelled:
		return m.Cancel()
	case StatusUsed:
		return m.Use()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
}

func (m *StateMachine) apply(action Action) error {
	next, ok := transitions[m.current][action]
	if !ok {
		return &InvalidTransitionError{
			From:   m.current,
			Action: action,
			Reason: fmt.Sprintf("cannot %s a %s ticket", action, strings.ToLower(string(m.current))),
		}
	}
	m.current = next
	return nil
}
