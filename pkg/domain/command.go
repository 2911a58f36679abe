package domain

import "context"

// Command representa uma mutação encapsulada e reversível.
type Command interface {
	CommandName() string
	Execute(ctx context.Context) error
	Undo(ctx context.Context) error
}
