package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"menuva/models"
)

var (
	// ErrInvalidTransition means the requested status is not reachable from the current one.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrTerminalState means the order is already DELIVERED or CANCELLED.
	ErrTerminalState = errors.New("order is in a terminal state")
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.Role
}

// validTransitions is the authoritative state machine definition.
// Cancellation policy: restaurants may cancel only RECEIVED/PREPARING orders,
// admins may cancel from any non-terminal state.
var validTransitions = []Transition{
	{From: models.StatusReceived, To: models.StatusPreparing, Actor: models.RoleRestaurator},
	{From: models.StatusReceived, To: models.StatusPreparing, Actor: models.RoleAdmin},
	{From: models.StatusReceived, To: models.StatusCancelled, Actor: models.RoleRestaurator},
	{From: models.StatusReceived, To: models.StatusCancelled, Actor: models.RoleAdmin},

	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleRestaurator},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleAdmin},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: models.RoleRestaurator},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: models.RoleAdmin},

	{From: models.StatusReady, To: models.StatusDelivering, Actor: models.RoleRestaurator},
	{From: models.StatusReady, To: models.StatusDelivering, Actor: models.RoleAdmin},
	// PICKUP orders skip the courier leg
	{From: models.StatusReady, To: models.StatusDelivered, Actor: models.RoleRestaurator},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: models.RoleAdmin},
	// admin-only override cancellation
	{From: models.StatusReady, To: models.StatusCancelled, Actor: models.RoleAdmin},

	{From: models.StatusDelivering, To: models.StatusDelivered, Actor: models.RoleRestaurator},
	{From: models.StatusDelivering, To: models.StatusDelivered, Actor: models.RoleAdmin},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.Role
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []models.OrderStatus{
	models.StatusReceived,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivering,
	models.StatusDelivered,
	models.StatusCancelled,
}

// IsTerminal reports whether no further transition is permitted from status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// NextStatuses returns all statuses the given actor may move to from status.
func NextStatuses(status models.OrderStatus, actor models.Role) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && t.Actor == actor && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether actor may move an order from one status to another.
// It validates only the graph; scope and permission checks live in authz.
func CanTransition(from, to models.OrderStatus, actor models.Role) error {
	if IsTerminal(from) {
		return fmt.Errorf("%w: %s accepts no further transitions", ErrTerminalState, from)
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for %s (valid: %s)",
		ErrInvalidTransition, from, to, actor, describeValidFrom(from, actor))
}

func describeValidFrom(status models.OrderStatus, actor models.Role) string {
	nexts := NextStatuses(status, actor)
	if len(nexts) == 0 {
		return "none"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// AllTransitions returns the full state machine for the docs endpoint
func AllTransitions() []Transition {
	return validTransitions
}
